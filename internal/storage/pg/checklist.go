package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

func (s *Storage) CreateChecklist(cardId domain.CardId, title string) (domain.Checklist, error) {
	var cl domain.Checklist
	err := s.db.QueryRow(`
        INSERT INTO checklists(card_id, title, position)
        SELECT $1, $2, COALESCE(MAX(position), 0) + 1 FROM checklists WHERE card_id = $1
        RETURNING id, card_id, title, position`,
		cardId, title,
	).Scan(&cl.Id, &cl.CardId, &cl.Title, &cl.Position)
	if err != nil {
		return domain.Checklist{}, fmt.Errorf("failed to insert checklist: %w", err)
	}
	return cl, nil
}

func (s *Storage) Checklist(id domain.ChecklistId) (domain.Checklist, error) {
	var cl domain.Checklist
	err := s.db.QueryRow(
		"SELECT id, card_id, title, position FROM checklists WHERE id = $1", id,
	).Scan(&cl.Id, &cl.CardId, &cl.Title, &cl.Position)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Checklist{}, internal_errors.NotFound("Checklist not found")
		}
		return domain.Checklist{}, fmt.Errorf("failed to fetch checklist: %w", err)
	}
	return cl, nil
}

// ChecklistsByCard returns the card's checklists with their items attached.
func (s *Storage) ChecklistsByCard(cardId domain.CardId) ([]*domain.Checklist, error) {
	rows, err := s.db.Query(
		"SELECT id, card_id, title, position FROM checklists WHERE card_id = $1 ORDER BY position, id",
		cardId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklists: %w", err)
	}
	defer rows.Close()

	var checklists []*domain.Checklist
	idx := make(map[domain.ChecklistId]int)
	for rows.Next() {
		var cl domain.Checklist
		if err := rows.Scan(&cl.Id, &cl.CardId, &cl.Title, &cl.Position); err != nil {
			return nil, fmt.Errorf("failed to scan checklist: %w", err)
		}
		checklists = append(checklists, &cl)
		idx[cl.Id] = len(checklists) - 1
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(checklists) == 0 {
		return nil, nil
	}

	itemRows, err := s.db.Query(`
        SELECT i.id, i.checklist_id, i.content, i.position, i.completed, i.assignee_id, i.due_at
        FROM checklist_items i
        JOIN checklists c ON c.id = i.checklist_id
        WHERE c.card_id = $1
        ORDER BY i.position, i.id`, cardId)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		item, err := scanChecklistItem(itemRows)
		if err != nil {
			return nil, err
		}
		if i, ok := idx[item.ChecklistId]; ok {
			checklists[i].Items = append(checklists[i].Items, &item)
		}
	}
	return checklists, itemRows.Err()
}

func (s *Storage) ChecklistIDsByCard(cardId domain.CardId) ([]domain.ChecklistId, error) {
	rows, err := s.db.Query("SELECT id FROM checklists WHERE card_id = $1 ORDER BY id", cardId)
	if err != nil {
		return nil, fmt.Errorf("failed to query checklist ids: %w", err)
	}
	defer rows.Close()

	var ids []domain.ChecklistId
	for rows.Next() {
		var id domain.ChecklistId
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan checklist id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Storage) UpdateChecklist(id domain.ChecklistId, title *string, position *int64) error {
	set := []string{}
	args := []any{}
	if title != nil {
		args = append(args, *title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if position != nil {
		args = append(args, *position)
		set = append(set, fmt.Sprintf("position = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	result, err := s.db.Exec(
		fmt.Sprintf("UPDATE checklists SET %s WHERE id = $%d", strings.Join(set, ", "), len(args)),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update checklist: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Checklist not found")
	}
	return nil
}

func (s *Storage) DeleteChecklist(id domain.ChecklistId) error {
	result, err := s.db.Exec("DELETE FROM checklists WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete checklist: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Checklist not found")
	}
	return nil
}

func (s *Storage) DeleteChecklistsByCards(cardIds []domain.CardId) error {
	if len(cardIds) == 0 {
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM checklists WHERE card_id = ANY($1)", pq.Array(cardIds)); err != nil {
		return fmt.Errorf("failed to delete checklists: %w", err)
	}
	return nil
}

// Checklist items

func scanChecklistItem(row interface{ Scan(...any) error }) (domain.ChecklistItem, error) {
	var item domain.ChecklistItem
	var assignee sql.NullInt64
	var dueAt sql.NullTime
	if err := row.Scan(&item.Id, &item.ChecklistId, &item.Content, &item.Position, &item.Completed, &assignee, &dueAt); err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("failed to scan checklist item: %w", err)
	}
	if assignee.Valid {
		item.AssigneeId = &assignee.Int64
	}
	if dueAt.Valid {
		item.DueAt = &dueAt.Time
	}
	return item, nil
}

func (s *Storage) SaveChecklistItem(item domain.ChecklistItem) (domain.ChecklistItem, error) {
	var assignee sql.NullInt64
	if item.AssigneeId != nil {
		assignee = sql.NullInt64{Int64: *item.AssigneeId, Valid: true}
	}
	var dueAt sql.NullTime
	if item.DueAt != nil {
		dueAt = sql.NullTime{Time: *item.DueAt, Valid: true}
	}
	err := s.db.QueryRow(`
        INSERT INTO checklist_items(checklist_id, content, assignee_id, due_at, position)
        SELECT $1, $2, $3, $4, COALESCE(MAX(position), 0) + 1 FROM checklist_items WHERE checklist_id = $1
        RETURNING id, position`,
		item.ChecklistId, item.Content, assignee, dueAt,
	).Scan(&item.Id, &item.Position)
	if err != nil {
		return domain.ChecklistItem{}, fmt.Errorf("failed to insert checklist item: %w", err)
	}
	return item, nil
}

func (s *Storage) ChecklistItem(id int64) (domain.ChecklistItem, error) {
	row := s.db.QueryRow(
		"SELECT id, checklist_id, content, position, completed, assignee_id, due_at FROM checklist_items WHERE id = $1", id,
	)
	item, err := scanChecklistItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ChecklistItem{}, internal_errors.NotFound("Checklist item not found")
		}
		return domain.ChecklistItem{}, err
	}
	return item, nil
}

func (s *Storage) UpdateChecklistItem(id int64, content *string, completed *bool, position *int64, assigneeId *domain.UserId, dueAt *time.Time) error {
	set := []string{}
	args := []any{}
	if content != nil {
		args = append(args, *content)
		set = append(set, fmt.Sprintf("content = $%d", len(args)))
	}
	if completed != nil {
		args = append(args, *completed)
		set = append(set, fmt.Sprintf("completed = $%d", len(args)))
	}
	if position != nil {
		args = append(args, *position)
		set = append(set, fmt.Sprintf("position = $%d", len(args)))
	}
	if assigneeId != nil {
		args = append(args, *assigneeId)
		set = append(set, fmt.Sprintf("assignee_id = $%d", len(args)))
	}
	if dueAt != nil {
		args = append(args, *dueAt)
		set = append(set, fmt.Sprintf("due_at = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	result, err := s.db.Exec(
		fmt.Sprintf("UPDATE checklist_items SET %s WHERE id = $%d", strings.Join(set, ", "), len(args)),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update checklist item: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Checklist item not found")
	}
	return nil
}

func (s *Storage) DeleteChecklistItem(id int64) error {
	result, err := s.db.Exec("DELETE FROM checklist_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete checklist item: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Checklist item not found")
	}
	return nil
}

func (s *Storage) DeleteChecklistItemsByChecklist(checklistId domain.ChecklistId) error {
	if _, err := s.db.Exec("DELETE FROM checklist_items WHERE checklist_id = $1", checklistId); err != nil {
		return fmt.Errorf("failed to delete items of checklist %d: %w", checklistId, err)
	}
	return nil
}

func (s *Storage) DeleteChecklistItemsByChecklists(checklistIds []domain.ChecklistId) error {
	if len(checklistIds) == 0 {
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM checklist_items WHERE checklist_id = ANY($1)", pq.Array(checklistIds)); err != nil {
		return fmt.Errorf("failed to delete checklist items: %w", err)
	}
	return nil
}

// ClearChecklistAssignee drops item assignments pointing at a user.
func (s *Storage) ClearChecklistAssignee(userId domain.UserId) error {
	if _, err := s.db.Exec("UPDATE checklist_items SET assignee_id = NULL WHERE assignee_id = $1", userId); err != nil {
		return fmt.Errorf("failed to clear checklist assignments of user %d: %w", userId, err)
	}
	return nil
}
