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

const cardColumns = "id, list_id, title, description, position, due_at, created"

func scanCard(row interface{ Scan(...any) error }) (domain.Card, error) {
	var c domain.Card
	var dueAt sql.NullTime
	if err := row.Scan(&c.Id, &c.ListId, &c.Title, &c.Description, &c.Position, &dueAt, &c.CreatedAt); err != nil {
		return domain.Card{}, err
	}
	if dueAt.Valid {
		c.DueAt = &dueAt.Time
	}
	return c, nil
}

func (s *Storage) CreateCard(listId domain.ListId, title, description string, dueAt *time.Time) (domain.Card, error) {
	var due sql.NullTime
	if dueAt != nil {
		due = sql.NullTime{Time: *dueAt, Valid: true}
	}
	row := s.db.QueryRow(`
        INSERT INTO cards(list_id, title, description, due_at, position)
        SELECT $1, $2, $3, $4, COALESCE(MAX(position), 0) + 1 FROM cards WHERE list_id = $1
        RETURNING `+cardColumns,
		listId, title, description, due,
	)
	c, err := scanCard(row)
	if err != nil {
		return domain.Card{}, fmt.Errorf("failed to insert card: %w", err)
	}
	return c, nil
}

func (s *Storage) Card(id domain.CardId) (domain.Card, error) {
	row := s.db.QueryRow("SELECT "+cardColumns+" FROM cards WHERE id = $1", id)
	c, err := scanCard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Card{}, internal_errors.NotFound("Card not found")
		}
		return domain.Card{}, fmt.Errorf("failed to fetch card: %w", err)
	}
	return c, nil
}

func (s *Storage) CardsByList(listId domain.ListId) ([]*domain.Card, error) {
	rows, err := s.db.Query(
		"SELECT "+cardColumns+" FROM cards WHERE list_id = $1 ORDER BY position, id", listId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var cards []*domain.Card
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan card: %w", err)
		}
		cards = append(cards, &c)
	}
	return cards, rows.Err()
}

func (s *Storage) CardIDsByList(listId domain.ListId) ([]domain.CardId, error) {
	rows, err := s.db.Query("SELECT id FROM cards WHERE list_id = $1 ORDER BY id", listId)
	if err != nil {
		return nil, fmt.Errorf("failed to query card ids: %w", err)
	}
	defer rows.Close()

	var ids []domain.CardId
	for rows.Next() {
		var id domain.CardId
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan card id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateCard applies a partial patch. clearDueAt wins over dueAt.
func (s *Storage) UpdateCard(id domain.CardId, title, description *string, position *int64, listId *domain.ListId, dueAt *time.Time, clearDueAt bool) error {
	set := []string{}
	args := []any{}
	if title != nil {
		args = append(args, *title)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if description != nil {
		args = append(args, *description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if position != nil {
		args = append(args, *position)
		set = append(set, fmt.Sprintf("position = $%d", len(args)))
	}
	if listId != nil {
		args = append(args, *listId)
		set = append(set, fmt.Sprintf("list_id = $%d", len(args)))
	}
	if clearDueAt {
		set = append(set, "due_at = NULL")
	} else if dueAt != nil {
		args = append(args, *dueAt)
		set = append(set, fmt.Sprintf("due_at = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	result, err := s.db.Exec(
		fmt.Sprintf("UPDATE cards SET %s WHERE id = $%d", strings.Join(set, ", "), len(args)),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Card not found")
	}
	return nil
}

func (s *Storage) DeleteCard(id domain.CardId) error {
	result, err := s.db.Exec("DELETE FROM cards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Card not found")
	}
	return nil
}

func (s *Storage) DeleteCardsByList(listId domain.ListId) error {
	if _, err := s.db.Exec("DELETE FROM cards WHERE list_id = $1", listId); err != nil {
		return fmt.Errorf("failed to delete cards of list %d: %w", listId, err)
	}
	return nil
}

// Card members

func (s *Storage) SaveCardMember(cardId domain.CardId, userId domain.UserId) error {
	_, err := s.db.Exec("INSERT INTO card_members(card_id, user_id) VALUES($1, $2) ON CONFLICT DO NOTHING", cardId, userId)
	if err != nil {
		return fmt.Errorf("failed to insert card member: %w", err)
	}
	return nil
}

func (s *Storage) CardMembersByCard(cardId domain.CardId) ([]domain.CardMember, error) {
	rows, err := s.db.Query(`
        SELECT cm.card_id, cm.user_id, u.display_name
        FROM card_members cm
        JOIN users u ON u.id = cm.user_id
        WHERE cm.card_id = $1
        ORDER BY cm.user_id`, cardId)
	if err != nil {
		return nil, fmt.Errorf("failed to query card members: %w", err)
	}
	defer rows.Close()

	var members []domain.CardMember
	for rows.Next() {
		var m domain.CardMember
		if err := rows.Scan(&m.CardId, &m.UserId, &m.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan card member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Storage) DeleteCardMember(cardId domain.CardId, userId domain.UserId) error {
	result, err := s.db.Exec("DELETE FROM card_members WHERE card_id = $1 AND user_id = $2", cardId, userId)
	if err != nil {
		return fmt.Errorf("failed to delete card member: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Card member not found")
	}
	return nil
}

func (s *Storage) DeleteCardMembersByCards(cardIds []domain.CardId) error {
	if len(cardIds) == 0 {
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM card_members WHERE card_id = ANY($1)", pq.Array(cardIds)); err != nil {
		return fmt.Errorf("failed to delete card members: %w", err)
	}
	return nil
}

func (s *Storage) DeleteCardMembersByUser(userId domain.UserId) error {
	if _, err := s.db.Exec("DELETE FROM card_members WHERE user_id = $1", userId); err != nil {
		return fmt.Errorf("failed to delete card memberships of user %d: %w", userId, err)
	}
	return nil
}

// Card labels

func (s *Storage) SaveCardLabel(cardId domain.CardId, labelId int64) error {
	_, err := s.db.Exec("INSERT INTO card_labels(card_id, label_id) VALUES($1, $2) ON CONFLICT DO NOTHING", cardId, labelId)
	if err != nil {
		return fmt.Errorf("failed to insert card label: %w", err)
	}
	return nil
}

func (s *Storage) LabelsByCard(cardId domain.CardId) ([]domain.Label, error) {
	rows, err := s.db.Query(`
        SELECT l.id, l.board_id, l.name, l.color
        FROM card_labels cl
        JOIN labels l ON l.id = cl.label_id
        WHERE cl.card_id = $1
        ORDER BY l.id`, cardId)
	if err != nil {
		return nil, fmt.Errorf("failed to query card labels: %w", err)
	}
	defer rows.Close()

	var labels []domain.Label
	for rows.Next() {
		var l domain.Label
		if err := rows.Scan(&l.Id, &l.BoardId, &l.Name, &l.Color); err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

func (s *Storage) DeleteCardLabel(cardId domain.CardId, labelId int64) error {
	result, err := s.db.Exec("DELETE FROM card_labels WHERE card_id = $1 AND label_id = $2", cardId, labelId)
	if err != nil {
		return fmt.Errorf("failed to delete card label: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Card label not found")
	}
	return nil
}

func (s *Storage) DeleteCardLabelsByCards(cardIds []domain.CardId) error {
	if len(cardIds) == 0 {
		return nil
	}
	if _, err := s.db.Exec("DELETE FROM card_labels WHERE card_id = ANY($1)", pq.Array(cardIds)); err != nil {
		return fmt.Errorf("failed to delete card labels: %w", err)
	}
	return nil
}

func (s *Storage) DeleteCardLabelsByLabel(labelId int64) error {
	if _, err := s.db.Exec("DELETE FROM card_labels WHERE label_id = $1", labelId); err != nil {
		return fmt.Errorf("failed to delete assignments of label %d: %w", labelId, err)
	}
	return nil
}
