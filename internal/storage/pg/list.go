package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

func (s *Storage) CreateList(boardId domain.BoardId, title string) (domain.List, error) {
	var l domain.List
	err := s.db.QueryRow(`
        INSERT INTO lists(board_id, title, position)
        SELECT $1, $2, COALESCE(MAX(position), 0) + 1 FROM lists WHERE board_id = $1
        RETURNING id, board_id, title, position, created`,
		boardId, title,
	).Scan(&l.Id, &l.BoardId, &l.Title, &l.Position, &l.CreatedAt)
	if err != nil {
		return domain.List{}, fmt.Errorf("failed to insert list: %w", err)
	}
	return l, nil
}

func (s *Storage) List(id domain.ListId) (domain.List, error) {
	var l domain.List
	err := s.db.QueryRow(
		"SELECT id, board_id, title, position, created FROM lists WHERE id = $1", id,
	).Scan(&l.Id, &l.BoardId, &l.Title, &l.Position, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.List{}, internal_errors.NotFound("List not found")
		}
		return domain.List{}, fmt.Errorf("failed to fetch list: %w", err)
	}
	return l, nil
}

func (s *Storage) ListsByBoard(boardId domain.BoardId) ([]*domain.List, error) {
	rows, err := s.db.Query(
		"SELECT id, board_id, title, position, created FROM lists WHERE board_id = $1 ORDER BY position, id",
		boardId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query lists: %w", err)
	}
	defer rows.Close()

	var lists []*domain.List
	for rows.Next() {
		var l domain.List
		if err := rows.Scan(&l.Id, &l.BoardId, &l.Title, &l.Position, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan list: %w", err)
		}
		lists = append(lists, &l)
	}
	return lists, rows.Err()
}

func (s *Storage) ListIDsByBoard(boardId domain.BoardId) ([]domain.ListId, error) {
	rows, err := s.db.Query("SELECT id FROM lists WHERE board_id = $1 ORDER BY id", boardId)
	if err != nil {
		return nil, fmt.Errorf("failed to query list ids: %w", err)
	}
	defer rows.Close()

	var ids []domain.ListId
	for rows.Next() {
		var id domain.ListId
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan list id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Storage) UpdateList(id domain.ListId, title *string, position *int64) error {
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
		fmt.Sprintf("UPDATE lists SET %s WHERE id = $%d", strings.Join(set, ", "), len(args)),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update list: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("List not found")
	}
	return nil
}

func (s *Storage) DeleteList(id domain.ListId) error {
	result, err := s.db.Exec("DELETE FROM lists WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("List not found")
	}
	return nil
}

func (s *Storage) DeleteListsByBoard(boardId domain.BoardId) error {
	if _, err := s.db.Exec("DELETE FROM lists WHERE board_id = $1", boardId); err != nil {
		return fmt.Errorf("failed to delete lists of board %d: %w", boardId, err)
	}
	return nil
}
