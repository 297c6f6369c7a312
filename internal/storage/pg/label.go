package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

func (s *Storage) CreateLabel(boardId domain.BoardId, name, color string) (domain.Label, error) {
	var l domain.Label
	err := s.db.QueryRow(
		"INSERT INTO labels(board_id, name, color) VALUES($1, $2, $3) RETURNING id, board_id, name, color",
		boardId, name, color,
	).Scan(&l.Id, &l.BoardId, &l.Name, &l.Color)
	if err != nil {
		return domain.Label{}, fmt.Errorf("failed to insert label: %w", err)
	}
	return l, nil
}

func (s *Storage) Label(id int64) (domain.Label, error) {
	var l domain.Label
	err := s.db.QueryRow(
		"SELECT id, board_id, name, color FROM labels WHERE id = $1", id,
	).Scan(&l.Id, &l.BoardId, &l.Name, &l.Color)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Label{}, internal_errors.NotFound("Label not found")
		}
		return domain.Label{}, fmt.Errorf("failed to fetch label: %w", err)
	}
	return l, nil
}

func (s *Storage) LabelsByBoard(boardId domain.BoardId) ([]domain.Label, error) {
	rows, err := s.db.Query(
		"SELECT id, board_id, name, color FROM labels WHERE board_id = $1 ORDER BY id", boardId,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query labels: %w", err)
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

func (s *Storage) UpdateLabel(id int64, name, color *string) error {
	set := []string{}
	args := []any{}
	if name != nil {
		args = append(args, *name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if color != nil {
		args = append(args, *color)
		set = append(set, fmt.Sprintf("color = $%d", len(args)))
	}
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	result, err := s.db.Exec(
		fmt.Sprintf("UPDATE labels SET %s WHERE id = $%d", strings.Join(set, ", "), len(args)),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update label: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Label not found")
	}
	return nil
}

func (s *Storage) DeleteLabel(id int64) error {
	result, err := s.db.Exec("DELETE FROM labels WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Label not found")
	}
	return nil
}

func (s *Storage) DeleteLabelsByBoard(boardId domain.BoardId) error {
	if _, err := s.db.Exec("DELETE FROM labels WHERE board_id = $1", boardId); err != nil {
		return fmt.Errorf("failed to delete labels of board %d: %w", boardId, err)
	}
	return nil
}
