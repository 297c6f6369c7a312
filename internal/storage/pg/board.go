package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

const boardColumns = "id, title, description, owner_id, created"

func scanBoard(row interface{ Scan(...any) error }) (domain.Board, error) {
	var b domain.Board
	var ownerId sql.NullInt64
	if err := row.Scan(&b.Id, &b.Title, &b.Description, &ownerId, &b.CreatedAt); err != nil {
		return domain.Board{}, err
	}
	if ownerId.Valid {
		b.OwnerId = &ownerId.Int64
	}
	return b, nil
}

func (s *Storage) collectBoards(query string, args ...any) ([]domain.Board, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	var boards []domain.Board
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}

func (s *Storage) CreateBoard(title, description string, ownerId *domain.UserId) (domain.Board, error) {
	var owner sql.NullInt64
	if ownerId != nil {
		owner = sql.NullInt64{Int64: *ownerId, Valid: true}
	}
	row := s.db.QueryRow(
		"INSERT INTO boards(title, description, owner_id) VALUES($1, $2, $3) RETURNING "+boardColumns,
		title, description, owner,
	)
	b, err := scanBoard(row)
	if err != nil {
		return domain.Board{}, fmt.Errorf("failed to insert board: %w", err)
	}
	return b, nil
}

func (s *Storage) Board(id domain.BoardId) (domain.Board, error) {
	row := s.db.QueryRow("SELECT "+boardColumns+" FROM boards WHERE id = $1", id)
	b, err := scanBoard(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Board{}, internal_errors.NotFound("Board not found")
		}
		return domain.Board{}, fmt.Errorf("failed to fetch board: %w", err)
	}
	return b, nil
}

func (s *Storage) AllBoards() ([]domain.Board, error) {
	return s.collectBoards("SELECT " + boardColumns + " FROM boards ORDER BY created, id")
}

func (s *Storage) PublicBoards() ([]domain.Board, error) {
	return s.collectBoards("SELECT " + boardColumns + " FROM boards WHERE owner_id IS NULL ORDER BY created, id")
}

func (s *Storage) BoardsOwnedBy(userId domain.UserId) ([]domain.Board, error) {
	return s.collectBoards("SELECT "+boardColumns+" FROM boards WHERE owner_id = $1 ORDER BY created, id", userId)
}

func (s *Storage) BoardsMemberOf(userId domain.UserId) ([]domain.Board, error) {
	return s.collectBoards(`
        SELECT b.id, b.title, b.description, b.owner_id, b.created
        FROM boards b
        JOIN board_members m ON m.board_id = b.id
        WHERE m.user_id = $1
        ORDER BY b.created, b.id`, userId)
}

func (s *Storage) UpdateBoard(id domain.BoardId, title, description *string) error {
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
	if len(set) == 0 {
		return nil
	}
	args = append(args, id)
	result, err := s.db.Exec(
		fmt.Sprintf("UPDATE boards SET %s WHERE id = $%d", strings.Join(set, ", "), len(args)),
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to update board: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Board not found")
	}
	return nil
}

// OrphanBoardsOwnedBy clears ownership, turning the user's boards into
// public (ownerless) ones. Used when a user account is removed.
func (s *Storage) OrphanBoardsOwnedBy(userId domain.UserId) error {
	if _, err := s.db.Exec("UPDATE boards SET owner_id = NULL WHERE owner_id = $1", userId); err != nil {
		return fmt.Errorf("failed to orphan boards of user %d: %w", userId, err)
	}
	return nil
}

// DeleteBoard removes only the board row. Descendants must already be gone;
// the cascade engine owns that ordering.
func (s *Storage) DeleteBoard(id domain.BoardId) error {
	result, err := s.db.Exec("DELETE FROM boards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete board: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Board not found")
	}
	return nil
}
