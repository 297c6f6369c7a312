package pg

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

func (s *Storage) SaveBoardMember(member domain.BoardMember) error {
	_, err := s.db.Exec(
		"INSERT INTO board_members(board_id, user_id, role) VALUES($1, $2, $3)",
		member.BoardId, member.UserId, member.Role,
	)
	if err != nil {
		return fmt.Errorf("failed to insert board member: %w", err)
	}
	return nil
}

func (s *Storage) BoardMember(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error) {
	var m domain.BoardMember
	err := s.db.QueryRow(
		"SELECT board_id, user_id, role, joined FROM board_members WHERE board_id = $1 AND user_id = $2",
		boardId, userId,
	).Scan(&m.BoardId, &m.UserId, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.BoardMember{}, internal_errors.NotFound("Board member not found")
		}
		return domain.BoardMember{}, fmt.Errorf("failed to fetch board member: %w", err)
	}
	return m, nil
}

func (s *Storage) BoardMembers(boardId domain.BoardId) ([]domain.BoardMember, error) {
	rows, err := s.db.Query(`
        SELECT m.board_id, m.user_id, m.role, m.joined, u.email, u.display_name
        FROM board_members m
        JOIN users u ON u.id = m.user_id
        WHERE m.board_id = $1
        ORDER BY m.joined, m.user_id`, boardId)
	if err != nil {
		return nil, fmt.Errorf("failed to query board members: %w", err)
	}
	defer rows.Close()

	var members []domain.BoardMember
	for rows.Next() {
		var m domain.BoardMember
		if err := rows.Scan(&m.BoardId, &m.UserId, &m.Role, &m.JoinedAt, &m.Email, &m.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan board member: %w", err)
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *Storage) UpdateBoardMemberRole(boardId domain.BoardId, userId domain.UserId, role string) error {
	result, err := s.db.Exec(
		"UPDATE board_members SET role = $1 WHERE board_id = $2 AND user_id = $3",
		role, boardId, userId,
	)
	if err != nil {
		return fmt.Errorf("failed to update board member role: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Board member not found")
	}
	return nil
}

func (s *Storage) DeleteBoardMember(boardId domain.BoardId, userId domain.UserId) error {
	result, err := s.db.Exec(
		"DELETE FROM board_members WHERE board_id = $1 AND user_id = $2",
		boardId, userId,
	)
	if err != nil {
		return fmt.Errorf("failed to delete board member: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("Board member not found")
	}
	return nil
}

func (s *Storage) DeleteBoardMembersByBoard(boardId domain.BoardId) error {
	if _, err := s.db.Exec("DELETE FROM board_members WHERE board_id = $1", boardId); err != nil {
		return fmt.Errorf("failed to delete members of board %d: %w", boardId, err)
	}
	return nil
}

func (s *Storage) DeleteBoardMembersByUser(userId domain.UserId) error {
	if _, err := s.db.Exec("DELETE FROM board_members WHERE user_id = $1", userId); err != nil {
		return fmt.Errorf("failed to delete board memberships of user %d: %w", userId, err)
	}
	return nil
}
