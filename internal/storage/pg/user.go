package pg

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

const userColumns = "id, email, pass_hash, display_name, avatar_path, role, created"

func scanUser(row interface{ Scan(...any) error }) (domain.User, error) {
	var u domain.User
	err := row.Scan(&u.Id, &u.Email, &u.PassHash, &u.DisplayName, &u.AvatarPath, &u.Role, &u.CreatedAt)
	return u, err
}

func (s *Storage) SaveUser(user domain.User) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRow(
		"INSERT INTO users(email, pass_hash, display_name, role) VALUES(lower($1), $2, $3, $4) RETURNING id",
		user.Email, user.PassHash, user.DisplayName, user.Role,
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return 0, &internal_errors.ErrorWithStatusCode{Message: "User with this email already exists", StatusCode: http.StatusConflict}
		}
		return 0, fmt.Errorf("failed to insert user: %w", err)
	}
	return id, nil
}

func (s *Storage) User(id domain.UserId) (domain.User, error) {
	u, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

func (s *Storage) UserByEmail(email string) (domain.User, error) {
	u, err := scanUser(s.db.QueryRow("SELECT "+userColumns+" FROM users WHERE email = lower($1)", email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, internal_errors.NotFound("User not found")
		}
		return domain.User{}, fmt.Errorf("failed to fetch user: %w", err)
	}
	return u, nil
}

func (s *Storage) Users() ([]domain.User, error) {
	rows, err := s.db.Query("SELECT " + userColumns + " FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Storage) UpdateDisplayName(id domain.UserId, displayName string) error {
	result, err := s.db.Exec("UPDATE users SET display_name = $1 WHERE id = $2", displayName, id)
	if err != nil {
		return fmt.Errorf("failed to update display name: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("User not found")
	}
	return nil
}

func (s *Storage) UpdateAvatarPath(id domain.UserId, avatarPath string) error {
	result, err := s.db.Exec("UPDATE users SET avatar_path = $1 WHERE id = $2", avatarPath, id)
	if err != nil {
		return fmt.Errorf("failed to update avatar: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("User not found")
	}
	return nil
}

func (s *Storage) UpdateGlobalRole(id domain.UserId, role string) error {
	result, err := s.db.Exec("UPDATE users SET role = $1 WHERE id = $2", role, id)
	if err != nil {
		return fmt.Errorf("failed to update role: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("User not found")
	}
	return nil
}

// DeleteUser removes only the user row. Memberships, assignments, comment
// authorship, and board ownership must be detached first (user service).
func (s *Storage) DeleteUser(id domain.UserId) error {
	result, err := s.db.Exec("DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return internal_errors.NotFound("User not found")
	}
	return nil
}
