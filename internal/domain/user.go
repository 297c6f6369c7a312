package domain

import "time"

type UserId = int64

// Global roles. Board-level roles live in board.go.
const (
	GlobalRoleAdmin = "admin"
	GlobalRoleUser  = "user"
)

type User struct {
	Id          UserId    `json:"id"`
	Email       string    `json:"email"`
	PassHash    string    `json:"-"`
	DisplayName string    `json:"display_name"`
	AvatarPath  string    `json:"avatar_path,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return NormalizeRole(u.Role) == GlobalRoleAdmin
}

type Credentials struct {
	Email    string
	Password string
}
