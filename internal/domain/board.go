package domain

import (
	"strings"
	"time"
)

type BoardId = int64

// Board-level roles carried by board_members rows. OwnerId grants owner
// rights implicitly, without a membership row.
const (
	BoardRoleOwner  = "owner"
	BoardRoleEditor = "editor"
	BoardRoleViewer = "viewer"
)

// NormalizeRole canonicalizes role strings at the resolver boundary so the
// rest of the code can compare them directly.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

type Board struct {
	Id          BoardId   `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	OwnerId     *UserId   `json:"owner_id,omitempty"` // nil means the board is public
	CreatedAt   time.Time `json:"created_at"`
	Lists       []*List   `json:"lists,omitempty"`
}

type BoardMember struct {
	BoardId  BoardId   `json:"board_id"`
	UserId   UserId    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`

	// Denormalized for member listings.
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

type Label struct {
	Id      int64   `json:"id"`
	BoardId BoardId `json:"board_id"`
	Name    string  `json:"name"`
	Color   string  `json:"color"`
}
