package api

import (
	"time"

	"github.com/kanbo-dev/kanbo/internal/domain"
)

// Request DTOs consumed by the route handlers. Validation tags are enforced
// by utils.DecodeValidate before any store access happens.

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name"`
}

type SetGlobalRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

type CreateBoardRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
}

type UpdateBoardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"required"`
}

type ChangeMemberRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

type CreateListRequest struct {
	Title string `json:"title" validate:"required"`
}

type UpdateListRequest struct {
	Title    *string `json:"title"`
	Position *int64  `json:"position"`
}

type CreateCardRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
}

type UpdateCardRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	Position    *int64         `json:"position"`
	ListId      *domain.ListId `json:"list_id"`
	DueAt       *time.Time     `json:"due_at"`
	ClearDueAt  bool           `json:"clear_due_at,omitempty"`
}

type CreateLabelRequest struct {
	Name  string `json:"name" validate:"required"`
	Color string `json:"color" validate:"required,hexcolor"`
}

type UpdateLabelRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

type CreateChecklistRequest struct {
	Title string `json:"title" validate:"required"`
}

type UpdateChecklistRequest struct {
	Title    *string `json:"title"`
	Position *int64  `json:"position"`
}

type CreateChecklistItemRequest struct {
	Content    string         `json:"content" validate:"required"`
	AssigneeId *domain.UserId `json:"assignee_id"`
	DueAt      *time.Time     `json:"due_at"`
}

type UpdateChecklistItemRequest struct {
	Content    *string        `json:"content"`
	Completed  *bool          `json:"completed"`
	Position   *int64         `json:"position"`
	AssigneeId *domain.UserId `json:"assignee_id"`
	DueAt      *time.Time     `json:"due_at"`
}

// Response DTOs

type AuthResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type BoardListResponse struct {
	Boards []domain.Board `json:"boards"`
}

type BoardResponse struct {
	domain.Board
	Role string `json:"role,omitempty"` // effective role of the requesting user
}

type MemberListResponse struct {
	Members []domain.BoardMember `json:"members"`
}

type CardDetailResponse struct {
	domain.CardDetail
}

type CommentListResponse struct {
	Comments []*domain.Comment `json:"comments"`
}

type UserListResponse struct {
	Users []domain.User `json:"users"`
}
