package service

import (
	"fmt"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

// AccessStore is the slice of the entity store the resolver reads from.
// BoardMember reports a missing membership row as a 404-coded error.
type AccessStore interface {
	PublicBoards() ([]domain.Board, error)
	AllBoards() ([]domain.Board, error)
	BoardsOwnedBy(userId domain.UserId) ([]domain.Board, error)
	BoardsMemberOf(userId domain.UserId) ([]domain.Board, error)
	BoardMember(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error)
}

// Access answers visibility and permission questions about boards. It never
// mutates anything; every other service consults it before acting.
type Access struct {
	storage AccessStore
}

func NewAccess(storage AccessStore) *Access {
	return &Access{storage: storage}
}

// BoardsVisibleTo returns the boards a caller may see. Anonymous callers get
// the ownerless (public) boards, admins get everything, and regular users get
// the union of boards they own and boards they are a member of, deduplicated
// by id with the owned copy winning.
func (a *Access) BoardsVisibleTo(user *domain.User) ([]domain.Board, error) {
	if user == nil {
		boards, err := a.storage.PublicBoards()
		if err != nil {
			return nil, fmt.Errorf("failed to get public boards: %w", err)
		}
		return boards, nil
	}
	if user.IsAdmin() {
		boards, err := a.storage.AllBoards()
		if err != nil {
			return nil, fmt.Errorf("failed to get boards: %w", err)
		}
		return boards, nil
	}
	owned, err := a.storage.BoardsOwnedBy(user.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to get owned boards: %w", err)
	}
	member, err := a.storage.BoardsMemberOf(user.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to get member boards: %w", err)
	}
	seen := make(map[domain.BoardId]struct{}, len(owned))
	boards := make([]domain.Board, 0, len(owned)+len(member))
	for _, b := range owned {
		seen[b.Id] = struct{}{}
		boards = append(boards, b)
	}
	for _, b := range member {
		if _, ok := seen[b.Id]; ok {
			continue
		}
		boards = append(boards, b)
	}
	return boards, nil
}

// CanAccessBoard reports whether the caller may read the board. Anonymous
// callers see only ownerless boards; admins and owners always pass; everyone
// else needs a membership row.
func (a *Access) CanAccessBoard(user *domain.User, board domain.Board) (bool, error) {
	if user == nil {
		return board.OwnerId == nil, nil
	}
	if user.IsAdmin() {
		return true, nil
	}
	if board.OwnerId != nil && *board.OwnerId == user.Id {
		return true, nil
	}
	_, err := a.storage.BoardMember(board.Id, user.Id)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return board.OwnerId == nil, nil
		}
		return false, fmt.Errorf("failed to get board member: %w", err)
	}
	return true, nil
}

// EffectiveBoardRole resolves the role a user acts under on a board. The
// owner is always "owner", with or without a membership row. A member's
// stored role is normalized; an empty stored role falls back to viewer.
// Non-members get an empty role and no error.
func (a *Access) EffectiveBoardRole(user domain.User, board domain.Board) (string, error) {
	if board.OwnerId != nil && *board.OwnerId == user.Id {
		return domain.BoardRoleOwner, nil
	}
	m, err := a.storage.BoardMember(board.Id, user.Id)
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get board member: %w", err)
	}
	role := domain.NormalizeRole(m.Role)
	if role == "" {
		role = domain.BoardRoleViewer
	}
	return role, nil
}

// CanManageMembers reports whether the user may add, rerole, or remove
// members on the board: admins and the board owner.
func (a *Access) CanManageMembers(user domain.User, board domain.Board) bool {
	if user.IsAdmin() {
		return true
	}
	return board.OwnerId != nil && *board.OwnerId == user.Id
}

// CanManageUsers reports whether the caller may administer accounts.
func (a *Access) CanManageUsers(user *domain.User) bool {
	return user != nil && user.IsAdmin()
}
