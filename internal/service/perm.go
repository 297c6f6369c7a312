package service

import (
	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

// Board roles ordered by capability. Unknown or empty roles rank below
// viewer, so a corrupt membership row can never grant anything.
var roleRank = map[string]int{
	domain.BoardRoleViewer: 1,
	domain.BoardRoleEditor: 2,
	domain.BoardRoleOwner:  3,
}

// requireBoardView rejects callers who may not read the board.
func requireBoardView(access *Access, user *domain.User, board domain.Board) error {
	ok, err := access.CanAccessBoard(user, board)
	if err != nil {
		return err
	}
	if !ok {
		return internal_errors.Forbidden("You don't have access to this board")
	}
	return nil
}

// requireBoardRole rejects callers whose effective role on the board ranks
// below minRole. Admins pass unconditionally.
func requireBoardRole(access *Access, user *domain.User, board domain.Board, minRole string) error {
	if user == nil {
		return internal_errors.Forbidden("Authentication required")
	}
	if user.IsAdmin() {
		return nil
	}
	role, err := access.EffectiveBoardRole(*user, board)
	if err != nil {
		return err
	}
	if roleRank[role] < roleRank[minRole] {
		return internal_errors.Forbidden("You don't have permission to do this")
	}
	return nil
}

// requireMemberManagement rejects callers who may not manage the board's
// membership or settings: everyone except admins and the board owner.
func requireMemberManagement(access *Access, user *domain.User, board domain.Board) error {
	if user == nil {
		return internal_errors.Forbidden("Authentication required")
	}
	if !access.CanManageMembers(*user, board) {
		return internal_errors.Forbidden("Only the board owner can do this")
	}
	return nil
}
