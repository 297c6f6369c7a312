package service

import (
	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

type MemberService interface {
	Members(user *domain.User, boardId domain.BoardId) ([]domain.BoardMember, error)
	Add(user *domain.User, boardId domain.BoardId, email, role string) (domain.BoardMember, error)
	ChangeRole(user *domain.User, boardId domain.BoardId, memberId domain.UserId, role string) error
	Remove(user *domain.User, boardId domain.BoardId, memberId domain.UserId) error
}

type MemberStorage interface {
	Board(id domain.BoardId) (domain.Board, error)
	UserByEmail(email string) (domain.User, error)
	SaveBoardMember(member domain.BoardMember) error
	BoardMember(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error)
	BoardMembers(boardId domain.BoardId) ([]domain.BoardMember, error)
	UpdateBoardMemberRole(boardId domain.BoardId, userId domain.UserId, role string) error
	DeleteBoardMember(boardId domain.BoardId, userId domain.UserId) error
}

type Member struct {
	storage MemberStorage
	access  *Access
}

func NewMember(storage MemberStorage, access *Access) *Member {
	return &Member{storage: storage, access: access}
}

// validMemberRole rejects anything except editor and viewer. The owner role
// is implicit in boards.owner_id and never stored in board_members.
func validMemberRole(role string) (string, error) {
	role = domain.NormalizeRole(role)
	if role != domain.BoardRoleEditor && role != domain.BoardRoleViewer {
		return "", internal_errors.BadRequest("Role must be editor or viewer")
	}
	return role, nil
}

func (m *Member) Members(user *domain.User, boardId domain.BoardId) ([]domain.BoardMember, error) {
	board, err := m.storage.Board(boardId)
	if err != nil {
		return nil, err
	}
	if err := requireBoardView(m.access, user, board); err != nil {
		return nil, err
	}
	return m.storage.BoardMembers(boardId)
}

// Add invites a user by email. Owner or admin only. Adding the owner or an
// existing member is a 400.
func (m *Member) Add(user *domain.User, boardId domain.BoardId, email, role string) (domain.BoardMember, error) {
	board, err := m.storage.Board(boardId)
	if err != nil {
		return domain.BoardMember{}, err
	}
	if err := requireMemberManagement(m.access, user, board); err != nil {
		return domain.BoardMember{}, err
	}
	role, err = validMemberRole(role)
	if err != nil {
		return domain.BoardMember{}, err
	}

	invited, err := m.storage.UserByEmail(email)
	if err != nil {
		return domain.BoardMember{}, err
	}
	if board.OwnerId != nil && *board.OwnerId == invited.Id {
		return domain.BoardMember{}, internal_errors.BadRequest("User already owns this board")
	}
	if _, err := m.storage.BoardMember(boardId, invited.Id); err == nil {
		return domain.BoardMember{}, internal_errors.BadRequest("User is already a member")
	} else if !internal_errors.IsNotFound(err) {
		return domain.BoardMember{}, err
	}

	member := domain.BoardMember{BoardId: boardId, UserId: invited.Id, Role: role}
	if err := m.storage.SaveBoardMember(member); err != nil {
		return domain.BoardMember{}, err
	}
	return m.storage.BoardMember(boardId, invited.Id)
}

func (m *Member) ChangeRole(user *domain.User, boardId domain.BoardId, memberId domain.UserId, role string) error {
	board, err := m.storage.Board(boardId)
	if err != nil {
		return err
	}
	if err := requireMemberManagement(m.access, user, board); err != nil {
		return err
	}
	role, err = validMemberRole(role)
	if err != nil {
		return err
	}
	return m.storage.UpdateBoardMemberRole(boardId, memberId, role)
}

// Remove deletes a membership. Owners and admins can remove anyone; any
// member can remove themselves.
func (m *Member) Remove(user *domain.User, boardId domain.BoardId, memberId domain.UserId) error {
	board, err := m.storage.Board(boardId)
	if err != nil {
		return err
	}
	if user == nil || (user.Id != memberId && !m.access.CanManageMembers(*user, board)) {
		return internal_errors.Forbidden("Only the board owner can remove other members")
	}
	return m.storage.DeleteBoardMember(boardId, memberId)
}
