package service

import (
	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

type BoardService interface {
	Visible(user *domain.User) ([]domain.Board, error)
	Create(user domain.User, title, description string) (domain.Board, error)
	Get(user *domain.User, id domain.BoardId) (domain.Board, string, error)
	Update(user *domain.User, id domain.BoardId, title, description *string) error
	Delete(user *domain.User, id domain.BoardId) error
}

type BoardStorage interface {
	CreateBoard(title, description string, ownerId *domain.UserId) (domain.Board, error)
	Board(id domain.BoardId) (domain.Board, error)
	ListsByBoard(boardId domain.BoardId) ([]*domain.List, error)
	CardsByList(listId domain.ListId) ([]*domain.Card, error)
	UpdateBoard(id domain.BoardId, title, description *string) error
}

type BoardDeleter interface {
	DeleteBoard(id domain.BoardId) error
}

type Board struct {
	storage BoardStorage
	access  *Access
	cascade BoardDeleter
}

func NewBoard(storage BoardStorage, access *Access, cascade BoardDeleter) *Board {
	return &Board{storage: storage, access: access, cascade: cascade}
}

func (b *Board) Visible(user *domain.User) ([]domain.Board, error) {
	return b.access.BoardsVisibleTo(user)
}

func (b *Board) Create(user domain.User, title, description string) (domain.Board, error) {
	ownerId := user.Id
	return b.storage.CreateBoard(title, description, &ownerId)
}

// Get returns the board with its lists and cards populated, plus the
// caller's effective role ("" for anonymous readers of public boards).
func (b *Board) Get(user *domain.User, id domain.BoardId) (domain.Board, string, error) {
	board, err := b.storage.Board(id)
	if err != nil {
		return domain.Board{}, "", err
	}
	if err := requireBoardView(b.access, user, board); err != nil {
		return domain.Board{}, "", err
	}

	lists, err := b.storage.ListsByBoard(id)
	if err != nil {
		return domain.Board{}, "", err
	}
	for _, list := range lists {
		cards, err := b.storage.CardsByList(list.Id)
		if err != nil {
			return domain.Board{}, "", err
		}
		list.Cards = cards
	}
	board.Lists = lists

	var role string
	if user != nil {
		role, err = b.access.EffectiveBoardRole(*user, board)
		if err != nil {
			return domain.Board{}, "", err
		}
		if role == "" && user.IsAdmin() {
			role = domain.BoardRoleOwner
		}
	}
	return board, role, nil
}

// Update changes board settings. Owner or admin only.
func (b *Board) Update(user *domain.User, id domain.BoardId, title, description *string) error {
	board, err := b.storage.Board(id)
	if err != nil {
		return err
	}
	if err := requireMemberManagement(b.access, user, board); err != nil {
		return err
	}
	if title == nil && description == nil {
		return internal_errors.BadRequest("Nothing to update")
	}
	return b.storage.UpdateBoard(id, title, description)
}

// Delete cascades the whole board subtree. Owner or admin only.
func (b *Board) Delete(user *domain.User, id domain.BoardId) error {
	board, err := b.storage.Board(id)
	if err != nil {
		return err
	}
	if err := requireMemberManagement(b.access, user, board); err != nil {
		return err
	}
	return b.cascade.DeleteBoard(id)
}
