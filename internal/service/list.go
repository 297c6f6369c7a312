package service

import (
	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

type ListService interface {
	Create(user *domain.User, boardId domain.BoardId, title string) (domain.List, error)
	Update(user *domain.User, id domain.ListId, title *string, position *int64) error
	Delete(user *domain.User, id domain.ListId) error
}

type ListStorage interface {
	Board(id domain.BoardId) (domain.Board, error)
	CreateList(boardId domain.BoardId, title string) (domain.List, error)
	List(id domain.ListId) (domain.List, error)
	UpdateList(id domain.ListId, title *string, position *int64) error
}

type ListDeleter interface {
	DeleteList(id domain.ListId) error
}

type List struct {
	storage ListStorage
	access  *Access
	cascade ListDeleter
}

func NewList(storage ListStorage, access *Access, cascade ListDeleter) *List {
	return &List{storage: storage, access: access, cascade: cascade}
}

// requireListEditor loads the list's board and checks editor rights on it.
func (l *List) requireListEditor(user *domain.User, id domain.ListId) (domain.List, error) {
	list, err := l.storage.List(id)
	if err != nil {
		return domain.List{}, err
	}
	board, err := l.storage.Board(list.BoardId)
	if err != nil {
		return domain.List{}, err
	}
	if err := requireBoardRole(l.access, user, board, domain.BoardRoleEditor); err != nil {
		return domain.List{}, err
	}
	return list, nil
}

// Create appends a list at the end of the board. Editor and up.
func (l *List) Create(user *domain.User, boardId domain.BoardId, title string) (domain.List, error) {
	board, err := l.storage.Board(boardId)
	if err != nil {
		return domain.List{}, err
	}
	if err := requireBoardRole(l.access, user, board, domain.BoardRoleEditor); err != nil {
		return domain.List{}, err
	}
	return l.storage.CreateList(boardId, title)
}

func (l *List) Update(user *domain.User, id domain.ListId, title *string, position *int64) error {
	if _, err := l.requireListEditor(user, id); err != nil {
		return err
	}
	if title == nil && position == nil {
		return internal_errors.BadRequest("Nothing to update")
	}
	return l.storage.UpdateList(id, title, position)
}

// Delete cascades the list and every card beneath it. Editor and up.
func (l *List) Delete(user *domain.User, id domain.ListId) error {
	if _, err := l.requireListEditor(user, id); err != nil {
		return err
	}
	return l.cascade.DeleteList(id)
}
