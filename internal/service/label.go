package service

import (
	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

type LabelService interface {
	Labels(user *domain.User, boardId domain.BoardId) ([]domain.Label, error)
	Create(user *domain.User, boardId domain.BoardId, name, color string) (domain.Label, error)
	Update(user *domain.User, id int64, name, color *string) error
	Delete(user *domain.User, id int64) error
}

type LabelStorage interface {
	Board(id domain.BoardId) (domain.Board, error)
	CreateLabel(boardId domain.BoardId, name, color string) (domain.Label, error)
	Label(id int64) (domain.Label, error)
	LabelsByBoard(boardId domain.BoardId) ([]domain.Label, error)
	UpdateLabel(id int64, name, color *string) error
	DeleteCardLabelsByLabel(labelId int64) error
	DeleteLabel(id int64) error
}

type Label struct {
	storage LabelStorage
	access  *Access
}

func NewLabel(storage LabelStorage, access *Access) *Label {
	return &Label{storage: storage, access: access}
}

func (l *Label) requireLabelOwner(user *domain.User, id int64) (domain.Label, error) {
	label, err := l.storage.Label(id)
	if err != nil {
		return domain.Label{}, err
	}
	board, err := l.storage.Board(label.BoardId)
	if err != nil {
		return domain.Label{}, err
	}
	if err := requireMemberManagement(l.access, user, board); err != nil {
		return domain.Label{}, err
	}
	return label, nil
}

func (l *Label) Labels(user *domain.User, boardId domain.BoardId) ([]domain.Label, error) {
	board, err := l.storage.Board(boardId)
	if err != nil {
		return nil, err
	}
	if err := requireBoardView(l.access, user, board); err != nil {
		return nil, err
	}
	return l.storage.LabelsByBoard(boardId)
}

// Create adds a label to the board's palette. Owner or admin only.
func (l *Label) Create(user *domain.User, boardId domain.BoardId, name, color string) (domain.Label, error) {
	board, err := l.storage.Board(boardId)
	if err != nil {
		return domain.Label{}, err
	}
	if err := requireMemberManagement(l.access, user, board); err != nil {
		return domain.Label{}, err
	}
	return l.storage.CreateLabel(boardId, name, color)
}

func (l *Label) Update(user *domain.User, id int64, name, color *string) error {
	if _, err := l.requireLabelOwner(user, id); err != nil {
		return err
	}
	if name == nil && color == nil {
		return internal_errors.BadRequest("Nothing to update")
	}
	return l.storage.UpdateLabel(id, name, color)
}

// Delete removes the label everywhere: its card attachments first, then the
// label row itself.
func (l *Label) Delete(user *domain.User, id int64) error {
	if _, err := l.requireLabelOwner(user, id); err != nil {
		return err
	}
	if err := l.storage.DeleteCardLabelsByLabel(id); err != nil {
		return err
	}
	return l.storage.DeleteLabel(id)
}
