package service

import (
	"time"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

type ChecklistService interface {
	Create(user *domain.User, cardId domain.CardId, title string) (domain.Checklist, error)
	Update(user *domain.User, id domain.ChecklistId, title *string, position *int64) error
	Delete(user *domain.User, id domain.ChecklistId) error

	AddItem(user *domain.User, checklistId domain.ChecklistId, content string, assigneeId *domain.UserId, dueAt *time.Time) (domain.ChecklistItem, error)
	UpdateItem(user *domain.User, itemId int64, upd ChecklistItemUpdate) error
	DeleteItem(user *domain.User, itemId int64) error
}

type ChecklistItemUpdate struct {
	Content    *string
	Completed  *bool
	Position   *int64
	AssigneeId *domain.UserId
	DueAt      *time.Time
}

type ChecklistStorage interface {
	Board(id domain.BoardId) (domain.Board, error)
	List(id domain.ListId) (domain.List, error)
	Card(id domain.CardId) (domain.Card, error)

	CreateChecklist(cardId domain.CardId, title string) (domain.Checklist, error)
	Checklist(id domain.ChecklistId) (domain.Checklist, error)
	UpdateChecklist(id domain.ChecklistId, title *string, position *int64) error

	SaveChecklistItem(item domain.ChecklistItem) (domain.ChecklistItem, error)
	ChecklistItem(id int64) (domain.ChecklistItem, error)
	UpdateChecklistItem(id int64, content *string, completed *bool, position *int64, assigneeId *domain.UserId, dueAt *time.Time) error
	DeleteChecklistItem(id int64) error
}

type ChecklistDeleter interface {
	DeleteChecklist(id domain.ChecklistId) error
}

type Checklist struct {
	storage ChecklistStorage
	access  *Access
	cascade ChecklistDeleter
}

func NewChecklist(storage ChecklistStorage, access *Access, cascade ChecklistDeleter) *Checklist {
	return &Checklist{storage: storage, access: access, cascade: cascade}
}

func (cl *Checklist) requireCardEditor(user *domain.User, cardId domain.CardId) error {
	card, err := cl.storage.Card(cardId)
	if err != nil {
		return err
	}
	list, err := cl.storage.List(card.ListId)
	if err != nil {
		return err
	}
	board, err := cl.storage.Board(list.BoardId)
	if err != nil {
		return err
	}
	return requireBoardRole(cl.access, user, board, domain.BoardRoleEditor)
}

func (cl *Checklist) requireChecklistEditor(user *domain.User, id domain.ChecklistId) (domain.Checklist, error) {
	checklist, err := cl.storage.Checklist(id)
	if err != nil {
		return domain.Checklist{}, err
	}
	return checklist, cl.requireCardEditor(user, checklist.CardId)
}

func (cl *Checklist) Create(user *domain.User, cardId domain.CardId, title string) (domain.Checklist, error) {
	if err := cl.requireCardEditor(user, cardId); err != nil {
		return domain.Checklist{}, err
	}
	return cl.storage.CreateChecklist(cardId, title)
}

func (cl *Checklist) Update(user *domain.User, id domain.ChecklistId, title *string, position *int64) error {
	if _, err := cl.requireChecklistEditor(user, id); err != nil {
		return err
	}
	if title == nil && position == nil {
		return internal_errors.BadRequest("Nothing to update")
	}
	return cl.storage.UpdateChecklist(id, title, position)
}

// Delete removes the checklist with its items.
func (cl *Checklist) Delete(user *domain.User, id domain.ChecklistId) error {
	if _, err := cl.requireChecklistEditor(user, id); err != nil {
		return err
	}
	return cl.cascade.DeleteChecklist(id)
}

func (cl *Checklist) AddItem(user *domain.User, checklistId domain.ChecklistId, content string, assigneeId *domain.UserId, dueAt *time.Time) (domain.ChecklistItem, error) {
	if _, err := cl.requireChecklistEditor(user, checklistId); err != nil {
		return domain.ChecklistItem{}, err
	}
	return cl.storage.SaveChecklistItem(domain.ChecklistItem{
		ChecklistId: checklistId,
		Content:     content,
		AssigneeId:  assigneeId,
		DueAt:       dueAt,
	})
}

func (cl *Checklist) UpdateItem(user *domain.User, itemId int64, upd ChecklistItemUpdate) error {
	item, err := cl.storage.ChecklistItem(itemId)
	if err != nil {
		return err
	}
	if _, err := cl.requireChecklistEditor(user, item.ChecklistId); err != nil {
		return err
	}
	if upd.Content == nil && upd.Completed == nil && upd.Position == nil &&
		upd.AssigneeId == nil && upd.DueAt == nil {
		return internal_errors.BadRequest("Nothing to update")
	}
	return cl.storage.UpdateChecklistItem(itemId, upd.Content, upd.Completed, upd.Position, upd.AssigneeId, upd.DueAt)
}

func (cl *Checklist) DeleteItem(user *domain.User, itemId int64) error {
	item, err := cl.storage.ChecklistItem(itemId)
	if err != nil {
		return err
	}
	if _, err := cl.requireChecklistEditor(user, item.ChecklistId); err != nil {
		return err
	}
	return cl.storage.DeleteChecklistItem(itemId)
}
