package service

import (
	"time"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

type CardService interface {
	Create(user *domain.User, listId domain.ListId, title, description string, dueAt *time.Time) (domain.Card, error)
	Detail(user *domain.User, id domain.CardId) (domain.CardDetail, error)
	Update(user *domain.User, id domain.CardId, upd CardUpdate) error
	Delete(user *domain.User, id domain.CardId) error

	AssignMember(user *domain.User, cardId domain.CardId, memberId domain.UserId) error
	UnassignMember(user *domain.User, cardId domain.CardId, memberId domain.UserId) error
	AttachLabel(user *domain.User, cardId domain.CardId, labelId int64) error
	DetachLabel(user *domain.User, cardId domain.CardId, labelId int64) error
}

// CardUpdate carries the optional fields of a card patch. ClearDueAt wins
// over DueAt when both are set.
type CardUpdate struct {
	Title       *string
	Description *string
	Position    *int64
	ListId      *domain.ListId
	DueAt       *time.Time
	ClearDueAt  bool
}

type CardStorage interface {
	Board(id domain.BoardId) (domain.Board, error)
	List(id domain.ListId) (domain.List, error)
	CreateCard(listId domain.ListId, title, description string, dueAt *time.Time) (domain.Card, error)
	Card(id domain.CardId) (domain.Card, error)
	UpdateCard(id domain.CardId, title, description *string, position *int64, listId *domain.ListId, dueAt *time.Time, clearDueAt bool) error

	ChecklistsByCard(cardId domain.CardId) ([]*domain.Checklist, error)
	CardMembersByCard(cardId domain.CardId) ([]domain.CardMember, error)
	LabelsByCard(cardId domain.CardId) ([]domain.Label, error)
	CommentsByCard(cardId domain.CardId) ([]*domain.Comment, error)

	User(id domain.UserId) (domain.User, error)
	SaveCardMember(cardId domain.CardId, userId domain.UserId) error
	DeleteCardMember(cardId domain.CardId, userId domain.UserId) error
	Label(id int64) (domain.Label, error)
	SaveCardLabel(cardId domain.CardId, labelId int64) error
	DeleteCardLabel(cardId domain.CardId, labelId int64) error
}

type CardDeleter interface {
	DeleteCard(id domain.CardId) error
}

// Renderer turns raw markdown into sanitized HTML for the read path.
type Renderer interface {
	Render(text string) string
}

type Card struct {
	storage  CardStorage
	access   *Access
	cascade  CardDeleter
	renderer Renderer
}

func NewCard(storage CardStorage, access *Access, cascade CardDeleter, renderer Renderer) *Card {
	return &Card{storage: storage, access: access, cascade: cascade, renderer: renderer}
}

// boardOfCard resolves card -> list -> board.
func (c *Card) boardOfCard(id domain.CardId) (domain.Card, domain.List, domain.Board, error) {
	card, err := c.storage.Card(id)
	if err != nil {
		return domain.Card{}, domain.List{}, domain.Board{}, err
	}
	list, err := c.storage.List(card.ListId)
	if err != nil {
		return domain.Card{}, domain.List{}, domain.Board{}, err
	}
	board, err := c.storage.Board(list.BoardId)
	if err != nil {
		return domain.Card{}, domain.List{}, domain.Board{}, err
	}
	return card, list, board, nil
}

func (c *Card) requireCardEditor(user *domain.User, id domain.CardId) (domain.Card, domain.Board, error) {
	card, _, board, err := c.boardOfCard(id)
	if err != nil {
		return domain.Card{}, domain.Board{}, err
	}
	if err := requireBoardRole(c.access, user, board, domain.BoardRoleEditor); err != nil {
		return domain.Card{}, domain.Board{}, err
	}
	return card, board, nil
}

// Create appends a card at the end of the list. Editor and up.
func (c *Card) Create(user *domain.User, listId domain.ListId, title, description string, dueAt *time.Time) (domain.Card, error) {
	list, err := c.storage.List(listId)
	if err != nil {
		return domain.Card{}, err
	}
	board, err := c.storage.Board(list.BoardId)
	if err != nil {
		return domain.Card{}, err
	}
	if err := requireBoardRole(c.access, user, board, domain.BoardRoleEditor); err != nil {
		return domain.Card{}, err
	}
	return c.storage.CreateCard(listId, title, description, dueAt)
}

// Detail assembles the aggregate card view: the card with its list and
// board, checklists with items, members, labels, rendered comments, and a
// checklist/due status summary.
func (c *Card) Detail(user *domain.User, id domain.CardId) (domain.CardDetail, error) {
	card, list, board, err := c.boardOfCard(id)
	if err != nil {
		return domain.CardDetail{}, err
	}
	if err := requireBoardView(c.access, user, board); err != nil {
		return domain.CardDetail{}, err
	}

	checklists, err := c.storage.ChecklistsByCard(id)
	if err != nil {
		return domain.CardDetail{}, err
	}
	members, err := c.storage.CardMembersByCard(id)
	if err != nil {
		return domain.CardDetail{}, err
	}
	labels, err := c.storage.LabelsByCard(id)
	if err != nil {
		return domain.CardDetail{}, err
	}
	comments, err := c.storage.CommentsByCard(id)
	if err != nil {
		return domain.CardDetail{}, err
	}
	for _, comment := range comments {
		comment.Html = c.renderer.Render(comment.Content)
	}

	detail := domain.CardDetail{
		Card:       card,
		List:       list,
		Board:      board,
		Checklists: checklists,
		Members:    members,
		Labels:     labels,
		Comments:   comments,
		Status:     cardStatus(card, checklists),
	}
	if card.Description != "" {
		detail.DescriptionHtml = c.renderer.Render(card.Description)
	}
	return detail, nil
}

func cardStatus(card domain.Card, checklists []*domain.Checklist) domain.CardStatus {
	var status domain.CardStatus
	for _, checklist := range checklists {
		for _, item := range checklist.Items {
			status.TotalItems++
			if item.Completed {
				status.DoneItems++
			}
		}
	}
	status.Overdue = card.DueAt != nil && card.DueAt.Before(time.Now())
	return status
}

// Update patches card fields. Moving the card to another list requires the
// target list to belong to the same board.
func (c *Card) Update(user *domain.User, id domain.CardId, upd CardUpdate) error {
	_, board, err := c.requireCardEditor(user, id)
	if err != nil {
		return err
	}
	if upd.Title == nil && upd.Description == nil && upd.Position == nil &&
		upd.ListId == nil && upd.DueAt == nil && !upd.ClearDueAt {
		return internal_errors.BadRequest("Nothing to update")
	}
	if upd.ListId != nil {
		target, err := c.storage.List(*upd.ListId)
		if err != nil {
			return err
		}
		if target.BoardId != board.Id {
			return internal_errors.BadRequest("Target list belongs to another board")
		}
	}
	return c.storage.UpdateCard(id, upd.Title, upd.Description, upd.Position, upd.ListId, upd.DueAt, upd.ClearDueAt)
}

// Delete cascades the card subtree. Editor and up.
func (c *Card) Delete(user *domain.User, id domain.CardId) error {
	if _, _, err := c.requireCardEditor(user, id); err != nil {
		return err
	}
	return c.cascade.DeleteCard(id)
}

// AssignMember puts a user on the card. The assignee must exist; membership
// on the board is not required, matching how labels stay attachable after a
// member leaves.
func (c *Card) AssignMember(user *domain.User, cardId domain.CardId, memberId domain.UserId) error {
	if _, _, err := c.requireCardEditor(user, cardId); err != nil {
		return err
	}
	if _, err := c.storage.User(memberId); err != nil {
		return err
	}
	return c.storage.SaveCardMember(cardId, memberId)
}

func (c *Card) UnassignMember(user *domain.User, cardId domain.CardId, memberId domain.UserId) error {
	if _, _, err := c.requireCardEditor(user, cardId); err != nil {
		return err
	}
	return c.storage.DeleteCardMember(cardId, memberId)
}

// AttachLabel links a board label to the card. The label must belong to the
// card's board.
func (c *Card) AttachLabel(user *domain.User, cardId domain.CardId, labelId int64) error {
	_, board, err := c.requireCardEditor(user, cardId)
	if err != nil {
		return err
	}
	label, err := c.storage.Label(labelId)
	if err != nil {
		return err
	}
	if label.BoardId != board.Id {
		return internal_errors.BadRequest("Label belongs to another board")
	}
	return c.storage.SaveCardLabel(cardId, labelId)
}

func (c *Card) DetachLabel(user *domain.User, cardId domain.CardId, labelId int64) error {
	if _, _, err := c.requireCardEditor(user, cardId); err != nil {
		return err
	}
	return c.storage.DeleteCardLabel(cardId, labelId)
}
