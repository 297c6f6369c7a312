package service

import (
	"fmt"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
	"github.com/kanbo-dev/kanbo/internal/logger"
)

// CascadeStore is the slice of the entity store the deletion engine needs:
// scoped id queries, bulk deletes by foreign key, and single-row deletes.
// Single-row deletes report a missing target as a 404-coded error.
type CascadeStore interface {
	ListIDsByBoard(boardId domain.BoardId) ([]domain.ListId, error)
	CardIDsByList(listId domain.ListId) ([]domain.CardId, error)
	ChecklistIDsByCard(cardId domain.CardId) ([]domain.ChecklistId, error)

	DeleteCardLabelsByCards(cardIds []domain.CardId) error
	DeleteCardMembersByCards(cardIds []domain.CardId) error
	DeleteCommentsByCards(cardIds []domain.CardId) error
	DeleteChecklistItemsByChecklists(checklistIds []domain.ChecklistId) error
	DeleteChecklistItemsByChecklist(checklistId domain.ChecklistId) error
	DeleteChecklistsByCards(cardIds []domain.CardId) error
	DeleteCardsByList(listId domain.ListId) error
	DeleteListsByBoard(boardId domain.BoardId) error
	DeleteLabelsByBoard(boardId domain.BoardId) error
	DeleteBoardMembersByBoard(boardId domain.BoardId) error

	DeleteBoard(id domain.BoardId) error
	DeleteList(id domain.ListId) error
	DeleteCard(id domain.CardId) error
	DeleteChecklist(id domain.ChecklistId) error
}

// Cascade deletes an entity together with everything beneath it, strictly
// bottom-up so no child row ever references a deleted parent. Steps run
// sequentially without a wrapping transaction: a mid-sequence failure leaves
// the already-deleted branches gone (best-effort, documented consistency
// gap). A missing target row surfaces as a 404-coded error; any other error
// is logged with the failing step and propagated.
type Cascade struct {
	storage CascadeStore
}

func NewCascade(storage CascadeStore) *Cascade {
	return &Cascade{storage: storage}
}

// step runs one deletion step and logs failures with the scope entity id so
// the caller's generic failure result can be traced back in the logs.
func step(name string, id int64, fn func() error) error {
	if err := fn(); err != nil {
		logger.Log.Error("cascade step failed", "step", name, "id", id, "error", err)
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// scrubCards removes everything hanging off the given card set, bottom-up:
// join tables and leaf entities first, then checklists. The card rows
// themselves are left to the caller, which deletes them by id or in bulk.
// scope is the entity id used in failure logs (card or list).
func (c *Cascade) scrubCards(scope int64, cardIds []domain.CardId) error {
	if len(cardIds) == 0 {
		return nil
	}
	if err := step("delete card labels", scope, func() error {
		return c.storage.DeleteCardLabelsByCards(cardIds)
	}); err != nil {
		return err
	}
	if err := step("delete card members", scope, func() error {
		return c.storage.DeleteCardMembersByCards(cardIds)
	}); err != nil {
		return err
	}
	if err := step("delete comments", scope, func() error {
		return c.storage.DeleteCommentsByCards(cardIds)
	}); err != nil {
		return err
	}
	var checklistIds []domain.ChecklistId
	for _, cardId := range cardIds {
		ids, err := c.storage.ChecklistIDsByCard(cardId)
		if err != nil {
			logger.Log.Error("cascade step failed", "step", "fetch checklists", "id", cardId, "error", err)
			return fmt.Errorf("fetch checklists: %w", err)
		}
		checklistIds = append(checklistIds, ids...)
	}
	if err := step("delete checklist items", scope, func() error {
		return c.storage.DeleteChecklistItemsByChecklists(checklistIds)
	}); err != nil {
		return err
	}
	return step("delete checklists", scope, func() error {
		return c.storage.DeleteChecklistsByCards(cardIds)
	})
}

// scrubList removes a list's cards and all their descendants, batched over
// the list's card set. The list row itself is left to the caller.
func (c *Cascade) scrubList(listId domain.ListId) error {
	cardIds, err := c.storage.CardIDsByList(listId)
	if err != nil {
		logger.Log.Error("cascade step failed", "step", "fetch cards", "id", listId, "error", err)
		return fmt.Errorf("fetch cards: %w", err)
	}
	if err := c.scrubCards(listId, cardIds); err != nil {
		return err
	}
	return step("delete cards", listId, func() error {
		return c.storage.DeleteCardsByList(listId)
	})
}

// DeleteCard removes a card with its labels, members, comments, checklist
// items, and checklists. Returns a 404-coded error when the card row itself
// does not exist; descendant deletes matching zero rows are fine.
func (c *Cascade) DeleteCard(id domain.CardId) error {
	if err := c.scrubCards(id, []domain.CardId{id}); err != nil {
		return err
	}
	return c.storage.DeleteCard(id)
}

// DeleteList removes a list, all its cards, and everything beneath them.
func (c *Cascade) DeleteList(id domain.ListId) error {
	if err := c.scrubList(id); err != nil {
		return err
	}
	return c.storage.DeleteList(id)
}

// DeleteBoard removes a board: every list beneath it with its full card
// subtree, then the board-scoped labels and memberships, then the board row.
func (c *Cascade) DeleteBoard(id domain.BoardId) error {
	listIds, err := c.storage.ListIDsByBoard(id)
	if err != nil {
		logger.Log.Error("cascade step failed", "step", "fetch lists", "id", id, "error", err)
		return fmt.Errorf("fetch lists: %w", err)
	}
	for _, listId := range listIds {
		if err := c.scrubList(listId); err != nil {
			return err
		}
	}
	if err := step("delete lists", id, func() error {
		return c.storage.DeleteListsByBoard(id)
	}); err != nil {
		return err
	}
	if err := step("delete labels", id, func() error {
		return c.storage.DeleteLabelsByBoard(id)
	}); err != nil {
		return err
	}
	if err := step("delete board members", id, func() error {
		return c.storage.DeleteBoardMembersByBoard(id)
	}); err != nil {
		return err
	}
	return c.storage.DeleteBoard(id)
}

// DeleteChecklist removes a checklist and its items.
func (c *Cascade) DeleteChecklist(id domain.ChecklistId) error {
	if err := step("delete checklist items", id, func() error {
		return c.storage.DeleteChecklistItemsByChecklist(id)
	}); err != nil {
		return err
	}
	return c.storage.DeleteChecklist(id)
}

// IsNotFound reports whether a cascade result means "target row absent"
// rather than a store failure.
func IsNotFound(err error) bool {
	return internal_errors.IsNotFound(err)
}
