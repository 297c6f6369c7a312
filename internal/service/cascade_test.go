package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

// MockCascadeStore records every call in order and lets tests override
// individual primitives.
type MockCascadeStore struct {
	calls []string

	listIDsByBoard     func(boardId domain.BoardId) ([]domain.ListId, error)
	cardIDsByList      func(listId domain.ListId) ([]domain.CardId, error)
	checklistIDsByCard func(cardId domain.CardId) ([]domain.ChecklistId, error)

	deleteCommentsByCards func(cardIds []domain.CardId) error
	deleteBoard           func(id domain.BoardId) error
	deleteCard            func(id domain.CardId) error
}

func (m *MockCascadeStore) record(name string) { m.calls = append(m.calls, name) }

func (m *MockCascadeStore) ListIDsByBoard(boardId domain.BoardId) ([]domain.ListId, error) {
	m.record("ListIDsByBoard")
	if m.listIDsByBoard != nil {
		return m.listIDsByBoard(boardId)
	}
	return nil, nil
}

func (m *MockCascadeStore) CardIDsByList(listId domain.ListId) ([]domain.CardId, error) {
	m.record("CardIDsByList")
	if m.cardIDsByList != nil {
		return m.cardIDsByList(listId)
	}
	return nil, nil
}

func (m *MockCascadeStore) ChecklistIDsByCard(cardId domain.CardId) ([]domain.ChecklistId, error) {
	m.record("ChecklistIDsByCard")
	if m.checklistIDsByCard != nil {
		return m.checklistIDsByCard(cardId)
	}
	return nil, nil
}

func (m *MockCascadeStore) DeleteCardLabelsByCards(cardIds []domain.CardId) error {
	m.record("DeleteCardLabelsByCards")
	return nil
}

func (m *MockCascadeStore) DeleteCardMembersByCards(cardIds []domain.CardId) error {
	m.record("DeleteCardMembersByCards")
	return nil
}

func (m *MockCascadeStore) DeleteCommentsByCards(cardIds []domain.CardId) error {
	m.record("DeleteCommentsByCards")
	if m.deleteCommentsByCards != nil {
		return m.deleteCommentsByCards(cardIds)
	}
	return nil
}

func (m *MockCascadeStore) DeleteChecklistItemsByChecklists(checklistIds []domain.ChecklistId) error {
	m.record("DeleteChecklistItemsByChecklists")
	return nil
}

func (m *MockCascadeStore) DeleteChecklistItemsByChecklist(checklistId domain.ChecklistId) error {
	m.record("DeleteChecklistItemsByChecklist")
	return nil
}

func (m *MockCascadeStore) DeleteChecklistsByCards(cardIds []domain.CardId) error {
	m.record("DeleteChecklistsByCards")
	return nil
}

func (m *MockCascadeStore) DeleteCardsByList(listId domain.ListId) error {
	m.record("DeleteCardsByList")
	return nil
}

func (m *MockCascadeStore) DeleteListsByBoard(boardId domain.BoardId) error {
	m.record("DeleteListsByBoard")
	return nil
}

func (m *MockCascadeStore) DeleteLabelsByBoard(boardId domain.BoardId) error {
	m.record("DeleteLabelsByBoard")
	return nil
}

func (m *MockCascadeStore) DeleteBoardMembersByBoard(boardId domain.BoardId) error {
	m.record("DeleteBoardMembersByBoard")
	return nil
}

func (m *MockCascadeStore) DeleteBoard(id domain.BoardId) error {
	m.record("DeleteBoard")
	if m.deleteBoard != nil {
		return m.deleteBoard(id)
	}
	return nil
}

func (m *MockCascadeStore) DeleteList(id domain.ListId) error {
	m.record("DeleteList")
	return nil
}

func (m *MockCascadeStore) DeleteCard(id domain.CardId) error {
	m.record("DeleteCard")
	if m.deleteCard != nil {
		return m.deleteCard(id)
	}
	return nil
}

func (m *MockCascadeStore) DeleteChecklist(id domain.ChecklistId) error {
	m.record("DeleteChecklist")
	return nil
}

func TestCascadeDeleteCardOrder(t *testing.T) {
	store := &MockCascadeStore{
		checklistIDsByCard: func(cardId domain.CardId) ([]domain.ChecklistId, error) {
			return []domain.ChecklistId{10}, nil
		},
	}
	cascade := NewCascade(store)

	require.NoError(t, cascade.DeleteCard(1))

	assert.Equal(t, []string{
		"DeleteCardLabelsByCards",
		"DeleteCardMembersByCards",
		"DeleteCommentsByCards",
		"ChecklistIDsByCard",
		"DeleteChecklistItemsByChecklists",
		"DeleteChecklistsByCards",
		"DeleteCard",
	}, store.calls)
}

func TestCascadeDeleteListOrder(t *testing.T) {
	store := &MockCascadeStore{
		cardIDsByList: func(listId domain.ListId) ([]domain.CardId, error) {
			return []domain.CardId{1, 2}, nil
		},
	}
	cascade := NewCascade(store)

	require.NoError(t, cascade.DeleteList(5))

	assert.Equal(t, []string{
		"CardIDsByList",
		"DeleteCardLabelsByCards",
		"DeleteCardMembersByCards",
		"DeleteCommentsByCards",
		"ChecklistIDsByCard",
		"ChecklistIDsByCard",
		"DeleteChecklistItemsByChecklists",
		"DeleteChecklistsByCards",
		"DeleteCardsByList",
		"DeleteList",
	}, store.calls)
}

func TestCascadeDeleteListEmpty(t *testing.T) {
	store := &MockCascadeStore{}
	cascade := NewCascade(store)

	require.NoError(t, cascade.DeleteList(5))

	// With no cards the per-card scrub is skipped entirely.
	assert.Equal(t, []string{"CardIDsByList", "DeleteCardsByList", "DeleteList"}, store.calls)
}

func TestCascadeDeleteBoardOrder(t *testing.T) {
	store := &MockCascadeStore{
		listIDsByBoard: func(boardId domain.BoardId) ([]domain.ListId, error) {
			return []domain.ListId{1, 2}, nil
		},
		cardIDsByList: func(listId domain.ListId) ([]domain.CardId, error) {
			if listId == 1 {
				return []domain.CardId{11}, nil
			}
			return nil, nil
		},
	}
	cascade := NewCascade(store)

	require.NoError(t, cascade.DeleteBoard(7))

	assert.Equal(t, []string{
		"ListIDsByBoard",
		// list 1 has a card
		"CardIDsByList",
		"DeleteCardLabelsByCards",
		"DeleteCardMembersByCards",
		"DeleteCommentsByCards",
		"ChecklistIDsByCard",
		"DeleteChecklistItemsByChecklists",
		"DeleteChecklistsByCards",
		"DeleteCardsByList",
		// list 2 is empty
		"CardIDsByList",
		"DeleteCardsByList",
		// board-scoped deletes come after all list subtrees
		"DeleteListsByBoard",
		"DeleteLabelsByBoard",
		"DeleteBoardMembersByBoard",
		"DeleteBoard",
	}, store.calls)
}

func TestCascadeDeleteChecklistOrder(t *testing.T) {
	store := &MockCascadeStore{}
	cascade := NewCascade(store)

	require.NoError(t, cascade.DeleteChecklist(3))
	assert.Equal(t, []string{"DeleteChecklistItemsByChecklist", "DeleteChecklist"}, store.calls)
}

func TestCascadeMissingTarget(t *testing.T) {
	store := &MockCascadeStore{
		deleteBoard: func(id domain.BoardId) error {
			return internal_errors.NotFound("Board not found")
		},
	}
	cascade := NewCascade(store)

	err := cascade.DeleteBoard(404)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestCascadeStepFailureStopsSequence(t *testing.T) {
	store := &MockCascadeStore{
		cardIDsByList: func(listId domain.ListId) ([]domain.CardId, error) {
			return []domain.CardId{1}, nil
		},
		deleteCommentsByCards: func(cardIds []domain.CardId) error {
			return errors.New("connection reset")
		},
	}
	cascade := NewCascade(store)

	err := cascade.DeleteList(5)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "delete comments")

	// Nothing after the failing step ran.
	assert.Equal(t, []string{
		"CardIDsByList",
		"DeleteCardLabelsByCards",
		"DeleteCardMembersByCards",
		"DeleteCommentsByCards",
	}, store.calls)
}
