package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

// MockAccessStore mocks the AccessStore interface.
type MockAccessStore struct {
	publicBoards   func() ([]domain.Board, error)
	allBoards      func() ([]domain.Board, error)
	boardsOwnedBy  func(userId domain.UserId) ([]domain.Board, error)
	boardsMemberOf func(userId domain.UserId) ([]domain.Board, error)
	boardMember    func(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error)
}

func (m *MockAccessStore) PublicBoards() ([]domain.Board, error) {
	if m.publicBoards != nil {
		return m.publicBoards()
	}
	return nil, nil
}

func (m *MockAccessStore) AllBoards() ([]domain.Board, error) {
	if m.allBoards != nil {
		return m.allBoards()
	}
	return nil, nil
}

func (m *MockAccessStore) BoardsOwnedBy(userId domain.UserId) ([]domain.Board, error) {
	if m.boardsOwnedBy != nil {
		return m.boardsOwnedBy(userId)
	}
	return nil, nil
}

func (m *MockAccessStore) BoardsMemberOf(userId domain.UserId) ([]domain.Board, error) {
	if m.boardsMemberOf != nil {
		return m.boardsMemberOf(userId)
	}
	return nil, nil
}

func (m *MockAccessStore) BoardMember(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error) {
	if m.boardMember != nil {
		return m.boardMember(boardId, userId)
	}
	return domain.BoardMember{}, internal_errors.NotFound("Member not found")
}

func ownedBoard(id domain.BoardId, ownerId domain.UserId) domain.Board {
	return domain.Board{Id: id, Title: "b", OwnerId: &ownerId}
}

func publicBoard(id domain.BoardId) domain.Board {
	return domain.Board{Id: id, Title: "p"}
}

func regularUser(id domain.UserId) *domain.User {
	return &domain.User{Id: id, Role: domain.GlobalRoleUser}
}

func adminUser(id domain.UserId) *domain.User {
	return &domain.User{Id: id, Role: domain.GlobalRoleAdmin}
}

func TestBoardsVisibleTo(t *testing.T) {
	t.Run("anonymous sees only public boards", func(t *testing.T) {
		store := &MockAccessStore{
			publicBoards: func() ([]domain.Board, error) {
				return []domain.Board{publicBoard(1)}, nil
			},
		}
		boards, err := NewAccess(store).BoardsVisibleTo(nil)
		require.NoError(t, err)
		require.Len(t, boards, 1)
		assert.Equal(t, int64(1), boards[0].Id)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		store := &MockAccessStore{
			allBoards: func() ([]domain.Board, error) {
				return []domain.Board{publicBoard(1), ownedBoard(2, 9)}, nil
			},
		}
		boards, err := NewAccess(store).BoardsVisibleTo(adminUser(5))
		require.NoError(t, err)
		assert.Len(t, boards, 2)
	})

	t.Run("user gets owned and membered boards deduplicated", func(t *testing.T) {
		store := &MockAccessStore{
			boardsOwnedBy: func(userId domain.UserId) ([]domain.Board, error) {
				return []domain.Board{ownedBoard(1, userId), ownedBoard(2, userId)}, nil
			},
			boardsMemberOf: func(userId domain.UserId) ([]domain.Board, error) {
				// Board 2 shows up in both sets (owner with a membership row).
				return []domain.Board{ownedBoard(2, userId), ownedBoard(3, 42)}, nil
			},
		}
		boards, err := NewAccess(store).BoardsVisibleTo(regularUser(7))
		require.NoError(t, err)
		require.Len(t, boards, 3)
		assert.Equal(t, []int64{1, 2, 3}, []int64{boards[0].Id, boards[1].Id, boards[2].Id})
	})

	t.Run("storage error propagates", func(t *testing.T) {
		store := &MockAccessStore{
			boardsOwnedBy: func(userId domain.UserId) ([]domain.Board, error) {
				return nil, errors.New("db down")
			},
		}
		_, err := NewAccess(store).BoardsVisibleTo(regularUser(7))
		require.Error(t, err)
	})
}

func TestCanAccessBoard(t *testing.T) {
	access := NewAccess(&MockAccessStore{})

	t.Run("anonymous can read public boards only", func(t *testing.T) {
		ok, err := access.CanAccessBoard(nil, publicBoard(1))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = access.CanAccessBoard(nil, ownedBoard(2, 9))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("admin can read anything", func(t *testing.T) {
		ok, err := access.CanAccessBoard(adminUser(1), ownedBoard(2, 9))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("owner can read without a membership row", func(t *testing.T) {
		ok, err := access.CanAccessBoard(regularUser(9), ownedBoard(2, 9))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("member can read", func(t *testing.T) {
		store := &MockAccessStore{
			boardMember: func(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error) {
				return domain.BoardMember{BoardId: boardId, UserId: userId, Role: domain.BoardRoleViewer}, nil
			},
		}
		ok, err := NewAccess(store).CanAccessBoard(regularUser(5), ownedBoard(2, 9))
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("non-member cannot read a private board", func(t *testing.T) {
		ok, err := access.CanAccessBoard(regularUser(5), ownedBoard(2, 9))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("authenticated non-member can read a public board", func(t *testing.T) {
		ok, err := access.CanAccessBoard(regularUser(5), publicBoard(1))
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestEffectiveBoardRole(t *testing.T) {
	t.Run("owner is always owner", func(t *testing.T) {
		store := &MockAccessStore{
			boardMember: func(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error) {
				t.Fatal("owner must not hit the membership table")
				return domain.BoardMember{}, nil
			},
		}
		role, err := NewAccess(store).EffectiveBoardRole(*regularUser(9), ownedBoard(2, 9))
		require.NoError(t, err)
		assert.Equal(t, domain.BoardRoleOwner, role)
	})

	t.Run("member role is normalized", func(t *testing.T) {
		store := &MockAccessStore{
			boardMember: func(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error) {
				return domain.BoardMember{Role: "  EdItOr "}, nil
			},
		}
		role, err := NewAccess(store).EffectiveBoardRole(*regularUser(5), ownedBoard(2, 9))
		require.NoError(t, err)
		assert.Equal(t, domain.BoardRoleEditor, role)
	})

	t.Run("empty stored role falls back to viewer", func(t *testing.T) {
		store := &MockAccessStore{
			boardMember: func(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error) {
				return domain.BoardMember{Role: ""}, nil
			},
		}
		role, err := NewAccess(store).EffectiveBoardRole(*regularUser(5), ownedBoard(2, 9))
		require.NoError(t, err)
		assert.Equal(t, domain.BoardRoleViewer, role)
	})

	t.Run("non-member gets empty role without error", func(t *testing.T) {
		role, err := NewAccess(&MockAccessStore{}).EffectiveBoardRole(*regularUser(5), ownedBoard(2, 9))
		require.NoError(t, err)
		assert.Equal(t, "", role)
	})
}

func TestCanManage(t *testing.T) {
	access := NewAccess(&MockAccessStore{})

	assert.True(t, access.CanManageMembers(*adminUser(1), ownedBoard(2, 9)))
	assert.True(t, access.CanManageMembers(*regularUser(9), ownedBoard(2, 9)))
	assert.False(t, access.CanManageMembers(*regularUser(5), ownedBoard(2, 9)))
	assert.False(t, access.CanManageMembers(*regularUser(5), publicBoard(1)), "public boards have no owner to manage them")

	assert.True(t, access.CanManageUsers(adminUser(1)))
	assert.False(t, access.CanManageUsers(regularUser(1)))
	assert.False(t, access.CanManageUsers(nil))
}
