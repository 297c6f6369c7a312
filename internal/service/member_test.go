package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

type MockMemberStorage struct {
	board                 func(id domain.BoardId) (domain.Board, error)
	userByEmail           func(email string) (domain.User, error)
	saveBoardMember       func(member domain.BoardMember) error
	boardMember           func(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error)
	boardMembers          func(boardId domain.BoardId) ([]domain.BoardMember, error)
	updateBoardMemberRole func(boardId domain.BoardId, userId domain.UserId, role string) error
	deleteBoardMember     func(boardId domain.BoardId, userId domain.UserId) error
}

func (m *MockMemberStorage) Board(id domain.BoardId) (domain.Board, error) {
	if m.board != nil {
		return m.board(id)
	}
	return domain.Board{}, internal_errors.NotFound("Board not found")
}

func (m *MockMemberStorage) UserByEmail(email string) (domain.User, error) {
	if m.userByEmail != nil {
		return m.userByEmail(email)
	}
	return domain.User{}, internal_errors.NotFound("User not found")
}

func (m *MockMemberStorage) SaveBoardMember(member domain.BoardMember) error {
	if m.saveBoardMember != nil {
		return m.saveBoardMember(member)
	}
	return nil
}

func (m *MockMemberStorage) BoardMember(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error) {
	if m.boardMember != nil {
		return m.boardMember(boardId, userId)
	}
	return domain.BoardMember{}, internal_errors.NotFound("Member not found")
}

func (m *MockMemberStorage) BoardMembers(boardId domain.BoardId) ([]domain.BoardMember, error) {
	if m.boardMembers != nil {
		return m.boardMembers(boardId)
	}
	return nil, nil
}

func (m *MockMemberStorage) UpdateBoardMemberRole(boardId domain.BoardId, userId domain.UserId, role string) error {
	if m.updateBoardMemberRole != nil {
		return m.updateBoardMemberRole(boardId, userId, role)
	}
	return nil
}

func (m *MockMemberStorage) DeleteBoardMember(boardId domain.BoardId, userId domain.UserId) error {
	if m.deleteBoardMember != nil {
		return m.deleteBoardMember(boardId, userId)
	}
	return nil
}

func assertStatusCode(t *testing.T, err error, want int) {
	t.Helper()
	require.Error(t, err)
	var coded *internal_errors.ErrorWithStatusCode
	require.ErrorAs(t, err, &coded)
	assert.Equal(t, want, coded.StatusCode)
}

func memberFixture() (*MockMemberStorage, *Member) {
	storage := &MockMemberStorage{
		board: func(id domain.BoardId) (domain.Board, error) {
			return ownedBoard(id, 9), nil
		},
	}
	return storage, NewMember(storage, NewAccess(&MockAccessStore{}))
}

func TestMemberAdd(t *testing.T) {
	t.Run("owner invites by email", func(t *testing.T) {
		storage, svc := memberFixture()
		var saved domain.BoardMember
		storage.userByEmail = func(email string) (domain.User, error) {
			return domain.User{Id: 5, Email: email}, nil
		}
		storage.saveBoardMember = func(member domain.BoardMember) error {
			saved = member
			return nil
		}
		storage.boardMember = func(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error) {
			if saved.UserId == userId {
				return saved, nil
			}
			return domain.BoardMember{}, internal_errors.NotFound("Member not found")
		}

		member, err := svc.Add(regularUser(9), 2, "invitee@example.com", "Editor")
		require.NoError(t, err)
		assert.Equal(t, int64(5), member.UserId)
		assert.Equal(t, domain.BoardRoleEditor, member.Role)
	})

	t.Run("non-owner cannot invite", func(t *testing.T) {
		_, svc := memberFixture()
		_, err := svc.Add(regularUser(5), 2, "invitee@example.com", "viewer")
		assertStatusCode(t, err, 403)
	})

	t.Run("owner role is never granted", func(t *testing.T) {
		_, svc := memberFixture()
		_, err := svc.Add(regularUser(9), 2, "invitee@example.com", "owner")
		assertStatusCode(t, err, 400)
	})

	t.Run("inviting the owner is a 400", func(t *testing.T) {
		storage, svc := memberFixture()
		storage.userByEmail = func(email string) (domain.User, error) {
			return domain.User{Id: 9, Email: email}, nil
		}
		_, err := svc.Add(regularUser(9), 2, "owner@example.com", "viewer")
		assertStatusCode(t, err, 400)
	})

	t.Run("inviting an existing member is a 400", func(t *testing.T) {
		storage, svc := memberFixture()
		storage.userByEmail = func(email string) (domain.User, error) {
			return domain.User{Id: 5, Email: email}, nil
		}
		storage.boardMember = func(boardId domain.BoardId, userId domain.UserId) (domain.BoardMember, error) {
			return domain.BoardMember{BoardId: boardId, UserId: userId, Role: domain.BoardRoleViewer}, nil
		}
		_, err := svc.Add(regularUser(9), 2, "invitee@example.com", "viewer")
		assertStatusCode(t, err, 400)
	})

	t.Run("unknown email surfaces as 404", func(t *testing.T) {
		_, svc := memberFixture()
		_, err := svc.Add(regularUser(9), 2, "nobody@example.com", "viewer")
		assertStatusCode(t, err, 404)
	})
}

func TestMemberChangeRole(t *testing.T) {
	t.Run("owner changes role", func(t *testing.T) {
		storage, svc := memberFixture()
		var gotRole string
		storage.updateBoardMemberRole = func(boardId domain.BoardId, userId domain.UserId, role string) error {
			gotRole = role
			return nil
		}
		require.NoError(t, svc.ChangeRole(regularUser(9), 2, 5, "VIEWER"))
		assert.Equal(t, domain.BoardRoleViewer, gotRole)
	})

	t.Run("editor cannot change roles", func(t *testing.T) {
		_, svc := memberFixture()
		err := svc.ChangeRole(regularUser(5), 2, 6, "viewer")
		assertStatusCode(t, err, 403)
	})

	t.Run("invalid role is a 400", func(t *testing.T) {
		_, svc := memberFixture()
		err := svc.ChangeRole(regularUser(9), 2, 5, "manager")
		assertStatusCode(t, err, 400)
	})
}

func TestMemberRemove(t *testing.T) {
	t.Run("owner removes anyone", func(t *testing.T) {
		storage, svc := memberFixture()
		removed := false
		storage.deleteBoardMember = func(boardId domain.BoardId, userId domain.UserId) error {
			removed = true
			return nil
		}
		require.NoError(t, svc.Remove(regularUser(9), 2, 5))
		assert.True(t, removed)
	})

	t.Run("member removes themselves", func(t *testing.T) {
		_, svc := memberFixture()
		require.NoError(t, svc.Remove(regularUser(5), 2, 5))
	})

	t.Run("member cannot remove others", func(t *testing.T) {
		_, svc := memberFixture()
		err := svc.Remove(regularUser(5), 2, 6)
		assertStatusCode(t, err, 403)
	})

	t.Run("anonymous cannot remove", func(t *testing.T) {
		_, svc := memberFixture()
		err := svc.Remove(nil, 2, 5)
		assertStatusCode(t, err, 403)
	})
}

func TestMembersListing(t *testing.T) {
	storage, svc := memberFixture()
	storage.boardMembers = func(boardId domain.BoardId) ([]domain.BoardMember, error) {
		return []domain.BoardMember{{BoardId: boardId, UserId: 5, Role: domain.BoardRoleEditor}}, nil
	}

	t.Run("owner lists members", func(t *testing.T) {
		members, err := svc.Members(regularUser(9), 2)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, int64(5), members[0].UserId)
	})

	t.Run("outsider gets 403", func(t *testing.T) {
		_, err := svc.Members(regularUser(5), 2)
		assertStatusCode(t, err, 403)
	})
}
