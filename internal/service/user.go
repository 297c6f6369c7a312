package service

import (
	"io"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
	"github.com/kanbo-dev/kanbo/internal/logger"
)

type UserService interface {
	Get(id domain.UserId) (domain.User, error)
	UpdateProfile(userId domain.UserId, displayName *string) (domain.User, error)
	UpdateAvatar(userId domain.UserId, fileData io.Reader) (domain.User, error)
	Avatar(userId domain.UserId) (io.ReadCloser, error)

	Users(caller *domain.User) ([]domain.User, error)
	SetGlobalRole(caller *domain.User, targetId domain.UserId, role string) error
	Delete(caller *domain.User, targetId domain.UserId) error
}

type UserStorage interface {
	User(id domain.UserId) (domain.User, error)
	Users() ([]domain.User, error)
	UpdateDisplayName(id domain.UserId, displayName string) error
	UpdateAvatarPath(id domain.UserId, avatarPath string) error
	UpdateGlobalRole(id domain.UserId, role string) error
	DeleteUser(id domain.UserId) error

	// Detach primitives run before the user row goes away.
	DeleteBoardMembersByUser(userId domain.UserId) error
	DeleteCardMembersByUser(userId domain.UserId) error
	ClearChecklistAssignee(userId domain.UserId) error
	DetachCommentsByAuthor(userId domain.UserId) error
	OrphanBoardsOwnedBy(userId domain.UserId) error
}

// AvatarStorage stores profile pictures outside the database.
type AvatarStorage interface {
	SaveAvatar(fileData io.Reader) (string, error)
	Read(relativePath string) (io.ReadCloser, error)
	Delete(relativePath string) error
}

type User struct {
	storage UserStorage
	avatars AvatarStorage
	access  *Access
}

func NewUser(storage UserStorage, avatars AvatarStorage, access *Access) *User {
	return &User{storage: storage, avatars: avatars, access: access}
}

func (u *User) Get(id domain.UserId) (domain.User, error) {
	return u.storage.User(id)
}

func (u *User) UpdateProfile(userId domain.UserId, displayName *string) (domain.User, error) {
	if displayName == nil {
		return domain.User{}, internal_errors.BadRequest("Nothing to update")
	}
	if err := u.storage.UpdateDisplayName(userId, *displayName); err != nil {
		return domain.User{}, err
	}
	return u.storage.User(userId)
}

// UpdateAvatar validates and stores the uploaded image, then swaps the
// user's avatar reference. The previous file is removed best-effort.
func (u *User) UpdateAvatar(userId domain.UserId, fileData io.Reader) (domain.User, error) {
	user, err := u.storage.User(userId)
	if err != nil {
		return domain.User{}, err
	}

	path, err := u.avatars.SaveAvatar(fileData)
	if err != nil {
		return domain.User{}, err
	}
	if err := u.storage.UpdateAvatarPath(userId, path); err != nil {
		return domain.User{}, err
	}
	if user.AvatarPath != "" {
		if err := u.avatars.Delete(user.AvatarPath); err != nil {
			logger.Log.Warn("failed to remove previous avatar", "user_id", userId, "path", user.AvatarPath, "error", err)
		}
	}
	return u.storage.User(userId)
}

func (u *User) Avatar(userId domain.UserId) (io.ReadCloser, error) {
	user, err := u.storage.User(userId)
	if err != nil {
		return nil, err
	}
	if user.AvatarPath == "" {
		return nil, internal_errors.NotFound("User has no avatar")
	}
	return u.avatars.Read(user.AvatarPath)
}

func (u *User) Users(caller *domain.User) ([]domain.User, error) {
	if !u.access.CanManageUsers(caller) {
		return nil, internal_errors.Forbidden("Admin access required")
	}
	return u.storage.Users()
}

func (u *User) SetGlobalRole(caller *domain.User, targetId domain.UserId, role string) error {
	if !u.access.CanManageUsers(caller) {
		return internal_errors.Forbidden("Admin access required")
	}
	role = domain.NormalizeRole(role)
	if role != domain.GlobalRoleAdmin && role != domain.GlobalRoleUser {
		return internal_errors.BadRequest("Role must be admin or user")
	}
	if caller.Id == targetId && role != domain.GlobalRoleAdmin {
		return internal_errors.Forbidden("You can't demote yourself")
	}
	return u.storage.UpdateGlobalRole(targetId, role)
}

// Delete removes an account. Self-deletion is always rejected, even for
// admins. The user's traces are detached first: board and card memberships
// go away, checklist assignments and comment authorship are nulled (comments
// keep the denormalized author name), and owned boards become ownerless
// public boards.
func (u *User) Delete(caller *domain.User, targetId domain.UserId) error {
	if !u.access.CanManageUsers(caller) {
		return internal_errors.Forbidden("Admin access required")
	}
	if caller.Id == targetId {
		return internal_errors.Forbidden("You can't delete your own account")
	}
	target, err := u.storage.User(targetId)
	if err != nil {
		return err
	}

	if err := u.storage.DeleteBoardMembersByUser(targetId); err != nil {
		return err
	}
	if err := u.storage.DeleteCardMembersByUser(targetId); err != nil {
		return err
	}
	if err := u.storage.ClearChecklistAssignee(targetId); err != nil {
		return err
	}
	if err := u.storage.DetachCommentsByAuthor(targetId); err != nil {
		return err
	}
	if err := u.storage.OrphanBoardsOwnedBy(targetId); err != nil {
		return err
	}
	if err := u.storage.DeleteUser(targetId); err != nil {
		return err
	}

	if target.AvatarPath != "" {
		if err := u.avatars.Delete(target.AvatarPath); err != nil {
			logger.Log.Warn("failed to remove avatar of deleted user", "user_id", targetId, "error", err)
		}
	}
	return nil
}
