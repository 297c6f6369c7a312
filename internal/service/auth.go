package service

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
	"github.com/kanbo-dev/kanbo/internal/logger"
)

type AuthService interface {
	Register(creds domain.Credentials, displayName string) (domain.User, string, error)
	Login(creds domain.Credentials) (domain.User, string, error)
}

type Auth struct {
	storage    AuthStorage
	jwt        Jwt
	bcryptCost int
}

type AuthStorage interface {
	SaveUser(user domain.User) (domain.UserId, error)
	User(id domain.UserId) (domain.User, error)
	UserByEmail(email string) (domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
}

func NewAuth(storage AuthStorage, jwt Jwt, bcryptCost int) *Auth {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Auth{storage: storage, jwt: jwt, bcryptCost: bcryptCost}
}

// Register creates an account and logs it in. Duplicate emails surface as a
// 409 from the storage layer. An empty display name falls back to the part of
// the email before the @.
func (a *Auth) Register(creds domain.Credentials, displayName string) (domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), a.bcryptCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, "", err
	}

	if displayName == "" {
		displayName, _, _ = strings.Cut(email, "@")
	}

	user := domain.User{
		Email:       email,
		PassHash:    string(passHash),
		DisplayName: displayName,
		Role:        domain.GlobalRoleUser,
	}
	id, err := a.storage.SaveUser(user)
	if err != nil {
		return domain.User{}, "", err
	}

	user, err = a.storage.User(id)
	if err != nil {
		return domain.User{}, "", err
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password are indistinguishable to the caller.
func (a *Auth) Login(creds domain.Credentials) (domain.User, string, error) {
	invalid := &internal_errors.ErrorWithStatusCode{Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}

	user, err := a.storage.UserByEmail(strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		if internal_errors.IsNotFound(err) {
			return domain.User{}, "", invalid
		}
		return domain.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		return domain.User{}, "", invalid
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}
