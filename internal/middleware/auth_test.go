package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbo-dev/kanbo/internal/domain"
	jwt_internal "github.com/kanbo-dev/kanbo/internal/jwt"
)

func TestAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	auth := NewAuth(jwtService)

	admin := &domain.User{Id: 1, Email: "admin@example.com", Role: domain.GlobalRoleAdmin}
	tokenAdmin, _ := jwtService.NewToken(*admin)
	user := &domain.User{Id: 2, Email: "user@example.com", Role: domain.GlobalRoleUser}
	token, _ := jwtService.NewToken(*user)

	tests := []struct {
		name           string
		adminOnly      bool
		cookie         *http.Cookie
		expectedStatus int
		expectedUser   *domain.User
	}{
		{
			name:           "Valid token - Admin",
			adminOnly:      true,
			cookie:         &http.Cookie{Name: "accessToken", Value: tokenAdmin},
			expectedStatus: http.StatusOK,
			expectedUser:   admin,
		},
		{
			name:           "Valid token - Non-admin",
			adminOnly:      false,
			cookie:         &http.Cookie{Name: "accessToken", Value: token},
			expectedStatus: http.StatusOK,
			expectedUser:   user,
		},
		{
			name:           "No token",
			adminOnly:      false,
			cookie:         nil,
			expectedStatus: http.StatusUnauthorized,
			expectedUser:   nil,
		},
		{
			name:           "Invalid token",
			adminOnly:      false,
			cookie:         &http.Cookie{Name: "accessToken", Value: "invalid_token"},
			expectedStatus: http.StatusUnauthorized,
			expectedUser:   nil,
		},
		{
			name:           "Non-admin accessing admin route",
			adminOnly:      true,
			cookie:         &http.Cookie{Name: "accessToken", Value: token},
			expectedStatus: http.StatusForbidden,
			expectedUser:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			rr := httptest.NewRecorder()

			mw := auth.NeedAuth()
			if tt.adminOnly {
				mw = auth.AdminOnly()
			}
			handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got := GetUserFromContext(r)
				require.NotNil(t, got, "auth should always propagate the user through context")
				assert.Equal(t, tt.expectedUser, got)

				w.WriteHeader(http.StatusOK)
			}))
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code, "handler returned wrong status code")
		})
	}
}

func TestAuthBearerHeader(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	auth := NewAuth(jwtService)

	user := &domain.User{Id: 2, Email: "user@example.com", Role: domain.GlobalRoleUser}
	token, _ := jwtService.NewToken(*user)

	req := httptest.NewRequest("GET", "http://example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	handler := auth.NeedAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, user, GetUserFromContext(r))
		w.WriteHeader(http.StatusOK)
	}))
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestOptionalAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	auth := NewAuth(jwtService)

	user := &domain.User{Id: 2, Email: "user@example.com", Role: domain.GlobalRoleUser}
	token, _ := jwtService.NewToken(*user)

	t.Run("with token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "http://example.com", nil)
		req.AddCookie(&http.Cookie{Name: "accessToken", Value: token})
		rr := httptest.NewRecorder()

		handler := auth.OptionalAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, user, GetUserFromContext(r))
			w.WriteHeader(http.StatusOK)
		}))
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("anonymous passes through", func(t *testing.T) {
		req := httptest.NewRequest("GET", "http://example.com", nil)
		rr := httptest.NewRecorder()

		handler := auth.OptionalAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Nil(t, GetUserFromContext(r))
			w.WriteHeader(http.StatusOK)
		}))
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})
}

func TestGetUserFromContext(t *testing.T) {
	user := &domain.User{Id: 1, Email: "test@example.com", Role: domain.GlobalRoleAdmin}
	req := httptest.NewRequest("GET", "http://example.com", nil)
	ctx := context.WithValue(req.Context(), UserClaimsKey, user)
	req = req.WithContext(ctx)

	assert.Equal(t, user, GetUserFromContext(req))

	req = httptest.NewRequest("GET", "http://example.com", nil)
	assert.Nil(t, GetUserFromContext(req), "Expected user to be nil")
}
