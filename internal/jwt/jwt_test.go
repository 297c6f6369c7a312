package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanbo-dev/kanbo/internal/domain"
	internal_errors "github.com/kanbo-dev/kanbo/internal/errors"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := New("test-secret", time.Hour)
	user := domain.User{Id: 7, Email: "alice@example.com", Role: domain.GlobalRoleAdmin}

	tokenString, err := svc.NewToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := svc.DecodeToken(tokenString)
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(7), claims["uid"])
	assert.Equal(t, "alice@example.com", claims["email"])
	assert.Equal(t, domain.GlobalRoleAdmin, claims["role"])
}

func TestDecodeTokenRejections(t *testing.T) {
	svc := New("test-secret", time.Hour)

	t.Run("garbage", func(t *testing.T) {
		_, err := svc.DecodeToken("not.a.token")
		require.Error(t, err)
		var coded *internal_errors.ErrorWithStatusCode
		require.ErrorAs(t, err, &coded)
		assert.Equal(t, 401, coded.StatusCode)
	})

	t.Run("wrong key", func(t *testing.T) {
		other := New("other-secret", time.Hour)
		tokenString, err := other.NewToken(domain.User{Id: 1})
		require.NoError(t, err)

		_, err = svc.DecodeToken(tokenString)
		require.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		expired := New("test-secret", -time.Hour)
		tokenString, err := expired.NewToken(domain.User{Id: 1})
		require.NoError(t, err)

		_, err = svc.DecodeToken(tokenString)
		require.Error(t, err)
	})
}
