package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/dishcovery/backend/internal/types"
)

func TestSessionService(t *testing.T) {
	svc := NewSessionService("test-secret", time.Hour)

	t.Run("should issue a token that validates", func(t *testing.T) {
		session, err := svc.Issue()
		require.NoError(t, err)
		assert.NotEmpty(t, session.ClientID)

		claims, err := svc.ValidateToken(session.Token)
		require.NoError(t, err)
		assert.Equal(t, session.ClientID, claims.ClientID)
	})

	t.Run("should issue distinct clients", func(t *testing.T) {
		a, err := svc.Issue()
		require.NoError(t, err)
		b, err := svc.Issue()
		require.NoError(t, err)

		assert.NotEqual(t, a.ClientID, b.ClientID)
	})

	t.Run("should reject tokens signed with another secret", func(t *testing.T) {
		session, err := NewSessionService("other-secret", time.Hour).Issue()
		require.NoError(t, err)

		_, err = svc.ValidateToken(session.Token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("should reject expired tokens", func(t *testing.T) {
		expired := NewSessionService("test-secret", time.Hour)
		expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		session, err := expired.Issue()
		require.NoError(t, err)

		_, err = svc.ValidateToken(session.Token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("should reject tokens without a client id", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, &types.SessionClaims{
			RegisteredClaims: jwt.RegisteredClaims{Issuer: sessionIssuer},
		})
		signed, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = svc.ValidateToken(signed)
		assert.ErrorIs(t, err, ErrInvalidSession)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := svc.ValidateToken("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidSession)
	})
}
