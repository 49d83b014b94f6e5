package crypto

import (
	"testing"
	"time"

	"bookreview/internal/apperror"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret")

	token, expiresAt, err := m.Issue("account-123", "reader@example.com", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "account-123", claims.Sub)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_UniqueJTIs(t *testing.T) {
	m := NewTokenManager("test-secret")

	token1, _, err1 := m.Issue("account-123", "a@example.com", time.Hour)
	token2, _, err2 := m.Issue("account-123", "a@example.com", time.Hour)
	require.NoError(t, err1)
	require.NoError(t, err2)

	assert.NotEqual(t, token1, token2)
}

func TestTokenManager_Verify_Rejects(t *testing.T) {
	m := NewTokenManager("test-secret")

	t.Run("invalid signature", func(t *testing.T) {
		token, _, err := NewTokenManager("wrong-secret").Issue("account-123", "a@example.com", time.Hour)
		require.NoError(t, err)

		claims, err := m.Verify(token)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		assert.Nil(t, claims)
	})

	t.Run("expired token", func(t *testing.T) {
		past := &TokenManager{secret: []byte("test-secret"), now: func() time.Time { return time.Now().Add(-2 * time.Hour) }}
		token, _, err := past.Issue("account-123", "a@example.com", time.Hour)
		require.NoError(t, err)

		claims, err := m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.True(t, IsExpired(err))
		assert.Nil(t, claims)
	})

	t.Run("malformed token", func(t *testing.T) {
		claims, err := m.Verify("not.a.valid.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
		assert.False(t, IsExpired(err))
		assert.Nil(t, claims)
	})

	t.Run("unexpected signing method", func(t *testing.T) {
		c := Claims{
			Sub: "account-123",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, c).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Sub: "account-123"}).SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
