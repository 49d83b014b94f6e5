package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("testpassword123")

	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "testpassword123", hash)
}

func TestBcryptHasher_Verify(t *testing.T) {
	h := BcryptHasher{Cost: bcrypt.MinCost}
	hash, err := h.Hash("testpassword123")
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		assert.True(t, h.Verify(hash, "testpassword123"))
	})

	t.Run("wrong password", func(t *testing.T) {
		assert.False(t, h.Verify(hash, "wrongpassword"))
	})

	t.Run("different hash each time", func(t *testing.T) {
		hash2, err := h.Hash("testpassword123")
		require.NoError(t, err)
		assert.NotEqual(t, hash, hash2)
		assert.True(t, h.Verify(hash2, "testpassword123"))
	})

	t.Run("garbage hash", func(t *testing.T) {
		assert.False(t, h.Verify("not-a-bcrypt-hash", "testpassword123"))
	})
}

func TestNewBcryptHasher_UsesDocumentedCost(t *testing.T) {
	h := NewBcryptHasher()
	hash, err := h.Hash("pw-for-cost-check")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}
