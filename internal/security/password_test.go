package security

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Secret12", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, "Secret12", string(hash))

	require.True(t, VerifyPassword("Secret12", hash))
	require.False(t, VerifyPassword("secret12", hash))
	require.False(t, VerifyPassword("", hash))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	// A corrupt stored hash must look like a plain mismatch.
	require.False(t, VerifyPassword("Secret12", []byte("not-a-bcrypt-hash")))
	require.False(t, VerifyPassword("Secret12", nil))
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	first, err := HashPassword("Secret12", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("Secret12", bcrypt.MinCost)
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestHashPasswordCostOutOfRangeFallsBack(t *testing.T) {
	hash, err := HashPassword("Secret12", 99)
	require.NoError(t, err)

	cost, err := bcrypt.Cost(hash)
	require.NoError(t, err)
	require.Equal(t, DefaultBcryptCost, cost)
}
