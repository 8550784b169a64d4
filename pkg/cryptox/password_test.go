package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	SetPepperPath(t.TempDir() + "/pepper")

	hash, err := HashPassword("SecurePass123!")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("SecurePass123!", hash))
	require.ErrorIs(t, VerifyPassword("WrongPass123!", hash), ErrPasswordMismatch)
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	SetPepperPath(t.TempDir() + "/pepper")

	h1, err := HashPassword("same-password")
	require.NoError(t, err)
	h2, err := HashPassword("same-password")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2)
	require.NoError(t, VerifyPassword("same-password", h1))
	require.NoError(t, VerifyPassword("same-password", h2))
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	SetPepperPath(t.TempDir() + "/pepper")

	for _, bad := range []string{
		"",
		"plaintext",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
	} {
		require.Error(t, VerifyPassword("whatever", bad), "hash: %q", bad)
	}
}
