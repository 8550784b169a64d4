package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSignerEdDSA("test-key-1")
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := NewVerifierEdDSA(keys, "jotter-api")

	claims := NewAccessClaims("acct_123", "alice", "jotter-api", time.Hour, time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "acct_123", got.Subject)
	require.Equal(t, "alice", got.Username)
}

func TestVerifyRejectsUnknownKID(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSignerEdDSA("key-a")
	require.NoError(t, err)

	other, err := GenerateSignerEdDSA("key-b")
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(other))
	verifier := NewVerifierEdDSA(keys, "")

	token, err := signer.Sign(NewAccessClaims("s", "u", "", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSignerEdDSA("key")
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := NewVerifierEdDSA(keys, "")

	stale := NewAccessClaims("s", "u", "", time.Minute, time.Now().UTC().Add(-time.Hour))
	token, err := signer.Sign(stale)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := GenerateSignerEdDSA("key")
	require.NoError(t, err)

	keys := NewKeySet()
	require.NoError(t, keys.AddSigner(signer))
	verifier := NewVerifierEdDSA(keys, "expected-issuer")

	token, err := signer.Sign(NewAccessClaims("s", "u", "someone-else", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}
