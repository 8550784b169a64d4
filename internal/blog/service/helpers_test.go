package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jotterlabs/jotter/internal/blog/domain"
	"github.com/jotterlabs/jotter/internal/blog/store"
	"github.com/jotterlabs/jotter/internal/blog/store/drivers/sqlite"
	"github.com/jotterlabs/jotter/pkg/cryptox"
	"github.com/jotterlabs/jotter/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newTestAuthService(t *testing.T, st store.Store) *AuthService {
	t.Helper()

	signer, err := jwtx.GenerateSignerEdDSA("test-key")
	require.NoError(t, err)

	return &AuthService{
		Store:     st,
		Signer:    signer,
		Issuer:    "test-issuer",
		AccessTTL: time.Hour,
	}
}

// registerAccount creates an account through the real registration flow and
// returns it.
func registerAccount(t *testing.T, svc *AuthService, username, email string) domain.Account {
	t.Helper()

	account, token, err := svc.Register(context.Background(), username, email, "SecurePass123!", "SecurePass123!")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	return account
}
