package sqlite_test

import (
	"path/filepath"
	"testing"

	"github.com/aussiebroadwan/localserve/internal/identity/store"
	"github.com/aussiebroadwan/localserve/internal/identity/store/drivers/sqlite"
	"github.com/aussiebroadwan/localserve/internal/identity/store/storetest"
	"github.com/stretchr/testify/require"
)

func newMemoryStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, newMemoryStore)
}

func TestStore_MigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identity.db")

	s, err := sqlite.NewStore(path)
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Accounts().CreateAccount(t.Context(), storetest.NewAccount("keep@x.com")))
	require.NoError(t, s.Close())

	reopened, err := sqlite.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })
	require.NoError(t, reopened.ApplyMigrations())

	acc, err := reopened.Accounts().GetAccountByEmail(t.Context(), "keep@x.com")
	require.NoError(t, err)
	require.Equal(t, "keep@x.com", acc.Email)
}
