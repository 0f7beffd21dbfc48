package authclient_test

import (
	"os"
	"path/filepath"
	"testing"

	authclient "github.com/renthub-et/go-authclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := authclient.NewFileTokenStore(path)

	assert.Empty(t, store.Get())
	assert.Empty(t, store.GetRefresh())

	require.NoError(t, store.Set("access-1", "refresh-1"))
	assert.Equal(t, "access-1", store.Get())
	assert.Equal(t, "refresh-1", store.GetRefresh())

	// Rehydration from disk, not memory
	reopened := authclient.NewFileTokenStore(path)
	assert.Equal(t, "access-1", reopened.Get())
	assert.Equal(t, "refresh-1", reopened.GetRefresh())
}

func TestFileTokenStoreKeepsRefreshWhenOmitted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := authclient.NewFileTokenStore(path)

	require.NoError(t, store.Set("access-1", "refresh-1"))
	require.NoError(t, store.Set("access-2", ""))

	assert.Equal(t, "access-2", store.Get())
	assert.Equal(t, "refresh-1", store.GetRefresh())
}

func TestFileTokenStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	store := authclient.NewFileTokenStore(path)

	require.NoError(t, store.Set("access-1", "refresh-1"))
	require.NoError(t, store.Clear())

	assert.Empty(t, store.Get())
	assert.Empty(t, store.GetRefresh())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-empty store is fine
	require.NoError(t, store.Clear())
}

func TestFileTokenStoreCorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := authclient.NewFileTokenStore(path)
	assert.Empty(t, store.Get())
	assert.Empty(t, store.GetRefresh())
}

func TestFileTokenStorePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store := authclient.NewFileTokenStore(path)

	require.NoError(t, store.Set("access-1", "refresh-1"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestMemoryTokenStore(t *testing.T) {
	store := authclient.NewMemoryTokenStore()

	require.NoError(t, store.Set("access-1", "refresh-1"))
	assert.Equal(t, "access-1", store.Get())
	assert.Equal(t, "refresh-1", store.GetRefresh())

	require.NoError(t, store.Set("access-2", ""))
	assert.Equal(t, "access-2", store.Get())
	assert.Equal(t, "refresh-1", store.GetRefresh())

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Get())
	assert.Empty(t, store.GetRefresh())
}
