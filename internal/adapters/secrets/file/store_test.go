package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/alexis-agent/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backendTokenKey = "alexis/backend/access_token"

func TestStoreRejectsInvalidKeys(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())
	testCases := []struct {
		name    string
		key     string
		wantErr string
	}{
		{name: "empty", key: "", wantErr: "secret key is empty"},
		{name: "whitespace", key: "   ", wantErr: "secret key is empty"},
		{name: "absolute", key: "/etc/alexis", wantErr: "invalid secret key"},
		{name: "traversal", key: "../escape", wantErr: "invalid secret key"},
		{name: "parent", key: "..", wantErr: "invalid secret key"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Put(context.Background(), tc.key, "value")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestStorePutReplacesAtomicallyWithPrivatePermissions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	store := NewStore(root)

	require.NoError(t, store.Put(context.Background(), backendTokenKey, "first"))
	require.NoError(t, store.Put(context.Background(), backendTokenKey, "second"))

	got, err := store.Get(context.Background(), backendTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "second", got)

	info, err := os.Stat(filepath.Join(root, backendTokenKey))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(secretFileMode), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Join(root, "alexis", "backend"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestStoreGetMissingSecretIsNotFound(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	_, err := store.Get(context.Background(), backendTokenKey)
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
}

func TestStoreDeleteIsIdempotentWhenSecretMissing(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir())

	require.NoError(t, store.Delete(context.Background(), backendTokenKey))
	require.NoError(t, store.Delete(context.Background(), backendTokenKey))
}

func TestStoreHonoursCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewStore(t.TempDir()).Put(ctx, backendTokenKey, "value")
	require.ErrorIs(t, err, context.Canceled)
}
