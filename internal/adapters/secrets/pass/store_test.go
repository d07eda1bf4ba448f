package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/alexis-agent/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backendTokenKey = "alexis/backend/access_token"

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, env []string, input string, args ...string) (string, string, error) {
			called = true
			assert.Nil(t, env)
			assert.Equal(t, []string{"insert", "-m", "-f", backendTokenKey}, args)
			assert.Equal(t, "bearer-value\n", input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Put(context.Background(), backendTokenKey, "bearer-value"))
	assert.True(t, called)
}

func TestStoreGetReturnsFirstLineOnly(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, env []string, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", backendTokenKey}, args)
			assert.Empty(t, input)
			return "bearer-value\r\nissued: 2026-10-01\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), backendTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "bearer-value", value)
}

func TestStoreGetMissingEntryIsNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, env []string, input string, args ...string) (string, string, error) {
			return "", "Error: alexis/backend/access_token is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), backendTokenKey)
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
}

func TestStoreDeleteToleratesMissingEntry(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, env []string, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", backendTokenKey}, args)
			return "", "Error: alexis/backend/access_token is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), backendTokenKey))
}

func TestStoreWithStoreDirSetsEnvironment(t *testing.T) {
	t.Parallel()

	store := NewStore(WithStoreDir("/home/alexis/.password-store-agent"))
	store.run = func(ctx context.Context, env []string, input string, args ...string) (string, string, error) {
		assert.Equal(t, []string{"PASSWORD_STORE_DIR=/home/alexis/.password-store-agent"}, env)
		return "v\n", "", nil
	}

	_, err := store.Get(context.Background(), backendTokenKey)
	require.NoError(t, err)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, env []string, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed: No secret key", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), backendTokenKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ports.ErrSecretNotFound)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "decryption failed")
}
