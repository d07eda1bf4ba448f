package chain

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/bnema/alexis-agent/internal/ports"
	portmocks "github.com/bnema/alexis-agent/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const backendTokenKey = "alexis/backend/access_token"

func newChain(t *testing.T) (*Store, *portmocks.MockSecretStore, *portmocks.MockSecretStore) {
	t.Helper()

	primary := portmocks.NewMockSecretStore(t)
	fallback := portmocks.NewMockSecretStore(t)
	store, err := NewStore(primary, fallback)
	require.NoError(t, err)
	return store, primary, fallback
}

func TestNewStoreRejectsMissingBackends(t *testing.T) {
	t.Parallel()

	_, err := NewStore()
	require.ErrorIs(t, err, errNoBackends)

	_, err = NewStore(portmocks.NewMockSecretStore(t), nil)
	require.ErrorContains(t, err, "secret backend 1 is nil")
}

func TestStoreGetUsesPrimaryWhenItSucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newChain(t)
	primary.EXPECT().Get(mock.Anything, backendTokenKey).Return("from-pass", nil).Once()

	value, err := store.Get(context.Background(), backendTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-pass", value)
}

func TestStoreGetFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Get(mock.Anything, backendTokenKey).Return("", errors.New("pass unavailable")).Once()
	fallback.EXPECT().Get(mock.Anything, backendTokenKey).Return("from-file", nil).Once()

	value, err := store.Get(context.Background(), backendTokenKey)
	require.NoError(t, err)
	assert.Equal(t, "from-file", value)
}

func TestStoreGetNotFoundEverywhereIsNotFound(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Get(mock.Anything, backendTokenKey).Return("", fmt.Errorf("pass: %w", ports.ErrSecretNotFound)).Once()
	fallback.EXPECT().Get(mock.Anything, backendTokenKey).Return("", fmt.Errorf("file: %w", ports.ErrSecretNotFound)).Once()

	_, err := store.Get(context.Background(), backendTokenKey)
	require.ErrorIs(t, err, ports.ErrSecretNotFound)
	assert.ErrorContains(t, err, "backend 0 get")
	assert.ErrorContains(t, err, "backend 1 get")
}

func TestStorePutFallsBackWhenPrimaryFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Put(mock.Anything, backendTokenKey, "secret").Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Put(mock.Anything, backendTokenKey, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), backendTokenKey, "secret"))
}

func TestStorePutDoesNotCallFallbackWhenPrimarySucceeds(t *testing.T) {
	t.Parallel()

	store, primary, _ := newChain(t)
	primary.EXPECT().Put(mock.Anything, backendTokenKey, "secret").Return(nil).Once()

	require.NoError(t, store.Put(context.Background(), backendTokenKey, "secret"))
}

func TestStoreDeleteClearsEveryBackend(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Delete(mock.Anything, backendTokenKey).Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, backendTokenKey).Return(nil).Once()

	require.NoError(t, store.Delete(context.Background(), backendTokenKey))
}

func TestStoreDeleteFailsWhenEveryBackendFails(t *testing.T) {
	t.Parallel()

	store, primary, fallback := newChain(t)
	primary.EXPECT().Delete(mock.Anything, backendTokenKey).Return(errors.New("pass failed")).Once()
	fallback.EXPECT().Delete(mock.Anything, backendTokenKey).Return(errors.New("file failed")).Once()

	err := store.Delete(context.Background(), backendTokenKey)
	assert.ErrorContains(t, err, "pass failed")
	assert.ErrorContains(t, err, "file failed")
}

func TestStoreGetDoesNotFallbackOnCanceledContext(t *testing.T) {
	t.Parallel()

	store, primary, _ := newChain(t)
	primary.EXPECT().Get(mock.Anything, backendTokenKey).Return("", context.Canceled).Once()

	_, err := store.Get(context.Background(), backendTokenKey)
	require.ErrorIs(t, err, context.Canceled)
}
