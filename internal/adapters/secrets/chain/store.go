package chain

import (
	"context"
	"errors"
	"fmt"

	filestore "github.com/bnema/alexis-agent/internal/adapters/secrets/file"
	passstore "github.com/bnema/alexis-agent/internal/adapters/secrets/pass"
	"github.com/bnema/alexis-agent/internal/ports"
)

// Store tries each backend in order. Reads stop at the first backend that
// has the key; writes stop at the first backend that accepts them.
type Store struct {
	backends []ports.SecretStore
}

var _ ports.SecretStore = (*Store)(nil)

var errNoBackends = errors.New("secret store chain has no backends")

func NewStore(backends ...ports.SecretStore) (*Store, error) {
	if len(backends) == 0 {
		return nil, errNoBackends
	}
	for i, backend := range backends {
		if backend == nil {
			return nil, fmt.Errorf("secret backend %d is nil", i)
		}
	}

	return &Store{backends: backends}, nil
}

// NewPassFirstWithFileFallback prefers pass(1) and falls back to plain files
// under fileRoot.
func NewPassFirstWithFileFallback(passDir, fileRoot string) (*Store, error) {
	return NewStore(passstore.NewStore(passstore.WithStoreDir(passDir)), filestore.NewStore(fileRoot))
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	var errs []error
	for i, backend := range s.backends {
		err := backend.Put(ctx, key, value)
		if err == nil {
			return nil
		}
		if shouldStop(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("backend %d put: %w", i, err))
	}

	return errors.Join(errs...)
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	var errs []error
	for i, backend := range s.backends {
		value, err := backend.Get(ctx, key)
		if err == nil {
			return value, nil
		}
		if shouldStop(err) {
			return "", err
		}
		errs = append(errs, fmt.Errorf("backend %d get: %w", i, err))
	}

	return "", errors.Join(errs...)
}

// Delete removes the key from every backend so a stale copy cannot resurface.
func (s *Store) Delete(ctx context.Context, key string) error {
	var errs []error
	for i, backend := range s.backends {
		err := backend.Delete(ctx, key)
		if err == nil {
			continue
		}
		if shouldStop(err) {
			return err
		}
		errs = append(errs, fmt.Errorf("backend %d delete: %w", i, err))
	}

	if len(errs) == len(s.backends) {
		return errors.Join(errs...)
	}
	return nil
}

func shouldStop(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
