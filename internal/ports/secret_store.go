package ports

import (
	"context"
	"errors"
)

// ErrSecretNotFound is wrapped by every SecretStore when the key has no value.
var ErrSecretNotFound = errors.New("secret not found")

// SecretStore holds opaque secrets such as the backend access token. Values
// are stored and returned verbatim.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
