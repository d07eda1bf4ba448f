package ports

import (
	"context"

	"github.com/bnema/alexis-agent/internal/domain"
)

type CredentialSource interface {
	Load(ctx context.Context) (domain.Credentials, error)
}
