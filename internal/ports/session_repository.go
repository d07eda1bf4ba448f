package ports

import (
	"context"

	"github.com/bnema/alexis-agent/internal/domain"
)

type SessionRepository interface {
	Save(ctx context.Context, record domain.SessionRecord) error
	List(ctx context.Context) ([]domain.SessionRecord, error)
}
