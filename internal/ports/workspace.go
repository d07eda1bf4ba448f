package ports

import (
	"context"
	"encoding/json"

	"github.com/bnema/alexis-agent/internal/domain"
)

// Workspace is the email and calendar backend the assistant tools call into.
// Responses are passed back to the voice model as-is.
type Workspace interface {
	ListEmails(ctx context.Context, label string) (json.RawMessage, error)
	ReplyToEmail(ctx context.Context, reply domain.EmailReply) (json.RawMessage, error)
	TodayEvents(ctx context.Context) (json.RawMessage, error)
	CreateEvent(ctx context.Context, event domain.CalendarEvent) (json.RawMessage, error)
	UpdateEvent(ctx context.Context, event domain.CalendarEvent) (json.RawMessage, error)
}
