package ports

import (
	"context"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
)

// RoomOptions describes the agent that joins the room. Tools are advertised to
// the voice model when the connection is established.
type RoomOptions struct {
	Room              string
	Identity          string
	DisplayName       string
	Instructions      string
	Greeting          string
	Voice             string
	NoiseCancellation string
	Tools             []domain.ToolSpec
	TokenTTL          time.Duration
}

type RoomConnector interface {
	// Connect returns a live connection or an error. A connection returned
	// together with an error was partially opened and must be disconnected by
	// the caller.
	Connect(ctx context.Context, creds domain.Credentials, opts RoomOptions) (RoomConnection, error)
}

type RoomConnection interface {
	// Events is closed once the connection has been torn down.
	Events() <-chan domain.RoomEvent
	PublishToolResult(ctx context.Context, result domain.ToolResult) error
	GenerateReply(ctx context.Context, instructions string) error
	Disconnect()
}
