package livekit

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/ports"
)

var errNoDialer = errors.New("room dialer is not configured")

// dialFunc joins a room and routes transport callbacks to h.
type dialFunc func(url, token string, h roomHandler) (roomClient, error)

// Connector joins rooms as the agent participant.
type Connector struct {
	dial   dialFunc
	logger *slog.Logger
}

type Option func(*Connector)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Connector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func withDialer(dial dialFunc) Option {
	return func(c *Connector) { c.dial = dial }
}

func NewConnector(opts ...Option) *Connector {
	c := &Connector{
		dial:   dialRoom,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type dialResult struct {
	room roomClient
	err  error
}

func (c *Connector) Connect(ctx context.Context, creds domain.Credentials, opts ports.RoomOptions) (ports.RoomConnection, error) {
	if c.dial == nil {
		return nil, errNoDialer
	}

	token, err := MintToken(creds, opts)
	if err != nil {
		return nil, err
	}

	logger := c.logger.With("room", opts.Room, "identity", opts.Identity)
	conn := newConnection(logger)

	results := make(chan dialResult, 1)
	go func() {
		room, err := c.dial(strings.TrimSpace(creds.URL), token, conn)
		results <- dialResult{room: room, err: err}
	}()

	var res dialResult
	select {
	case res = <-results:
	case <-ctx.Done():
		go func() {
			if late := <-results; late.room != nil {
				late.room.Disconnect()
			}
		}()
		conn.teardown()
		return nil, ctx.Err()
	}
	if res.err != nil {
		conn.teardown()
		return nil, res.err
	}

	conn.attach(res.room)
	logger.Debug("joined room")

	manifest := agentManifest{
		Identity:          opts.Identity,
		Name:              opts.DisplayName,
		Instructions:      opts.Instructions,
		Greeting:          opts.Greeting,
		Voice:             opts.Voice,
		NoiseCancellation: opts.NoiseCancellation,
		Tools:             opts.Tools,
	}
	if manifest.Tools == nil {
		manifest.Tools = []domain.ToolSpec{}
	}
	if err := conn.publishManifest(ctx, manifest); err != nil {
		return conn, err
	}

	return conn, nil
}
