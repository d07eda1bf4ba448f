package application

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/stretchr/testify/mock"
)

func mockAnyContext() interface{} {
	return mock.Anything
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

// fakeConnection records what the session sends back to the room.
type fakeConnection struct {
	events chan domain.RoomEvent

	mu          sync.Mutex
	results     []domain.ToolResult
	replies     []string
	disconnects int
	published   chan domain.ToolResult
}

func newFakeConnection() *fakeConnection {
	return &fakeConnection{
		events:    make(chan domain.RoomEvent, 16),
		published: make(chan domain.ToolResult, 16),
	}
}

func (c *fakeConnection) Events() <-chan domain.RoomEvent { return c.events }

func (c *fakeConnection) PublishToolResult(_ context.Context, result domain.ToolResult) error {
	c.mu.Lock()
	c.results = append(c.results, result)
	c.mu.Unlock()
	c.published <- result
	return nil
}

func (c *fakeConnection) GenerateReply(_ context.Context, instructions string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replies = append(c.replies, instructions)
	return nil
}

func (c *fakeConnection) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disconnects++
}

func (c *fakeConnection) Disconnects() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disconnects
}

func (c *fakeConnection) Replies() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.replies...)
}

type echoArgs struct {
	Text string `json:"text"`
}

func echoTool(name string) Tool {
	tool, err := NewTool(name, "echo the text back", func(_ context.Context, args echoArgs) (json.RawMessage, error) {
		return json.Marshal(map[string]string{"echo": args.Text})
	})
	if err != nil {
		panic(err)
	}
	return tool
}

type memorySessions struct {
	mu      sync.Mutex
	records []domain.SessionRecord
}

func (m *memorySessions) Save(_ context.Context, record domain.SessionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memorySessions) List(_ context.Context) ([]domain.SessionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.SessionRecord(nil), m.records...), nil
}
