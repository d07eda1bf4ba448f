package livekit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/bnema/alexis-agent/internal/domain"
)

const eventBuffer = 64

// roomClient is the part of a joined room the agent writes to.
type roomClient interface {
	PublishData(payload []byte, topic string) error
	Disconnect()
}

// roomHandler receives callbacks from the room transport.
type roomHandler interface {
	handleData(topic string, payload []byte)
	handleReconnecting()
	handleReconnected()
	handleDisconnected(reason string)
}

type connection struct {
	logger *slog.Logger
	events chan domain.RoomEvent
	done   chan struct{}

	mu       sync.Mutex
	room     roomClient
	closed   bool
	emitters sync.WaitGroup

	teardownOnce sync.Once
	leaveOnce    sync.Once
}

func newConnection(logger *slog.Logger) *connection {
	return &connection{
		logger: logger,
		events: make(chan domain.RoomEvent, eventBuffer),
		done:   make(chan struct{}),
	}
}

func (c *connection) attach(room roomClient) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.room = room
}

func (c *connection) Events() <-chan domain.RoomEvent {
	return c.events
}

func (c *connection) PublishToolResult(ctx context.Context, result domain.ToolResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode tool result: %w", err)
	}
	return c.publish(ctx, TopicToolResult, payload)
}

func (c *connection) GenerateReply(ctx context.Context, instructions string) error {
	payload, err := json.Marshal(controlMessage{Type: controlGenerateReply, Instructions: instructions})
	if err != nil {
		return fmt.Errorf("encode control message: %w", err)
	}
	return c.publish(ctx, TopicControl, payload)
}

func (c *connection) publishManifest(ctx context.Context, manifest agentManifest) error {
	payload, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	if err := c.publish(ctx, TopicManifest, payload); err != nil {
		return fmt.Errorf("publish manifest: %w", err)
	}
	return nil
}

func (c *connection) publish(ctx context.Context, topic string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	room, closed := c.room, c.closed
	c.mu.Unlock()

	if closed || room == nil {
		return fmt.Errorf("publish %s: %w", topic, domain.ErrTransportDropped)
	}
	if err := room.PublishData(payload, topic); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Disconnect leaves the room and closes the event stream. Safe to call more
// than once and after the room dropped on its own.
func (c *connection) Disconnect() {
	c.teardown()
	c.leaveOnce.Do(func() {
		c.mu.Lock()
		room := c.room
		c.mu.Unlock()
		if room != nil {
			room.Disconnect()
		}
	})
}

func (c *connection) teardown() {
	c.teardownOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.mu.Unlock()

		close(c.done)
		c.emitters.Wait()
		close(c.events)
	})
}

func (c *connection) emit(event domain.RoomEvent) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.emitters.Add(1)
	c.mu.Unlock()
	defer c.emitters.Done()

	select {
	case c.events <- event:
	case <-c.done:
	}
}

func (c *connection) handleData(topic string, payload []byte) {
	event, ok, err := decodePacket(topic, payload)
	if err != nil {
		c.logger.Warn("dropping data packet", "topic", topic, "error", err)
		return
	}
	if !ok {
		c.logger.Debug("ignoring data packet", "topic", topic)
		return
	}
	c.emit(event)
}

func (c *connection) handleReconnecting() {
	c.emit(domain.RoomEvent{Type: domain.RoomEventReconnecting})
}

func (c *connection) handleReconnected() {
	c.emit(domain.RoomEvent{Type: domain.RoomEventReconnected})
}

func (c *connection) handleDisconnected(reason string) {
	c.emit(domain.RoomEvent{Type: domain.RoomEventDisconnected, Reason: reason, Err: disconnectError(reason)})
	c.teardown()
}

var droppedReasons = []string{
	"fail",
	"signal_close",
	"unavailable",
	"timeout",
	"state_mismatch",
	"migration",
}

// disconnectError classifies a disconnect reason. Requested leaves and room
// shutdowns are clean; anything that looks like a transport failure is not.
func disconnectError(reason string) error {
	normalized := strings.ToLower(strings.TrimSpace(reason))
	for _, marker := range droppedReasons {
		if strings.Contains(normalized, marker) {
			return fmt.Errorf("%s: %w", reason, domain.ErrTransportDropped)
		}
	}
	return nil
}
