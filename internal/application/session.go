package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/bnema/alexis-agent/internal/ports"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const defaultMaxParallelToolCalls = 4

// Session owns one live room connection. Serve drives the room events and
// Close releases the connection; Close is safe to call more than once.
type Session struct {
	id        string
	room      string
	identity  string
	conn      ports.RoomConnection
	tools     *ToolRegistry
	lifecycle *domain.Lifecycle
	usage     *UsageCollector
	clock     ports.Clock
	logger    *slog.Logger

	maxParallel int
	startedAt   time.Time

	toolCalls    atomic.Int64
	toolFailures atomic.Int64

	closeOnce sync.Once
	mu        sync.Mutex
	endedAt   time.Time
	endErr    error
}

func (s *Session) ID() string { return s.id }

func (s *Session) Room() string { return s.room }

func (s *Session) State() domain.SessionState {
	return s.lifecycle.State()
}

func (s *Session) Usage() domain.Usage {
	return s.usage.Summary()
}

// Serve blocks until ctx is done or the room disconnects. A requested stop or
// a clean leave returns nil; a transport failure is returned.
func (s *Session) Serve(ctx context.Context) error {
	if state := s.State(); state != domain.SessionStateConnected {
		return fmt.Errorf("serve session in state %s: %w", state, domain.ErrInvalidTransition)
	}

	// Tool calls run on callCtx so in-flight handlers stop when Serve returns.
	callCtx, cancelCalls := context.WithCancel(ctx)
	var inflight errgroup.Group
	defer func() { _ = inflight.Wait() }()
	defer cancelCalls()

	slots := make(chan struct{}, s.maxParallel)

	events := s.conn.Events()
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stop requested", "reason", context.Cause(ctx))
			s.beginEnding(nil)
			return nil
		case event, ok := <-events:
			if !ok {
				err := fmt.Errorf("room %q: event stream closed: %w", s.room, domain.ErrTransportDropped)
				s.logger.Error("room connection lost", "error", err)
				s.beginEnding(err)
				return err
			}

			switch event.Type {
			case domain.RoomEventToolCall:
				if event.ToolCall == nil {
					continue
				}
				call := *event.ToolCall
				inflight.Go(func() error {
					select {
					case slots <- struct{}{}:
						defer func() { <-slots }()
					case <-callCtx.Done():
					}
					if callCtx.Err() != nil {
						s.logger.Debug("dropping queued tool call", "tool", call.Name, "call_id", call.ID)
						return nil
					}
					s.handleToolCall(callCtx, call)
					return nil
				})
			case domain.RoomEventFalseInterruption:
				s.logger.Info("false positive interruption, resuming")
				if err := s.conn.GenerateReply(ctx, event.ExtraInstructions); err != nil {
					s.logger.Warn("resume after false interruption", "error", err)
				}
			case domain.RoomEventMetrics:
				if event.Metrics != nil {
					s.usage.Collect(*event.Metrics)
				}
			case domain.RoomEventReconnecting:
				s.logger.Warn("room connection interrupted, reconnecting")
			case domain.RoomEventReconnected:
				s.logger.Info("room connection restored")
			case domain.RoomEventDisconnected:
				if event.Err != nil {
					err := fmt.Errorf("room %q: %w", s.room, event.Err)
					s.logger.Error("room disconnected", "reason", event.Reason, "error", event.Err)
					s.beginEnding(err)
					return err
				}
				s.logger.Info("room disconnected", "reason", event.Reason)
				s.beginEnding(nil)
				return nil
			default:
				s.logger.Debug("ignoring room event", "type", event.Type)
			}
		}
	}
}

// InvokeTool runs a single tool call. Failures are *domain.ToolExecutionError
// and leave the session state untouched.
func (s *Session) InvokeTool(ctx context.Context, call domain.ToolCall) (json.RawMessage, error) {
	s.toolCalls.Add(1)
	output, err := s.tools.Invoke(ctx, call)
	if err != nil {
		s.toolFailures.Add(1)
		return nil, err
	}
	return output, nil
}

func (s *Session) handleToolCall(ctx context.Context, call domain.ToolCall) {
	if call.ID == "" {
		call.ID = uuid.NewString()
	}
	logger := s.logger.With("tool", call.Name, "call_id", call.ID)

	started := s.clock.Now()
	output, err := s.InvokeTool(ctx, call)

	var result domain.ToolResult
	if err != nil {
		logger.Warn("tool call failed", "error", err)
		result = domain.ToolFailure(call, err)
	} else {
		logger.Debug("tool call completed", "elapsed", s.clock.Now().Sub(started))
		result = domain.ToolSuccess(call, output)
	}

	if err := s.conn.PublishToolResult(ctx, result); err != nil {
		logger.Error("publish tool result", "error", err)
	}
}

func (s *Session) beginEnding(err error) {
	s.mu.Lock()
	if err != nil && s.endErr == nil {
		s.endErr = err
	}
	s.mu.Unlock()

	if s.State() == domain.SessionStateConnected {
		_ = s.lifecycle.Advance(domain.SessionStateEnding)
	}
}

// Close disconnects from the room and terminates the session. Calls after the
// first are no-ops.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.beginEnding(nil)
		s.conn.Disconnect()

		s.mu.Lock()
		s.endedAt = s.clock.Now()
		s.mu.Unlock()

		s.lifecycle.Terminate()
		s.logger.Info("session released",
			"tool_calls", s.toolCalls.Load(),
			"tool_failures", s.toolFailures.Load(),
			"usage", s.usage.Summary().Summary(),
		)
	})
}

func (s *Session) Record() domain.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := domain.SessionRecord{
		ID:           s.id,
		Room:         s.room,
		Identity:     s.identity,
		StartedAt:    s.startedAt,
		EndedAt:      s.endedAt,
		FinalState:   s.lifecycle.State(),
		ToolCalls:    s.toolCalls.Load(),
		ToolFailures: s.toolFailures.Load(),
		Usage:        s.usage.Summary(),
	}
	if s.endErr != nil {
		record.Error = s.endErr.Error()
	}
	return record
}
