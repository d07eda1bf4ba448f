package domain

import (
	"fmt"
	"sync"
	"time"
)

type SessionState string

const (
	SessionStateIdle             SessionState = "idle"
	SessionStateLoadingConfig    SessionState = "loading_config"
	SessionStateRegisteringTools SessionState = "registering_tools"
	SessionStateConnecting       SessionState = "connecting"
	SessionStateConnected        SessionState = "connected"
	SessionStateEnding           SessionState = "ending"
	SessionStateTerminated       SessionState = "terminated"
)

var sessionStateOrder = []SessionState{
	SessionStateIdle,
	SessionStateLoadingConfig,
	SessionStateRegisteringTools,
	SessionStateConnecting,
	SessionStateConnected,
	SessionStateEnding,
	SessionStateTerminated,
}

func (s SessionState) next() (SessionState, bool) {
	for i, state := range sessionStateOrder {
		if state == s && i+1 < len(sessionStateOrder) {
			return sessionStateOrder[i+1], true
		}
	}
	return "", false
}

func (s SessionState) before(other SessionState) bool {
	return stateIndex(s) < stateIndex(other)
}

func stateIndex(s SessionState) int {
	for i, state := range sessionStateOrder {
		if state == s {
			return i
		}
	}
	return -1
}

func (s SessionState) Terminal() bool {
	return s == SessionStateTerminated
}

// StateObserver is called after every state change, outside the lifecycle lock.
type StateObserver func(from, to SessionState)

// Lifecycle guards the per-session state machine. Transitions are strictly
// sequential; Terminate is allowed from any non-terminal state.
type Lifecycle struct {
	mu        sync.Mutex
	state     SessionState
	observers []StateObserver
}

func NewLifecycle(observers ...StateObserver) *Lifecycle {
	return &Lifecycle{state: SessionStateIdle, observers: observers}
}

func (l *Lifecycle) State() SessionState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *Lifecycle) Advance(to SessionState) error {
	l.mu.Lock()
	from := l.state
	want, ok := from.next()
	if !ok || want != to {
		l.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	l.state = to
	l.mu.Unlock()

	l.notify(from, to)
	return nil
}

// AdvanceTo steps through every intermediate state up to target. It fails
// without changing state when target is behind the current state.
func (l *Lifecycle) AdvanceTo(target SessionState) error {
	for {
		current := l.State()
		if current == target {
			return nil
		}
		next, ok := current.next()
		if !ok || !current.before(target) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current, target)
		}
		if err := l.Advance(next); err != nil {
			return err
		}
	}
}

// Terminate moves to terminated and reports whether this call made the change.
func (l *Lifecycle) Terminate() bool {
	l.mu.Lock()
	from := l.state
	if from.Terminal() {
		l.mu.Unlock()
		return false
	}
	l.state = SessionStateTerminated
	l.mu.Unlock()

	l.notify(from, SessionStateTerminated)
	return true
}

func (l *Lifecycle) notify(from, to SessionState) {
	for _, observer := range l.observers {
		observer(from, to)
	}
}

// SessionRecord is the ledger entry written when a session is released.
type SessionRecord struct {
	ID           string
	Room         string
	Identity     string
	StartedAt    time.Time
	EndedAt      time.Time
	FinalState   SessionState
	ToolCalls    int64
	ToolFailures int64
	Usage        Usage
	Error        string
}

func (r SessionRecord) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.IsZero() || r.EndedAt.Before(r.StartedAt) {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}
