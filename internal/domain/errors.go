package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrDuplicateTool = errors.New("duplicate tool")
	ErrConnection    = errors.New("connection error")
	ErrToolExecution = errors.New("tool execution error")

	ErrToolNotFound      = errors.New("tool not found")
	ErrInvalidTransition = errors.New("invalid session state transition")
	ErrTransportDropped  = errors.New("room transport dropped")
)

// ConfigurationError reports missing or malformed configuration. It is fatal
// at startup.
type ConfigurationError struct {
	Fields []string
	Err    error
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString(ErrConfiguration.Error())
	if len(e.Fields) > 0 {
		fmt.Fprintf(&b, ": invalid or missing %s", strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

func (e *ConfigurationError) Is(target error) bool { return target == ErrConfiguration }

type DuplicateToolError struct {
	Name string
}

func (e *DuplicateToolError) Error() string {
	return fmt.Sprintf("%s: %q registered more than once", ErrDuplicateTool, e.Name)
}

func (e *DuplicateToolError) Is(target error) bool { return target == ErrDuplicateTool }

// ConnectionError reports an authentication or network failure while
// connecting to the room, after Attempts tries.
type ConnectionError struct {
	Room     string
	Attempts int
	Err      error
}

func (e *ConnectionError) Error() string {
	msg := fmt.Sprintf("%s: room %q", ErrConnection, e.Room)
	if e.Attempts > 0 {
		msg += fmt.Sprintf(" after %d attempt(s)", e.Attempts)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConnectionError) Unwrap() error { return e.Err }

func (e *ConnectionError) Is(target error) bool { return target == ErrConnection }

// ToolExecutionError is scoped to a single tool call. It is reported back to
// the voice model and never ends the session.
type ToolExecutionError struct {
	Tool   string
	CallID string
	Err    error
}

func (e *ToolExecutionError) Error() string {
	msg := fmt.Sprintf("%s: %s", ErrToolExecution, e.Tool)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }

func (e *ToolExecutionError) Is(target error) bool { return target == ErrToolExecution }
