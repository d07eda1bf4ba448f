package domain

type RoomEventType string

const (
	RoomEventToolCall          RoomEventType = "tool_call"
	RoomEventFalseInterruption RoomEventType = "false_interruption"
	RoomEventMetrics           RoomEventType = "metrics"
	RoomEventReconnecting      RoomEventType = "reconnecting"
	RoomEventReconnected       RoomEventType = "reconnected"
	RoomEventDisconnected      RoomEventType = "disconnected"
)

// RoomEvent is a single event delivered by the room connection. Only the
// field matching Type is populated.
type RoomEvent struct {
	Type RoomEventType

	ToolCall *ToolCall
	// ExtraInstructions accompanies a false interruption and is forwarded to
	// the next generated reply.
	ExtraInstructions string
	Metrics           *Usage

	// Reason and Err describe a disconnect. A non-nil Err marks a transport
	// failure rather than a requested leave.
	Reason string
	Err    error
}
