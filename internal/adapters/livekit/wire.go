package livekit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
)

// Data packet topics shared with the voice pipeline in the room. Every
// payload is a JSON object.
const (
	TopicManifest   = "lk.agent.manifest"
	TopicToolCall   = "lk.agent.tool_call"
	TopicToolResult = "lk.agent.tool_result"
	TopicEvent      = "lk.agent.event"
	TopicControl    = "lk.agent.control"
)

const (
	eventFalseInterruption = "false_interruption"
	eventMetrics           = "metrics"

	controlGenerateReply = "generate_reply"
)

type agentManifest struct {
	Identity          string            `json:"identity"`
	Name              string            `json:"name,omitempty"`
	Instructions      string            `json:"instructions,omitempty"`
	Greeting          string            `json:"greeting,omitempty"`
	Voice             string            `json:"voice,omitempty"`
	NoiseCancellation string            `json:"noise_cancellation,omitempty"`
	Tools             []domain.ToolSpec `json:"tools"`
}

type pipelineEvent struct {
	Type              string        `json:"type"`
	ExtraInstructions string        `json:"extra_instructions,omitempty"`
	Usage             *usageMetrics `json:"usage,omitempty"`
}

type usageMetrics struct {
	InputTokens       int64   `json:"input_tokens"`
	OutputTokens      int64   `json:"output_tokens"`
	CachedInputTokens int64   `json:"cached_input_tokens"`
	TTSCharacters     int64   `json:"tts_characters"`
	STTAudioSeconds   float64 `json:"stt_audio_seconds"`
}

type controlMessage struct {
	Type         string `json:"type"`
	Instructions string `json:"instructions,omitempty"`
}

// decodePacket maps an inbound data packet to a room event. Packets on topics
// the agent does not consume return ok=false.
func decodePacket(topic string, payload []byte) (domain.RoomEvent, bool, error) {
	switch topic {
	case TopicToolCall:
		var call domain.ToolCall
		if err := json.Unmarshal(payload, &call); err != nil {
			return domain.RoomEvent{}, false, fmt.Errorf("decode tool call: %w", err)
		}
		if call.Name == "" {
			return domain.RoomEvent{}, false, fmt.Errorf("decode tool call: name is empty")
		}
		return domain.RoomEvent{Type: domain.RoomEventToolCall, ToolCall: &call}, true, nil

	case TopicEvent:
		var event pipelineEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			return domain.RoomEvent{}, false, fmt.Errorf("decode pipeline event: %w", err)
		}
		switch event.Type {
		case eventFalseInterruption:
			return domain.RoomEvent{Type: domain.RoomEventFalseInterruption, ExtraInstructions: event.ExtraInstructions}, true, nil
		case eventMetrics:
			if event.Usage == nil {
				return domain.RoomEvent{}, false, fmt.Errorf("decode pipeline event: metrics without usage")
			}
			usage := event.Usage.toDomain()
			return domain.RoomEvent{Type: domain.RoomEventMetrics, Metrics: &usage}, true, nil
		default:
			return domain.RoomEvent{}, false, nil
		}

	default:
		return domain.RoomEvent{}, false, nil
	}
}

func (m usageMetrics) toDomain() domain.Usage {
	return domain.Usage{
		InputTokens:       m.InputTokens,
		OutputTokens:      m.OutputTokens,
		CachedInputTokens: m.CachedInputTokens,
		TTSCharacters:     m.TTSCharacters,
		STTAudio:          time.Duration(m.STTAudioSeconds * float64(time.Second)),
	}
}
