package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Sessions []sessionSchema `toml:"sessions"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported sessions schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	ID           string      `toml:"id"`
	Room         string      `toml:"room"`
	Identity     string      `toml:"identity,omitempty"`
	StartedAt    string      `toml:"started_at"`
	EndedAt      string      `toml:"ended_at,omitempty"`
	FinalState   string      `toml:"final_state"`
	ToolCalls    int64       `toml:"tool_calls"`
	ToolFailures int64       `toml:"tool_failures"`
	Usage        usageSchema `toml:"usage"`
	Error        string      `toml:"error,omitempty"`
}

type usageSchema struct {
	InputTokens       int64  `toml:"input_tokens"`
	OutputTokens      int64  `toml:"output_tokens"`
	CachedInputTokens int64  `toml:"cached_input_tokens"`
	TTSCharacters     int64  `toml:"tts_characters"`
	STTAudio          string `toml:"stt_audio,omitempty"`
}
