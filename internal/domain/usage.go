package domain

import (
	"fmt"
	"time"
)

// Usage aggregates pipeline metrics reported during a session.
type Usage struct {
	InputTokens       int64
	OutputTokens      int64
	CachedInputTokens int64
	TTSCharacters     int64
	STTAudio          time.Duration
}

// BlendedTotal returns InputTokens + CachedInputTokens + OutputTokens.
func (u Usage) BlendedTotal() int64 {
	return u.InputTokens + u.OutputTokens + u.CachedInputTokens
}

func (u Usage) BlendedTotalCompact() string {
	return compactNumber(u.BlendedTotal())
}

func (u Usage) Add(other Usage) Usage {
	return Usage{
		InputTokens:       u.InputTokens + other.InputTokens,
		OutputTokens:      u.OutputTokens + other.OutputTokens,
		CachedInputTokens: u.CachedInputTokens + other.CachedInputTokens,
		TTSCharacters:     u.TTSCharacters + other.TTSCharacters,
		STTAudio:          u.STTAudio + other.STTAudio,
	}
}

func (u Usage) IsZero() bool {
	return u == Usage{}
}

func (u Usage) Summary() string {
	return fmt.Sprintf("llm tokens %s (in %d, out %d, cached %d), tts chars %d, stt audio %s",
		u.BlendedTotalCompact(), u.InputTokens, u.OutputTokens, u.CachedInputTokens,
		u.TTSCharacters, u.STTAudio.Round(time.Millisecond))
}

func compactNumber(v int64) string {
	if v < 1_000 {
		return fmt.Sprintf("%d", v)
	}

	if v < 1_000_000 {
		return fmt.Sprintf("%.1fk", float64(v)/1_000)
	}

	return fmt.Sprintf("%.1fM", float64(v)/1_000_000)
}
