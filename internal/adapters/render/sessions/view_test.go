package sessions

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSingleSession(t *testing.T) {
	now := time.Date(2026, 10, 17, 11, 0, 0, 0, time.UTC)

	output, err := Render([]domain.SessionRecord{
		{
			ID:           "5f0c2a9e-1b7d-4c55-9d43-0a51f1d2c001",
			Room:         "alexis-room",
			StartedAt:    now.Add(-3 * time.Hour),
			EndedAt:      now.Add(-3*time.Hour + 12*time.Minute),
			FinalState:   domain.SessionStateTerminated,
			ToolCalls:    4,
			ToolFailures: 1,
			Usage:        domain.Usage{InputTokens: 1200, OutputTokens: 800},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 1")
	assert.Contains(t, output, "alexis-room (5f0c2a9e)")
	assert.Contains(t, output, "[terminated]")
	assert.Contains(t, output, "started 3 hours ago, lasted 12m0s")
	assert.Contains(t, output, "tools: 4 call(s), 1 failed")
	assert.Contains(t, output, "[===============xxxxx]")
	assert.Contains(t, output, "usage: ")
	assert.NotContains(t, output, "error:")
}

func TestRenderEmptyLedger(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 0")
	assert.Contains(t, output, "No sessions recorded yet.")
}

func TestRenderShowsErrorsAndOpenSessions(t *testing.T) {
	now := time.Date(2026, 10, 17, 11, 0, 0, 0, time.UTC)

	output, err := Render([]domain.SessionRecord{
		{
			ID:         "s-open",
			Room:       "alexis-room",
			StartedAt:  now.Add(-90 * time.Second),
			FinalState: domain.SessionStateConnected,
		},
		{
			ID:         "s-dropped",
			Room:       "alexis-room",
			StartedAt:  now.Add(-1 * time.Hour),
			EndedAt:    now.Add(-59 * time.Minute),
			FinalState: domain.SessionStateTerminated,
			Error:      `room "alexis-room": room transport dropped`,
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "started 1 minute ago, still open")
	assert.Contains(t, output, "[connected]")
	assert.Contains(t, output, "tools: 0 call(s)")
	assert.Contains(t, output, "error: room \"alexis-room\": room transport dropped")
}

func TestRenderHonoursLimit(t *testing.T) {
	now := time.Date(2026, 10, 17, 11, 0, 0, 0, time.UTC)
	records := []domain.SessionRecord{
		{ID: "s-3", Room: "r3", StartedAt: now.Add(-1 * time.Minute)},
		{ID: "s-2", Room: "r2", StartedAt: now.Add(-2 * time.Minute)},
		{ID: "s-1", Room: "r1", StartedAt: now.Add(-3 * time.Minute)},
	}

	output, err := Render(records, RenderOptions{Now: now, Limit: 2})

	require.NoError(t, err)
	assert.Contains(t, output, "sessions: 2 of 3")
	assert.Contains(t, output, "r3 (s-3)")
	assert.False(t, strings.Contains(output, "r1 (s-1)"))
}

func TestRenderToolBar(t *testing.T) {
	s := newStyles()

	tests := []struct {
		name     string
		calls    int64
		failures int64
		want     string
	}{
		{name: "all good", calls: 3, failures: 0, want: "[==========]"},
		{name: "all failed", calls: 2, failures: 2, want: "[xxxxxxxxxx]"},
		{name: "tiny failure share still visible", calls: 1000, failures: 1, want: "[=========x]"},
		{name: "no calls", calls: 0, failures: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, renderToolBar(tt.calls, tt.failures, 10, s))
		})
	}
}

func TestFormatStarted(t *testing.T) {
	now := time.Date(2026, 10, 17, 11, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", formatStarted(now.Add(-10*time.Second), now))
	assert.Equal(t, "5 minutes ago", formatStarted(now.Add(-5*time.Minute), now))
	assert.Equal(t, "1 hour ago", formatStarted(now.Add(-time.Hour), now))
	assert.Equal(t, "09:30 on 15 Oct", formatStarted(time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC), now))
	assert.Equal(t, "at an unknown time", formatStarted(time.Time{}, now))
}
