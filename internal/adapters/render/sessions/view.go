package sessions

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/alexis-agent/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const toolBarWidth = 20

type RenderOptions struct {
	Now   time.Time
	Limit int
}

func renderView(records []domain.SessionRecord, opts RenderOptions, s styles) string {
	shown := records
	if opts.Limit > 0 && len(shown) > opts.Limit {
		shown = shown[:opts.Limit]
	}

	lines := []string{
		s.title.Render("Alexis Agent Sessions"),
		s.header.Render(sessionCountLabel(len(shown), len(records))),
	}

	if len(records) == 0 {
		lines = append(lines, s.empty.Render("No sessions recorded yet."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, record := range shown {
		lines = append(lines, s.section.Render(renderSession(record, opts, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func sessionCountLabel(shown, total int) string {
	if shown == total {
		return fmt.Sprintf("sessions: %d", total)
	}
	return fmt.Sprintf("sessions: %d of %d", shown, total)
}

func renderSession(record domain.SessionRecord, opts RenderOptions, s styles) string {
	parts := []string{
		lipgloss.JoinHorizontal(lipgloss.Top,
			s.room.Render(fmt.Sprintf("%s (%s)", record.Room, shortID(record.ID))),
			" ",
			stateStyle(record, s).Render(stateLabel(record)),
		),
		s.faint.Render(timingLine(record, opts.Now)),
		toolLine(record, s),
		s.detail.Render("usage: " + record.Usage.Summary()),
	}

	if record.Error != "" {
		parts = append(parts, s.warning.Render("error: "+record.Error))
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func stateLabel(record domain.SessionRecord) string {
	if record.FinalState == "" {
		return "[unknown]"
	}
	return "[" + string(record.FinalState) + "]"
}

func stateStyle(record domain.SessionRecord, s styles) lipgloss.Style {
	switch {
	case record.Error != "":
		return s.warning
	case record.FinalState.Terminal():
		return s.stateOK
	default:
		return s.stateLive
	}
}

func timingLine(record domain.SessionRecord, now time.Time) string {
	started := formatStarted(record.StartedAt, now)
	if record.EndedAt.IsZero() {
		return "started " + started + ", still open"
	}
	return fmt.Sprintf("started %s, lasted %s", started, formatDuration(record.Duration()))
}

func toolLine(record domain.SessionRecord, s styles) string {
	label := fmt.Sprintf("tools: %d call(s)", record.ToolCalls)
	if record.ToolCalls == 0 {
		return s.detail.Render(label)
	}

	if record.ToolFailures > 0 {
		label += fmt.Sprintf(", %d failed", record.ToolFailures)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		s.detail.Render(label),
		" ",
		renderToolBar(record.ToolCalls, record.ToolFailures, toolBarWidth, s),
	)
}

// renderToolBar shows the share of successful calls as '=' and failures as 'x'.
func renderToolBar(calls, failures int64, width int, s styles) string {
	if width <= 0 || calls <= 0 {
		return ""
	}
	if failures < 0 {
		failures = 0
	}
	if failures > calls {
		failures = calls
	}

	failed := int(math.Round(float64(width) * float64(failures) / float64(calls)))
	if failures > 0 && failed == 0 {
		failed = 1
	}
	ok := width - failed

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", ok)),
		s.barFailed.Render(strings.Repeat("x", failed)),
		s.barBracket.Render("]"),
	)
}

func formatStarted(startedAt, now time.Time) string {
	if startedAt.IsZero() {
		return "at an unknown time"
	}
	if now.IsZero() || startedAt.After(now) {
		return startedAt.Format("15:04 on 02 Jan")
	}

	elapsed := now.Sub(startedAt)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return plural(int(elapsed.Minutes()), "minute") + " ago"
	case elapsed < 24*time.Hour:
		return plural(int(elapsed.Hours()), "hour") + " ago"
	default:
		return startedAt.Format("15:04 on 02 Jan")
	}
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
