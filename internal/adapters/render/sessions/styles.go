package sessions

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	room       lipgloss.Style
	detail     lipgloss.Style
	faint      lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barFailed  lipgloss.Style
	stateOK    lipgloss.Style
	stateLive  lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		room:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		faint:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		stateOK:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		stateLive:  lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
	}
}
