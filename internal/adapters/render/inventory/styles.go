package inventory

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	item       lipgloss.Style
	detail     lipgloss.Style
	warning    lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	available  lipgloss.Style
	borrowed   lipgloss.Style
	missing    lipgloss.Style
	checked    lipgloss.Style
	unchecked  lipgloss.Style
	changed    lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		item:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		available:  lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		borrowed:   lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		missing:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		checked:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
		unchecked:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		changed:    lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
