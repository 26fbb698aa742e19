package terminal

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	heading    lipgloss.Style
	detail     lipgloss.Style
	muted      lipgloss.Style
	warning    lipgloss.Style
	good       lipgloss.Style
	bad        lipgloss.Style
	section    lipgloss.Style
	empty      lipgloss.Style
	label      lipgloss.Style
	value      lipgloss.Style
	highlight  lipgloss.Style
	user       lipgloss.Style
	assistant  lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
	stepDone   lipgloss.Style
	stepActive lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		heading:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		warning:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		good:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		bad:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		section:    lipgloss.NewStyle().MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		label:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		highlight:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("159")),
		user:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		assistant:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		stepDone:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		stepActive: lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
	}
}
