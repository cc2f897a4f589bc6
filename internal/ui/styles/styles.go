// Package styles provides the shared lipgloss styles for gw's terminal output.
package styles

import "charm.land/lipgloss/v2"

// Palette
var (
	Primary = lipgloss.Color("62")  // cyan/teal
	Accent  = lipgloss.Color("212") // pink
	Success = lipgloss.Color("82")  // green
	Error   = lipgloss.Color("196") // red
	Warning = lipgloss.Color("214") // orange
	Muted   = lipgloss.Color("240") // gray
)

var (
	Bold         = lipgloss.NewStyle().Bold(true)
	AccentStyle  = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
)
