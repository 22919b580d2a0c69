package ui

import "github.com/charmbracelet/lipgloss"

// Color palette shared by the monitor views
var (
	PrimaryColor = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7C3AED"}
	AccentColor  = lipgloss.AdaptiveColor{Light: "#02BA84", Dark: "#10B981"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FF8C00", Dark: "#F59E0B"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#94A3B8"}
	FgColor      = lipgloss.AdaptiveColor{Light: "#1E1E2E", Dark: "#CDD6F4"}
)

// Common styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			Padding(0, 1).
			MarginBottom(1)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	StatValueStyle = lipgloss.NewStyle().
			Foreground(FgColor).
			Bold(true)

	WarnValueStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			MarginTop(1)

	BorderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(0, 1)
)
