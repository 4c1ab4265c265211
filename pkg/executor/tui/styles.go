package tui

import "github.com/charmbracelet/lipgloss"

// Color Palette
// This is the single source of truth for all TUI colors.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // primary accent
	mintGreen   = lipgloss.Color("#A8E6CF") // success / ready states
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // primary text
	amberYellow = lipgloss.Color("#FDE68A") // warnings
)

// Common Styles
var (
	headerStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	readyStyle = lipgloss.NewStyle().
			Foreground(mintGreen).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink)

	warningStyle = lipgloss.NewStyle().
			Foreground(amberYellow)

	summaryStyle = lipgloss.NewStyle().
			Foreground(brightWhite)

	settingsStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	historyTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(salmonPink)

	historyEntryStyle = lipgloss.NewStyle().
				Foreground(brightWhite)

	historyMetaStyle = lipgloss.NewStyle().
				Foreground(mutedGray)

	progressStyle = lipgloss.NewStyle().
			Foreground(mintGreen)
)
