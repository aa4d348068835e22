package tui

import "github.com/charmbracelet/lipgloss"

var (
	primaryColor = lipgloss.Color("99")
	accentColor  = lipgloss.Color("212")
	mutedColor   = lipgloss.Color("245")
	errorColor   = lipgloss.Color("196")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	columnStyle = lipgloss.NewStyle().
			PaddingRight(1)

	selectedColumnStyle = lipgloss.NewStyle().
				PaddingRight(1).
				Bold(true).
				Foreground(accentColor)

	hiddenColumnStyle = lipgloss.NewStyle().
				PaddingRight(1).
				Faint(true).
				Foreground(mutedColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)
