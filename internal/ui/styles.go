package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor    = lipgloss.Color("#FF8C42")
	highlightColor = lipgloss.Color("#FFB84D")
	textColor      = lipgloss.Color("#FFFFFF")
	mutedColor     = lipgloss.Color("#6B7280")
	errorColor     = lipgloss.Color("#FF4757")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginTop(1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	FieldStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	FocusedFieldStyle = FieldStyle.
				BorderForeground(accentColor)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(mutedColor).
			Padding(0, 2)

	FocusedButtonStyle = ButtonStyle.
				Background(accentColor).
				Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	UnselectedStyle = lipgloss.NewStyle().
			Foreground(textColor)

	StatusStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			MarginTop(1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			MarginTop(1)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)

	ErrorBoxStyle = BoxStyle.
			BorderForeground(errorColor)
)
