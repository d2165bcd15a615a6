package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#E50914")
	textColor   = lipgloss.Color("#F5F5F5")
	mutedColor  = lipgloss.Color("#8A8A8A")

	brandStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	taglineStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	blurredInputStyle = inputStyle.
				BorderForeground(mutedColor)

	dropdownStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1)

	sectionTitleStyle = lipgloss.NewStyle().
				Foreground(mutedColor).
				Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	highlightStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Background(accentColor).
			Bold(true)

	headingStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true).
			MarginTop(1)

	featuredStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mutedColor).
			Padding(0, 1).
			Width(24)

	activeCardStyle = cardStyle.
			BorderForeground(accentColor)

	alertStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#FF5555")).
			Padding(0, 1)
)
