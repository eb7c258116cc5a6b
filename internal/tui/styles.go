package tui

import "github.com/charmbracelet/lipgloss"

// Styles
var (
	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // Orange for initials
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	headerStyle = lipgloss.NewStyle().
			Bold(true)

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))

	confirmBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63"))
)

// inputStyles applies the shared text input colours
func inputStyles() (text, prompt, placeholder lipgloss.Style) {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("230")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
}
