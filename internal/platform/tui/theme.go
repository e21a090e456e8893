package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of the menu screens.
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Record    lipgloss.Style
	Badge     lipgloss.Style
	Notice    lipgloss.Style
	Muted     lipgloss.Style
	Panel     lipgloss.Style
	Help      lipgloss.Style
	ModeOn    lipgloss.Style
	ModeOff   lipgloss.Style
	GameOver  lipgloss.Style
	RankFirst lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51")),  // Bright cyan
		Subtitle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),            // Medium gray
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),            // Light gray
		Value:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")), // White
		Record:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("226")), // Bright yellow
		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("16")).
			Background(lipgloss.Color("220")).
			Padding(0, 1),
		Notice: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true), // Orange
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		ModeOn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("51")).Padding(0, 1),
		ModeOff:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Padding(0, 1),
		GameOver:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")), // Red
		RankFirst: lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	}
}
