package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/dodge/internal/core"
)

// colorStyles maps cell roles to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorFrame:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorHUD:         lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	core.ColorName:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorAccent:      lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	core.ColorPlayer:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorCoin:        lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBarrier:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBarrierTall: lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
