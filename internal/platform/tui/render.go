package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-automata/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:  lipgloss.NewStyle(),
	core.ColorCell:     lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorAntRight: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorAntLeft:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
	core.ColorHUD:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorAlert:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorMuted:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
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
