package components

import (
	"fmt"

	"github.com/facastdev/facast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar with key hints.
func RenderStatusBar(width int, dataDir string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [tab]switch  [a]what-if  [c]advice  [r]eload  [q]uit"
	right := ""
	if dataDir != "" {
		right = fmt.Sprintf("Data: %s ", dataDir)
	}

	// Pad middle
	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
