package components

import (
	"strings"

	"github.com/theirongolddev/fuelsync/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// info on the right. A non-empty alert replaces the hints.
func RenderStatusBar(width int, hints, info, alert string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " " + hints
	if alert != "" {
		left = " " + lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).Render(alert)
	}
	right := ""
	if info != "" {
		right = info + " "
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
