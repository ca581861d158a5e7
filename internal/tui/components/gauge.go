package components

import (
	"fmt"

	"github.com/theirongolddev/fuelsync/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForLevel returns red/orange/yellow/green as efficiency rises.
func ColorForLevel(level float64) lipgloss.Color {
	t := theme.Active
	switch {
	case level >= 0.8:
		return t.Green
	case level >= 0.6:
		return t.Yellow
	case level >= 0.4:
		return t.Orange
	default:
		return t.Red
	}
}

// FuelGauge renders a labelled 0..1 efficiency bar with its percentage.
func FuelGauge(label string, level float64, labelW, barWidth int) string {
	t := theme.Active

	if level < 0 {
		level = 0
	}
	if level > 1 {
		level = 1
	}

	color := ColorForLevel(level)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(level) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", level*100))
}
