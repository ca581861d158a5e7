package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/pipeline"
	"github.com/theirongolddev/fuelsync/internal/tui/components"
	"github.com/theirongolddev/fuelsync/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderTrendTab(cw int) string {
	t := theme.Active
	trend := a.data.Trend
	avg := a.data.Aggregates.AverageMileage

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(trend) == 0 {
		return components.ContentCard("Weekly Mileage",
			muted.Render("No mileage yet. Each fill-up after the first adds a data point."), cw)
	}

	labels := make([]string, len(trend))
	for i, p := range trend {
		labels[i] = p.Label
	}

	chartH := 10
	if a.isCompactLayout() {
		chartH = 7
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Weekly Mileage (%s/%s, avg %.1f)", a.units.DistanceUnit, a.units.VolumeUnit, avg),
		components.TrendChart(pipeline.TrendValues(trend), labels, avg, components.CardInnerWidth(cw), chartH),
		cw,
	))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("By Week", a.trendTable(), cw))
	return b.String()
}

// trendTable lists the weeks newest first with the change from the week before.
func (a App) trendTable() string {
	t := theme.Active
	trend := a.data.Trend

	header := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	up := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	down := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	space := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(header.Render(fmt.Sprintf("%-10s %9s %9s %8s", "Week", "Fill-ups", "Mileage", "Change")))
	for i := len(trend) - 1; i >= 0; i-- {
		p := trend[i]
		b.WriteString("\n")
		b.WriteString(row.Render(fmt.Sprintf("%-10s %9d %9.1f", p.Label, p.Entries, p.Value)))
		b.WriteString(space.Render(" "))
		if i == 0 {
			b.WriteString(row.Render(fmt.Sprintf("%8s", "-")))
			continue
		}
		delta := cli.FormatDelta(p.Value, trend[i-1].Value)
		style := up
		if p.Value < trend[i-1].Value {
			style = down
		}
		b.WriteString(style.Render(fmt.Sprintf("%8s", delta)))
	}
	return b.String()
}
