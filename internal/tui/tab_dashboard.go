package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/pipeline"
	"github.com/theirongolddev/fuelsync/internal/tui/components"
	"github.com/theirongolddev/fuelsync/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const recentEntries = 5

func (a App) renderDashboardTab(cw int) string {
	t := theme.Active
	agg := a.data.Aggregates
	u := a.units

	if agg.TotalEntries == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		msg := "No fill-ups in this time range. Press t to widen it."
		if a.data.TotalEntries == 0 {
			msg = "No fill-ups yet. Press a to log your first one."
		}
		return components.ContentCard("Dashboard", muted.Render(msg), cw)
	}

	var b strings.Builder

	// Row 1: headline figures
	metrics := []components.Metric{
		{Label: "Avg Mileage", Value: u.Mileage(agg.AverageMileage), Delta: "latest " + u.Mileage(agg.LastMileage)},
		{Label: "Fuel Spend", Value: u.Cost(agg.TotalFuelCost), Delta: "avg " + u.Price(agg.AveragePrice)},
		{Label: "Distance", Value: u.Distance(agg.TotalDistance), Delta: u.PerDistance(agg.CostPerDistance)},
		{Label: "Fuel Used", Value: u.Volume(agg.TotalFuelUsed), Delta: fmt.Sprintf("%d fill-ups", agg.TotalEntries)},
	}
	if a.isCompactLayout() {
		b.WriteString(components.MetricCardRow(metrics[:2], cw))
		b.WriteString("\n")
		b.WriteString(components.MetricCardRow(metrics[2:], cw))
	} else {
		b.WriteString(components.MetricCardRow(metrics, cw))
	}
	b.WriteString("\n")

	// Row 2: efficiency gauge and weekly sparkline
	halves := components.LayoutRow(cw, 2)
	gaugeCard := components.ContentCard("Efficiency", a.efficiencyBody(components.CardInnerWidth(halves[0])), halves[0])
	trendCard := components.ContentCard("Weekly Mileage", a.sparklineBody(), halves[1])
	if a.isCompactLayout() {
		gaugeCard = components.ContentCard("Efficiency", a.efficiencyBody(components.CardInnerWidth(cw)), cw)
		b.WriteString(gaugeCard)
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Weekly Mileage", a.sparklineBody(), cw))
	} else {
		b.WriteString(components.CardRow([]string{gaugeCard, trendCard}))
	}
	b.WriteString("\n")

	// Row 3: recent fill-ups
	b.WriteString(components.ContentCard("Recent Fill-ups", a.recentBody(components.CardInnerWidth(cw)), cw))

	return b.String()
}

func (a App) efficiencyBody(innerW int) string {
	t := theme.Active
	agg := a.data.Aggregates
	u := a.units

	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	good := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Bold(true)
	warn := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Bold(true)

	const labelW = 8
	barW := innerW - labelW - 6
	if barW < 10 {
		barW = 10
	}

	full := a.cfg.Vehicle.GaugeMaxMileage
	level := pipeline.GaugeLevel(agg.AverageMileage, full)

	var b strings.Builder
	b.WriteString(components.FuelGauge("Average", level, labelW, barW))
	b.WriteString("\n\n")

	switch {
	case agg.LastMileage <= 0:
		b.WriteString(muted.Render("Log two fill-ups to see mileage"))
	case agg.LatestAboveAverage:
		b.WriteString(good.Render("▲ Latest fill-up above average"))
		b.WriteString(muted.Render(fmt.Sprintf(" (%s)", cli.FormatDelta(agg.LastMileage, agg.AverageMileage))))
	default:
		b.WriteString(warn.Render("▼ Latest fill-up below average"))
		b.WriteString(muted.Render(fmt.Sprintf(" (%s)", cli.FormatDelta(agg.LastMileage, agg.AverageMileage))))
	}
	b.WriteString("\n")
	b.WriteString(muted.Render(fmt.Sprintf("Gauge full at %s", u.Mileage(full))))
	return b.String()
}

func (a App) sparklineBody() string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	trend := a.data.Trend

	if len(trend) == 0 {
		return muted.Render("No weekly data yet")
	}

	best := trend[0]
	for _, p := range trend[1:] {
		if p.Value > best.Value {
			best = p
		}
	}
	latest := trend[len(trend)-1]

	var b strings.Builder
	b.WriteString(components.Sparkline(pipeline.TrendValues(trend), t.Accent))
	b.WriteString("\n\n")
	b.WriteString(muted.Render(fmt.Sprintf("%d weeks · best %.1f (%s) · latest %.1f",
		len(trend), best.Value, best.Label, latest.Value)))
	b.WriteString("\n")
	b.WriteString(muted.Render("Press 3 for the full trend"))
	return b.String()
}

func (a App) recentBody(innerW int) string {
	t := theme.Active
	u := a.units
	muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	value := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	entries := a.data.Entries
	if len(entries) > recentEntries {
		entries = entries[:recentEntries]
	}

	var b strings.Builder
	if a.data.HasLast {
		b.WriteString(muted.Render("Last fill-up " + cli.FormatRelative(a.data.Last.Date, time.Now())))
		b.WriteString("\n")
	}
	for _, e := range entries {
		line := fmt.Sprintf("%-13s %9s %s  %9s  %10s  %12s",
			cli.FormatDate(e.Date),
			cli.FormatOdometer(e.OdometerReading),
			u.DistanceUnit,
			u.Volume(e.FuelQuantity),
			u.Cost(e.TotalCost),
			u.Mileage(e.Mileage),
		)
		line = truncStr(line, innerW)
		b.WriteString("\n")
		if e.HasMileage() {
			b.WriteString(value.Render(line))
		} else {
			b.WriteString(dim.Render(line))
		}
	}
	return b.String()
}
