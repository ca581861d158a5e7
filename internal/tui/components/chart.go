package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/fuelsync/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(sparkBlocks[idx])
	}

	return style.Render(buf.String())
}

// TrendChart renders weekly values as vertical bars with a y-axis and
// week labels underneath. Bars at or above reference are drawn green,
// the rest orange. Series wider than the chart keep their newest points.
func TrendChart(values []float64, labels []string, reference float64, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(values, theme.Active.Accent)
	}

	t := theme.Active

	yLabelW := 5
	chartW := width - yLabelW - 1
	barW := 3
	gap := 1

	// Keep the newest points that fit.
	fit := (chartW + gap) / (barW + gap)
	if fit < 1 {
		fit = 1
	}
	if len(values) > fit {
		values = values[len(values)-fit:]
		if len(labels) > fit {
			labels = labels[len(labels)-fit:]
		}
	}
	n := len(values)

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	ceiling := chartCeiling(peak)

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	goodStyle := lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface)
	lowStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	fractional := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(height)
		rowBottom := ceiling * float64(row-1) / float64(height)

		label := ""
		if row == height || row == (height+1)/2 {
			label = fmt.Sprintf("%.0f", rowTop)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			style := lowStyle
			if v >= reference {
				style = goodStyle
			}
			switch {
			case v >= rowTop:
				b.WriteString(style.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				if idx < 1 {
					idx = 1
				}
				if idx > 8 {
					idx = 8
				}
				b.WriteString(style.Render(strings.Repeat(string(fractional[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := n*barW + (n-1)*gap
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(placeLabels(labels, barW+gap, axisLen)))
	}

	return b.String()
}

// placeLabels lays labels out under bars spaced step columns apart,
// skipping any that would overlap the previous one.
func placeLabels(labels []string, step, axisLen int) string {
	buf := []rune(strings.Repeat(" ", axisLen))
	lastEnd := -1
	for i, lbl := range labels {
		pos := i * step
		r := []rune(lbl)
		if pos <= lastEnd || pos+len(r) > axisLen {
			continue
		}
		copy(buf[pos:], r)
		lastEnd = pos + len(r)
	}
	return strings.TrimRight(string(buf), " ")
}

// chartCeiling rounds peak up to the next multiple of 10.
func chartCeiling(peak float64) float64 {
	if peak <= 0 {
		return 10
	}
	return math.Ceil(peak/10) * 10
}
