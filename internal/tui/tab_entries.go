package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/model"
	"github.com/theirongolddev/fuelsync/internal/tui/components"
	"github.com/theirongolddev/fuelsync/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// entriesState holds the entries tab selection.
type entriesState struct {
	cursor int
	offset int // first visible row
}

func (s *entriesState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.offset > s.cursor {
		s.offset = s.cursor
	}
}

func (s *entriesState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

// scroll keeps the cursor inside a window of visible rows.
func (s *entriesState) scroll(visible int) {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+visible {
		s.offset = s.cursor - visible + 1
	}
}

// selected returns the entry under the cursor.
func (a App) selected() (model.FuelEntry, bool) {
	if a.data == nil || a.entries.cursor >= len(a.data.Entries) {
		return model.FuelEntry{}, false
	}
	return a.data.Entries[a.entries.cursor], true
}

// updateEntriesKeys handles keys owned by the entries tab. ok is false
// when the key should fall through to the global bindings.
func (a App) updateEntriesKeys(key string) (tea.Model, tea.Cmd, bool) {
	n := a.entryCount()
	switch key {
	case "j", "down":
		a.entries.move(1, n)
	case "k", "up":
		a.entries.move(-1, n)
	case "g", "home":
		a.entries.cursor = 0
		a.entries.offset = 0
	case "G", "end":
		a.entries.move(n, n)
	case "pgdown":
		a.entries.move(10, n)
	case "pgup":
		a.entries.move(-10, n)
	case "e", "enter":
		e, ok := a.selected()
		if !ok {
			return a, nil, true
		}
		m, cmd := a.openEdit(e)
		return m, cmd, true
	case "d", "x", "delete":
		e, ok := a.selected()
		if !ok {
			return a, nil, true
		}
		m, cmd := a.openDelete(e)
		return m, cmd, true
	default:
		return a, nil, false
	}
	a.entries.scroll(a.entryRows())
	return a, nil, true
}

// entryRows is the number of table rows that fit on screen.
func (a App) entryRows() int {
	return visibleRows(a.height - chromeHeight)
}

func visibleRows(contentH int) int {
	v := contentH - 5 // card border, title, header, footer
	if v < 3 {
		v = 3
	}
	return v
}

type entryColumn struct {
	title   string
	width   int
	left    bool
	compact bool // shown on narrow terminals
}

// entryColumns are the entries table columns. Widths are minimums; the
// date column absorbs the rest.
var entryColumns = []entryColumn{
	{"#", 4, false, false},
	{"Date", 13, true, true},
	{"Day", 4, true, false},
	{"Odometer", 10, false, true},
	{"Fuel", 9, false, true},
	{"Price", 12, false, false},
	{"Cost", 10, false, true},
	{"Trip", 10, false, false},
	{"Mileage", 11, false, true},
}

const dateColumn = 1

func (a App) entryCells(e model.FuelEntry) []string {
	u := a.units
	trip := "-"
	if e.TripDistance > 0 {
		trip = u.Distance(e.TripDistance)
	}
	day := "-"
	if !e.Date.IsZero() {
		day = cli.FormatDayOfWeek(int(e.Date.Weekday()))
	}
	return []string{
		fmt.Sprintf("%d", e.ID),
		cli.FormatDate(e.Date),
		day,
		cli.FormatOdometer(e.OdometerReading),
		u.Volume(e.FuelQuantity),
		u.Price(e.PricePerLiter),
		u.Cost(e.TotalCost),
		trip,
		u.Mileage(e.Mileage),
	}
}

func (a App) renderEntriesTab(cw, h int) string {
	t := theme.Active
	entries := a.data.Entries

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if len(entries) == 0 {
		msg := "No fill-ups in this time range. Press t to widen it."
		if a.data.TotalEntries == 0 {
			msg = "No fill-ups yet. Press a to log one."
		}
		return components.ContentCard("Fill-ups", mutedStyle.Render(msg), cw)
	}

	compact := a.isCompactLayout()
	innerW := components.CardInnerWidth(cw)
	widths := make([]int, len(entryColumns))
	used := 0
	for i, c := range entryColumns {
		if compact && !c.compact {
			continue
		}
		widths[i] = c.width
		used += c.width + 1
	}
	if extra := innerW - used; extra > 0 {
		widths[dateColumn] += extra
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	naStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	formatRow := func(cells []string) string {
		parts := make([]string, 0, len(cells))
		for i, c := range cells {
			if widths[i] == 0 {
				continue
			}
			c = truncStr(c, widths[i])
			if entryColumns[i].left {
				parts = append(parts, fmt.Sprintf("%-*s", widths[i], c))
			} else {
				parts = append(parts, fmt.Sprintf("%*s", widths[i], c))
			}
		}
		return strings.Join(parts, " ")
	}

	titles := make([]string, len(entryColumns))
	for i, c := range entryColumns {
		titles[i] = c.title
	}

	visible := visibleRows(h)
	es := a.entries
	es.scroll(visible)
	end := es.offset + visible
	if end > len(entries) {
		end = len(entries)
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(formatRow(titles)))
	for i := es.offset; i < end; i++ {
		e := entries[i]
		line := formatRow(a.entryCells(e))
		body.WriteString("\n")
		switch {
		case i == es.cursor:
			body.WriteString(selectedStyle.Render(line))
		case !e.HasMileage():
			body.WriteString(naStyle.Render(line))
		default:
			body.WriteString(rowStyle.Render(line))
		}
	}
	body.WriteString("\n")
	body.WriteString(mutedStyle.Render(fmt.Sprintf("%d-%d of %d  ·  j/k move  e edit  d delete",
		es.offset+1, end, len(entries))))

	return components.ContentCard("Fill-ups", body.String(), cw)
}
