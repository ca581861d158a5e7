package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/fuelsync/internal/model"
)

// Source supplies the current entry log.
type Source interface {
	Chronological() []model.FuelEntry
}

// Window bounds the entries considered. A zero Window means all history.
type Window struct {
	Since time.Time
	Until time.Time
}

// WindowForDays returns a window covering the last days days ending now.
func WindowForDays(now time.Time, days int) Window {
	return Window{Since: Since(now, days)}
}

// LoadResult holds everything a dashboard render needs.
type LoadResult struct {
	Entries    []model.FuelEntry // in window, newest first
	Aggregates model.Aggregates
	Trend      []model.TrendPoint
	Last       model.FuelEntry
	HasLast    bool

	TotalEntries int
	Undated      int
}

// Load reads the entry log from src and computes aggregates and the weekly
// trend over the entries inside w.
func Load(src Source, w Window) *LoadResult {
	all := src.Chronological()
	result := &LoadResult{TotalEntries: len(all)}

	for _, e := range all {
		if e.Date.IsZero() {
			result.Undated++
		}
	}
	if len(all) > 0 {
		result.Last = all[len(all)-1]
		result.HasLast = true
	}

	inWindow := FilterByTime(all, w.Since, w.Until)
	result.Aggregates = Summarize(inWindow)
	result.Trend = WeeklyTrend(inWindow)

	result.Entries = make([]model.FuelEntry, len(inWindow))
	copy(result.Entries, inWindow)
	sort.SliceStable(result.Entries, func(i, j int) bool {
		return result.Entries[i].Date.After(result.Entries[j].Date)
	})
	return result
}
