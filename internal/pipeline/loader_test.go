package pipeline

import (
	"testing"
	"time"

	"github.com/theirongolddev/fuelsync/internal/model"
)

type staticSource []model.FuelEntry

func (s staticSource) Chronological() []model.FuelEntry { return s }

func TestLoad(t *testing.T) {
	src := staticSource{
		{ID: 9, OdometerReading: 900},
		entry(t, 1, "2024-01-01", 1000, 5, 100, 0),
		entry(t, 2, "2024-01-08", 1300, 4, 100, 60),
		entry(t, 3, "2024-01-15", 1500, 5, 100, 50),
	}

	all := Load(src, Window{})
	if all.TotalEntries != 4 || all.Undated != 1 {
		t.Fatalf("TotalEntries=%d Undated=%d", all.TotalEntries, all.Undated)
	}
	if !all.HasLast || all.Last.ID != 3 {
		t.Fatalf("Last = %+v", all.Last)
	}
	if all.Entries[0].ID != 3 {
		t.Fatalf("Entries not newest first: %+v", all.Entries)
	}
	if len(all.Trend) != 2 {
		t.Fatalf("Trend = %+v, want 2 weeks", all.Trend)
	}

	recent := Load(src, WindowForDays(time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC), 7))
	if len(recent.Entries) != 1 || recent.Entries[0].ID != 3 {
		t.Fatalf("7-day window = %+v", recent.Entries)
	}
	if recent.Aggregates.TotalEntries != 1 || recent.TotalEntries != 4 {
		t.Fatalf("windowed aggregates = %+v", recent.Aggregates)
	}
}
