package cli

import (
	"testing"
	"time"
)

func TestUnits(t *testing.T) {
	u := DefaultUnits()
	cases := []struct {
		name, got, want string
	}{
		{"cost small", u.Cost(533.4), "₹533.40"},
		{"cost grouped", u.Cost(12345.6), "₹12,346"},
		{"price", u.Price(102.5), "₹102.50/L"},
		{"volume", u.Volume(4.6), "4.60 L"},
		{"distance", u.Distance(1248.5), "1,248.5 km"},
		{"distance whole", u.Distance(300), "300 km"},
		{"mileage", u.Mileage(52.61), "52.6 km/L"},
		{"mileage none", u.Mileage(0), "N/A"},
		{"per distance", u.PerDistance(2.049), "₹2.05/km"},
	}
	for _, c := range cases {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[int64]string{
		0:       "0",
		999:     "999",
		1000:    "1,000",
		1234567: "1,234,567",
		-13748:  "-13,748",
	}
	for in, want := range cases {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
	if got := FormatOdometer(13747.6); got != "13,748" {
		t.Errorf("FormatOdometer = %q, want 13,748", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(52.5, 50); got != "+2.5" {
		t.Errorf("FormatDelta up = %q", got)
	}
	if got := FormatDelta(48, 50); got != "-2.0" {
		t.Errorf("FormatDelta down = %q", got)
	}
}

func TestFormatDates(t *testing.T) {
	d := time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "Jan 08, 2024" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate(time.Time{}); got != "unknown" {
		t.Errorf("FormatDate(zero) = %q", got)
	}
	if got := FormatRelative(d, d.AddDate(0, 0, 3)); got != "3 days ago" {
		t.Errorf("FormatRelative = %q, want 3 days ago", got)
	}
	if got := FormatDayOfWeek(int(d.Weekday())); got != "Mon" {
		t.Errorf("FormatDayOfWeek = %q, want Mon", got)
	}
}
