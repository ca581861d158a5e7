// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// Units holds the display units for money, distance and volume.
type Units struct {
	CurrencySymbol string
	DistanceUnit   string
	VolumeUnit     string
}

// DefaultUnits returns rupees, kilometres and litres.
func DefaultUnits() Units {
	return Units{CurrencySymbol: "₹", DistanceUnit: "km", VolumeUnit: "L"}
}

// Cost formats a money amount. Amounts of 1000 and more drop the paise.
// e.g., 533.4 -> "₹533.40", 12345.6 -> "₹12,346"
func (u Units) Cost(v float64) string {
	if math.Abs(v) >= 1000 {
		return u.CurrencySymbol + FormatNumber(int64(math.Round(v)))
	}
	return fmt.Sprintf("%s%.2f", u.CurrencySymbol, v)
}

// Price formats a unit price, e.g. "₹102.50/L".
func (u Units) Price(v float64) string {
	return fmt.Sprintf("%s%.2f/%s", u.CurrencySymbol, v, u.VolumeUnit)
}

// Volume formats a fuel quantity, e.g. "4.60 L".
func (u Units) Volume(v float64) string {
	return fmt.Sprintf("%.2f %s", v, u.VolumeUnit)
}

// Distance formats a distance with grouping, e.g. "1,248.5 km".
func (u Units) Distance(v float64) string {
	return humanize.CommafWithDigits(v, 1) + " " + u.DistanceUnit
}

// Mileage formats distance per volume, or "N/A" when there is none.
func (u Units) Mileage(v float64) string {
	if v <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f %s/%s", v, u.DistanceUnit, u.VolumeUnit)
}

// PerDistance formats a cost per unit distance, e.g. "₹2.05/km".
func (u Units) PerDistance(v float64) string {
	if v <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("%s%.2f/%s", u.CurrencySymbol, v, u.DistanceUnit)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatOdometer formats an odometer reading as a grouped whole number.
func FormatOdometer(v float64) string {
	return FormatNumber(int64(math.Round(v)))
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats a mileage change with its sign, e.g. "+2.3".
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return fmt.Sprintf("+%.1f", delta)
	}
	return fmt.Sprintf("%.1f", delta)
}

// FormatDate formats an entry date, or "unknown" for an undated entry.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("Jan 02, 2006")
}

// FormatRelative describes t relative to now, e.g. "3 days ago".
func FormatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}
