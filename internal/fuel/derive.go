package fuel

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/fuelsync/internal/model"
)

// DeriveMileage computes TripDistance and Mileage for entries that are
// already in ascending date order. The first entry gets zero for both.
// Every later entry's trip is its reading minus the previous reading, and
// its mileage is that trip divided by the previous entry's fuel quantity
// (the tank it was driven on). Non-finite or non-positive mileage becomes 0.
// The input slice is not modified.
func DeriveMileage(entries []model.FuelEntry) []model.FuelEntry {
	out := make([]model.FuelEntry, len(entries))
	copy(out, entries)

	for i := range out {
		if i == 0 {
			out[i].TripDistance = 0
			out[i].Mileage = 0
			continue
		}
		prev := out[i-1]
		trip := out[i].OdometerReading - prev.OdometerReading
		out[i].TripDistance = trip
		out[i].Mileage = mileage(trip, prev.FuelQuantity)
	}
	return out
}

func mileage(trip, fuel float64) float64 {
	if fuel == 0 {
		return 0
	}
	m := trip / fuel
	if math.IsNaN(m) || math.IsInf(m, 0) || m <= 0 {
		return 0
	}
	return m
}

// SortAscending returns a copy of entries ordered oldest first.
// Entries sharing a date keep their relative order.
func SortAscending(entries []model.FuelEntry) []model.FuelEntry {
	out := make([]model.FuelEntry, len(entries))
	copy(out, entries)
	sortAscending(out)
	return out
}

func sortAscending(entries []model.FuelEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}

func sortDescending(entries []model.FuelEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
}

// NormalizeDate truncates t to midnight UTC of its calendar day.
func NormalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TotalCost is the amount paid for a fill-up.
func TotalCost(fuelQuantity, pricePerLiter float64) float64 {
	return fuelQuantity * pricePerLiter
}
