// Package pipeline computes dashboard statistics from fuel entries.
// Everything here is a pure function of its input.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/fuelsync/internal/model"
)

// Summarize computes the dashboard aggregates. Entries may arrive in any
// order; distance and last mileage are taken in date order.
func Summarize(entries []model.FuelEntry) model.Aggregates {
	var agg model.Aggregates
	if len(entries) == 0 {
		return agg
	}

	asc := sortAscending(entries)
	agg.TotalEntries = len(asc)

	var mileageSum float64
	var mileageCount int
	for _, e := range asc {
		agg.TotalFuelCost += e.TotalCost
		agg.TotalFuelUsed += e.FuelQuantity

		if e.Mileage > 0 {
			mileageSum += e.Mileage
			mileageCount++
			agg.LastMileage = e.Mileage
		}

		if !e.Date.IsZero() {
			if agg.FirstDate.IsZero() {
				agg.FirstDate = e.Date
			}
			agg.LastDate = e.Date
		}
	}

	agg.TotalDistance = asc[len(asc)-1].OdometerReading - asc[0].OdometerReading

	if mileageCount > 0 {
		agg.AverageMileage = mileageSum / float64(mileageCount)
	}
	if agg.TotalDistance > 0 {
		agg.CostPerDistance = agg.TotalFuelCost / agg.TotalDistance
	}
	if agg.TotalFuelUsed > 0 {
		agg.AveragePrice = agg.TotalFuelCost / agg.TotalFuelUsed
	}
	agg.LatestAboveAverage = agg.LastMileage > 0 && agg.LastMileage > agg.AverageMileage

	return agg
}

// GaugeLevel maps an average mileage onto a 0..1 gauge that is full at full.
func GaugeLevel(avg, full float64) float64 {
	if full <= 0 || avg <= 0 {
		return 0
	}
	if avg >= full {
		return 1
	}
	return avg / full
}

// FilterByTime returns entries whose date falls within [since, until).
// A zero bound is open. Undated entries are dropped once any bound is set.
func FilterByTime(entries []model.FuelEntry, since, until time.Time) []model.FuelEntry {
	if since.IsZero() && until.IsZero() {
		return entries
	}

	var result []model.FuelEntry
	for _, e := range entries {
		if e.Date.IsZero() {
			continue
		}
		if !since.IsZero() && e.Date.Before(since) {
			continue
		}
		if !until.IsZero() && !e.Date.Before(until) {
			continue
		}
		result = append(result, e)
	}
	return result
}

// Since returns the start of a window covering the last days days,
// or the zero time when days <= 0.
func Since(now time.Time, days int) time.Time {
	if days <= 0 {
		return time.Time{}
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -days+1)
}

func sortAscending(entries []model.FuelEntry) []model.FuelEntry {
	out := make([]model.FuelEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
