package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/theirongolddev/fuelsync/internal/model"
)

// WeeklyTrend buckets entries with positive mileage by Monday-start week and
// averages each bucket to one decimal. Points are returned oldest first.
// Undated entries are skipped.
func WeeklyTrend(entries []model.FuelEntry) []model.TrendPoint {
	type bucket struct {
		sum float64
		n   int
	}
	buckets := make(map[time.Time]*bucket)

	for _, e := range entries {
		if e.Mileage <= 0 || e.Date.IsZero() {
			continue
		}
		ws := WeekStart(e.Date)
		b, ok := buckets[ws]
		if !ok {
			b = &bucket{}
			buckets[ws] = b
		}
		b.sum += e.Mileage
		b.n++
	}

	points := make([]model.TrendPoint, 0, len(buckets))
	for ws, b := range buckets {
		points = append(points, model.TrendPoint{
			WeekStart: ws,
			Label:     ws.Format("Jan 02"),
			Value:     round1(b.sum / float64(b.n)),
			Entries:   b.n,
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].WeekStart.Before(points[j].WeekStart)
	})
	return points
}

// WeekStart returns midnight UTC of the Monday on or before t's calendar day.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// TrendValues extracts the bucket averages, for sparklines and charts.
func TrendValues(points []model.TrendPoint) []float64 {
	vals := make([]float64, len(points))
	for i, p := range points {
		vals[i] = p.Value
	}
	return vals
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
