package model

import "time"

// Aggregates holds the dashboard roll-up over a set of entries.
type Aggregates struct {
	TotalEntries   int
	TotalFuelCost  float64
	TotalFuelUsed  float64
	TotalDistance  float64
	AverageMileage float64
	LastMileage    float64

	CostPerDistance    float64
	AveragePrice       float64
	LatestAboveAverage bool

	FirstDate time.Time
	LastDate  time.Time
}

// TrendPoint is one bucket of the weekly mileage series.
type TrendPoint struct {
	WeekStart time.Time
	Label     string
	Value     float64 // average mileage, one decimal
	Entries   int
}
