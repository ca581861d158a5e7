// Package model defines domain types for fuelsync entries and statistics.
package model

import "time"

// FuelEntry is one fill-up. TotalCost, TripDistance and Mileage are derived.
type FuelEntry struct {
	ID              int
	Date            time.Time
	OdometerReading float64
	FuelQuantity    float64 // liters
	PricePerLiter   float64
	TotalCost       float64

	// Relative to the chronologically previous entry; 0 for the first one.
	TripDistance float64
	Mileage      float64
}

// HasMileage reports whether the entry carries a usable efficiency figure.
func (e FuelEntry) HasMileage() bool {
	return e.Mileage > 0
}

// EntryInput holds the raw fields a user supplies for a fill-up.
type EntryInput struct {
	Date            time.Time `json:"date" validate:"required"`
	OdometerReading float64   `json:"odometerReading" validate:"gt=0,finite"`
	FuelQuantity    float64   `json:"fuelQuantity" validate:"gt=0,finite"`
	PricePerLiter   float64   `json:"pricePerLiter" validate:"gt=0,finite"`
}

// Input returns the raw fields of an existing entry, for prefilled edits.
func (e FuelEntry) Input() EntryInput {
	return EntryInput{
		Date:            e.Date,
		OdometerReading: e.OdometerReading,
		FuelQuantity:    e.FuelQuantity,
		PricePerLiter:   e.PricePerLiter,
	}
}
