package fuel

import (
	"time"

	"github.com/theirongolddev/fuelsync/internal/model"
)

type seedRow struct {
	date     string
	odometer float64
	fuel     float64
	price    float64
}

var seedRows = []seedRow{
	{"2025-01-04", 12050, 5.2, 102.50},
	{"2025-01-11", 12298, 4.6, 102.50},
	{"2025-01-19", 12540, 4.9, 103.00},
	{"2025-01-26", 12781, 4.4, 103.00},
	{"2025-02-02", 13009, 5.0, 103.40},
	{"2025-02-09", 13262, 4.7, 103.40},
	{"2025-02-16", 13501, 4.8, 102.90},
	{"2025-02-23", 13748, 5.1, 102.90},
}

// Seed returns the sample dataset installed on first run, with derived
// fields already computed.
func Seed() []model.FuelEntry {
	entries := make([]model.FuelEntry, len(seedRows))
	for i, r := range seedRows {
		date, _ := time.Parse("2006-01-02", r.date)
		entries[i] = model.FuelEntry{
			ID:              i + 1,
			Date:            date,
			OdometerReading: r.odometer,
			FuelQuantity:    r.fuel,
			PricePerLiter:   r.price,
			TotalCost:       TotalCost(r.fuel, r.price),
		}
	}
	return DeriveMileage(entries)
}
