package fuel

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/theirongolddev/fuelsync/internal/model"
)

// dateLayout matches the ISO-8601 form browsers emit for Date.toJSON.
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// acceptedDateLayouts are tried in order when decoding a stored date.
var acceptedDateLayouts = []string{
	time.RFC3339Nano,
	dateLayout,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// record is the persisted shape of one entry.
type record struct {
	ID              int     `json:"Id"`
	Date            string  `json:"date"`
	OdometerReading float64 `json:"odometerReading"`
	FuelQuantity    float64 `json:"fuelQuantity"`
	PricePerLiter   float64 `json:"pricePerLiter"`
	TotalCost       float64 `json:"totalCost"`
	TripDistance    float64 `json:"tripDistance"`
	Mileage         float64 `json:"mileage"`
}

// Encode serializes entries as a JSON array with ISO-8601 dates.
func Encode(entries []model.FuelEntry) ([]byte, error) {
	recs := make([]record, len(entries))
	for i, e := range entries {
		recs[i] = record{
			ID:              e.ID,
			OdometerReading: e.OdometerReading,
			FuelQuantity:    e.FuelQuantity,
			PricePerLiter:   e.PricePerLiter,
			TotalCost:       e.TotalCost,
			TripDistance:    e.TripDistance,
			Mileage:         e.Mileage,
		}
		if !e.Date.IsZero() {
			recs[i].Date = e.Date.UTC().Format(dateLayout)
		}
	}
	return json.Marshal(recs)
}

// DecodeResult is the outcome of Decode. BadDates lists the ids whose
// stored date could not be parsed; those entries carry a zero Date.
type DecodeResult struct {
	Entries  []model.FuelEntry
	BadDates []int
}

// Decode parses a stored JSON array. A malformed document is an error.
// A record with an unparsable date is kept with a zero Date so the rest
// of the data stays usable.
func Decode(data []byte) (DecodeResult, error) {
	var recs []record
	if err := json.Unmarshal(data, &recs); err != nil {
		return DecodeResult{}, fmt.Errorf("decoding entries: %w", err)
	}

	res := DecodeResult{Entries: make([]model.FuelEntry, 0, len(recs))}
	for _, r := range recs {
		date, ok := parseDate(r.Date)
		if !ok {
			res.BadDates = append(res.BadDates, r.ID)
		}
		res.Entries = append(res.Entries, model.FuelEntry{
			ID:              r.ID,
			Date:            date,
			OdometerReading: r.OdometerReading,
			FuelQuantity:    r.FuelQuantity,
			PricePerLiter:   r.PricePerLiter,
			TotalCost:       r.TotalCost,
			TripDistance:    r.TripDistance,
			Mileage:         r.Mileage,
		})
	}
	return res, nil
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
