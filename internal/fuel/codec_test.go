package fuel

import (
	"strings"
	"testing"

	"github.com/theirongolddev/fuelsync/internal/model"
)

func TestEncode_DateFormat(t *testing.T) {
	data, err := Encode([]model.FuelEntry{
		{ID: 1, Date: day(t, "2024-01-08"), OdometerReading: 1300, FuelQuantity: 4, PricePerLiter: 100, TotalCost: 400},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"date":"2024-01-08T00:00:00.000Z"`) {
		t.Fatalf("encoded date not ISO-8601: %s", s)
	}
	if !strings.Contains(s, `"Id":1`) {
		t.Fatalf("encoded id key missing: %s", s)
	}
}

func TestDecode_StoredDocument(t *testing.T) {
	doc := `[
		{"Id":1,"date":"2024-01-01T00:00:00.000Z","odometerReading":1000,"fuelQuantity":5,"pricePerLiter":100,"totalCost":500,"tripDistance":0,"mileage":0},
		{"Id":2,"date":"2024-01-08","odometerReading":1300,"fuelQuantity":4,"pricePerLiter":100,"totalCost":400,"tripDistance":300,"mileage":60}
	]`
	res, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(res.Entries))
	}
	if len(res.BadDates) != 0 {
		t.Fatalf("BadDates = %v, want none", res.BadDates)
	}
	e := res.Entries[1]
	if !e.Date.Equal(day(t, "2024-01-08")) || e.Mileage != 60 || e.TotalCost != 400 {
		t.Fatalf("entry 2 = %+v", e)
	}
}

func TestDecode_BadDateKept(t *testing.T) {
	doc := `[{"Id":7,"date":"next tuesday","odometerReading":1000,"fuelQuantity":5,"pricePerLiter":100}]`
	res, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(res.Entries) != 1 || !res.Entries[0].Date.IsZero() {
		t.Fatalf("entries = %+v, want one entry with zero date", res.Entries)
	}
	if len(res.BadDates) != 1 || res.BadDates[0] != 7 {
		t.Fatalf("BadDates = %v, want [7]", res.BadDates)
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, doc := range []string{"{not json", `{"Id":1}`, ""} {
		if _, err := Decode([]byte(doc)); err == nil {
			t.Errorf("Decode(%q) = nil error, want failure", doc)
		}
	}
}

func TestEncodeDecode_PreservesOrder(t *testing.T) {
	seed := Seed()
	data, err := Encode(seed)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	res, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i := range seed {
		if res.Entries[i].ID != seed[i].ID || !res.Entries[i].Date.Equal(seed[i].Date) {
			t.Fatalf("entry %d = %+v, want %+v", i, res.Entries[i], seed[i])
		}
	}
}
