package tui

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/fuelsync/internal/config"
	"github.com/theirongolddev/fuelsync/internal/model"
)

func TestEntryFormValuesInput(t *testing.T) {
	v := EntryFormValues{Date: "2025-03-01", Odometer: " 13800 ", Fuel: "4.5", Price: "103"}
	in, err := v.Input()
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !in.Date.Equal(want) || in.OdometerReading != 13800 || in.FuelQuantity != 4.5 || in.PricePerLiter != 103 {
		t.Fatalf("Input = %+v", in)
	}
}

func TestEntryFormValuesInputReportsEveryField(t *testing.T) {
	v := EntryFormValues{Date: "", Odometer: "abc", Fuel: "0", Price: "-2"}
	_, err := v.Input()
	if err == nil {
		t.Fatal("Input accepted empty form")
	}
	msg := err.Error()
	for _, want := range []string{"date", "odometer", "fuel", "price"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %s", msg, want)
		}
	}
}

func TestParsePositiveRejectsNonFinite(t *testing.T) {
	for _, s := range []string{"NaN", "Inf", "-Inf", "1e400"} {
		if _, err := parsePositive(s, "fuelQuantity"); err == nil {
			t.Errorf("parsePositive(%q) accepted", s)
		}
	}
	if v, err := parsePositive("2.5", "fuelQuantity"); err != nil || v != 2.5 {
		t.Fatalf("parsePositive(2.5) = %v, %v", v, err)
	}
}

func TestEntryFormValuesTotalCost(t *testing.T) {
	v := EntryFormValues{Fuel: "4.6", Price: "102.5"}
	if got := v.TotalCost(); math.Abs(got-471.5) > 1e-9 {
		t.Fatalf("TotalCost = %v, want 471.5", got)
	}
	v.Price = ""
	if got := v.TotalCost(); got != 0 {
		t.Fatalf("TotalCost with missing price = %v, want 0", got)
	}
}

func TestNewEntryFormValuesPrefill(t *testing.T) {
	e := model.FuelEntry{
		ID:              3,
		Date:            time.Date(2025, 1, 18, 0, 0, 0, 0, time.UTC),
		OdometerReading: 12580,
		FuelQuantity:    4.8,
		PricePerLiter:   102.5,
	}
	v := NewEntryFormValues(&e)
	if v.Date != "2025-01-18" || v.Odometer != "12580" || v.Fuel != "4.8" || v.Price != "102.5" {
		t.Fatalf("prefill = %+v", v)
	}

	blank := NewEntryFormValues(nil)
	if blank.Date != time.Now().Format(formDateLayout) {
		t.Fatalf("new form date = %q, want today", blank.Date)
	}
}

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := NewSetupValues(cfg)
	v.VehicleName = "  Classic 350 "
	v.GaugeMax = "40"
	v.Currency = "$"
	v.Days = 90
	v.Theme = "tokyo-night"
	v.Apply(&cfg)

	if cfg.Vehicle.Name != "Classic 350" || cfg.Vehicle.GaugeMaxMileage != 40 {
		t.Fatalf("vehicle = %+v", cfg.Vehicle)
	}
	if cfg.Units.Currency != "$" || cfg.General.DefaultDays != 90 || cfg.Appearance.Theme != "tokyo-night" {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestSetupValuesApplyKeepsDefaultsForBlanks(t *testing.T) {
	cfg := config.DefaultConfig()
	v := NewSetupValues(cfg)
	v.VehicleName = " "
	v.GaugeMax = "zero"
	v.Apply(&cfg)

	def := config.DefaultConfig()
	if cfg.Vehicle != def.Vehicle {
		t.Fatalf("vehicle = %+v, want %+v", cfg.Vehicle, def.Vehicle)
	}
}
