package tui

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/fuelsync/internal/cli"
	"github.com/theirongolddev/fuelsync/internal/fuel"
	"github.com/theirongolddev/fuelsync/internal/model"

	"github.com/charmbracelet/huh"
)

const formDateLayout = "2006-01-02"

// EntryFormValues holds the raw text of the add/edit form.
type EntryFormValues struct {
	Date     string
	Odometer string
	Fuel     string
	Price    string
}

// NewEntryFormValues returns values prefilled from e, or today's date when
// e is nil.
func NewEntryFormValues(e *model.FuelEntry) EntryFormValues {
	if e == nil {
		return EntryFormValues{Date: time.Now().Format(formDateLayout)}
	}
	return EntryFormValues{
		Date:     e.Date.Format(formDateLayout),
		Odometer: strconv.FormatFloat(e.OdometerReading, 'f', -1, 64),
		Fuel:     strconv.FormatFloat(e.FuelQuantity, 'f', -1, 64),
		Price:    strconv.FormatFloat(e.PricePerLiter, 'f', -1, 64),
	}
}

// Input parses the form values.
func (v EntryFormValues) Input() (model.EntryInput, error) {
	var in model.EntryInput
	var errs []error

	if d, err := parseFormDate(v.Date); err != nil {
		errs = append(errs, err)
	} else {
		in.Date = d
	}
	var err error
	if in.OdometerReading, err = parsePositive(v.Odometer, fuel.FieldOdometerReading); err != nil {
		errs = append(errs, err)
	}
	if in.FuelQuantity, err = parsePositive(v.Fuel, fuel.FieldFuelQuantity); err != nil {
		errs = append(errs, err)
	}
	if in.PricePerLiter, err = parsePositive(v.Price, fuel.FieldPricePerLiter); err != nil {
		errs = append(errs, err)
	}
	return in, errors.Join(errs...)
}

// TotalCost previews fuel x price, or 0 while either field is incomplete.
func (v EntryFormValues) TotalCost() float64 {
	f, err1 := strconv.ParseFloat(strings.TrimSpace(v.Fuel), 64)
	p, err2 := strconv.ParseFloat(strings.TrimSpace(v.Price), 64)
	if err1 != nil || err2 != nil || f <= 0 || p <= 0 {
		return 0
	}
	return fuel.TotalCost(f, p)
}

// NewEntryForm builds the add/edit form bound to vals. When last is set,
// its reading is shown as a hint and the new reading must exceed it.
func NewEntryForm(title string, vals *EntryFormValues, last *model.FuelEntry, u cli.Units) *huh.Form {
	odoHint := "Current odometer reading"
	if last != nil {
		odoHint = fmt.Sprintf("Last reading: %s %s on %s",
			cli.FormatOdometer(last.OdometerReading), u.DistanceUnit, cli.FormatDate(last.Date))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title+"  Date").
				Description("YYYY-MM-DD").
				Value(&vals.Date).
				Validate(func(s string) error {
					_, err := parseFormDate(s)
					return err
				}),
			huh.NewInput().
				Title("Odometer").
				Description(odoHint).
				Placeholder("e.g. 13748").
				Value(&vals.Odometer).
				Validate(func(s string) error {
					v, err := parsePositive(s, fuel.FieldOdometerReading)
					if err != nil {
						return err
					}
					if last != nil && v <= last.OdometerReading {
						return errors.New("odometer reading must be greater than last entry")
					}
					return nil
				}),
			huh.NewInput().
				Title("Fuel ("+u.VolumeUnit+")").
				Placeholder("e.g. 4.6").
				Value(&vals.Fuel).
				Validate(func(s string) error {
					_, err := parsePositive(s, fuel.FieldFuelQuantity)
					return err
				}),
			huh.NewInput().
				Title("Price per "+u.VolumeUnit).
				Placeholder("e.g. 102.50").
				Value(&vals.Price).
				Validate(func(s string) error {
					_, err := parsePositive(s, fuel.FieldPricePerLiter)
					return err
				}),
			huh.NewNote().
				Title("Total cost").
				DescriptionFunc(func() string {
					if c := vals.TotalCost(); c > 0 {
						return u.Cost(c)
					}
					return "-"
				}, vals),
		),
	).WithShowHelp(true)
}

// NewDeleteConfirm builds the delete confirmation bound to confirmed.
func NewDeleteConfirm(e model.FuelEntry, u cli.Units, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete fill-up #%d?", e.ID)).
				Description(fmt.Sprintf("%s  %s  %s",
					cli.FormatDate(e.Date), u.Volume(e.FuelQuantity), u.Cost(e.TotalCost))).
				Affirmative("Delete").
				Negative("Cancel").
				Value(confirmed),
		),
	)
}

func parseFormDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errors.New(fuel.FieldReason(fuel.FieldDate))
	}
	d, err := time.Parse(formDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must look like %s", formDateLayout)
	}
	return d, nil
}

func parsePositive(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errors.New(fuel.FieldReason(field))
	}
	return v, nil
}
