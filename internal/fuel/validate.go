package fuel

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/theirongolddev/fuelsync/internal/model"

	"github.com/go-playground/validator/v10"
)

// Input field names, as they appear in storage and in form errors.
const (
	FieldDate            = "date"
	FieldOdometerReading = "odometerReading"
	FieldFuelQuantity    = "fuelQuantity"
	FieldPricePerLiter   = "pricePerLiter"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// gt=0 lets +Inf through.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsInf(f, 0) && !math.IsNaN(f)
	})
	return v
}

var fieldReasons = map[string]string{
	FieldDate:            "please select a date",
	FieldOdometerReading: "please enter a valid odometer reading",
	FieldFuelQuantity:    "please enter a valid fuel quantity",
	FieldPricePerLiter:   "please enter a valid price per liter",
}

// FieldReason returns the user-facing message for an invalid field.
func FieldReason(field string) string {
	return fieldReasons[field]
}

// ValidateInput checks the field-level rules that need no other entries:
// a date is present, every quantity is positive and finite, and the total
// cost does not overflow.
func ValidateInput(in model.EntryInput) error {
	err := validate.Struct(in)
	if err == nil {
		if math.IsInf(TotalCost(in.FuelQuantity, in.PricePerLiter), 0) {
			return ValidationErrors{{
				Field:  FieldFuelQuantity,
				Reason: "fuel quantity times price is too large",
			}}
		}
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		reason, ok := fieldReasons[fe.Field()]
		if !ok {
			reason = fmt.Sprintf("failed %q check", fe.Tag())
		}
		out = append(out, &InvalidEntryError{Field: fe.Field(), Reason: reason})
	}
	return out
}

// validateAgainst runs ValidateInput and then checks that the odometer
// reading fits between its chronological neighbours once placed in entries.
// id identifies the entry being replaced (0 when creating).
func validateAgainst(entries []model.FuelEntry, id int, in model.EntryInput) error {
	if err := ValidateInput(in); err != nil {
		return err
	}

	candidate := model.FuelEntry{
		ID:              id,
		Date:            NormalizeDate(in.Date),
		OdometerReading: in.OdometerReading,
	}

	placed := make([]model.FuelEntry, 0, len(entries)+1)
	replaced := false
	for _, e := range entries {
		if id != 0 && e.ID == id {
			placed = append(placed, candidate)
			replaced = true
			continue
		}
		placed = append(placed, e)
	}
	if !replaced {
		candidate.ID = -1
		placed = append(placed, candidate)
	}
	sortAscending(placed)

	idx := 0
	for i := range placed {
		if placed[i].ID == candidate.ID {
			idx = i
			break
		}
	}

	if idx > 0 {
		prev := placed[idx-1]
		if in.OdometerReading <= prev.OdometerReading {
			return ValidationErrors{{
				Field: FieldOdometerReading,
				Reason: fmt.Sprintf("odometer reading must be greater than %.0f (entry on %s)",
					prev.OdometerReading, prev.Date.Format("2006-01-02")),
			}}
		}
	}
	if idx < len(placed)-1 {
		next := placed[idx+1]
		if in.OdometerReading >= next.OdometerReading {
			return ValidationErrors{{
				Field: FieldOdometerReading,
				Reason: fmt.Sprintf("odometer reading must be less than %.0f (entry on %s)",
					next.OdometerReading, next.Date.Format("2006-01-02")),
			}}
		}
	}
	return nil
}
