package fuel

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an operation references an id that does not exist.
var ErrNotFound = errors.New("fuel entry not found")

// InvalidEntryError is a validation failure on one input field.
// Field uses the persisted JSON name (odometerReading, fuelQuantity, ...).
type InvalidEntryError struct {
	Field  string
	Reason string
}

func (e *InvalidEntryError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ValidationErrors collects every failing field of one input.
type ValidationErrors []*InvalidEntryError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, e := range v {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual field errors to errors.As.
func (v ValidationErrors) Unwrap() []error {
	errs := make([]error, len(v))
	for i, e := range v {
		errs[i] = e
	}
	return errs
}

// Reason returns the failure message for field, or "" if the field passed.
func (v ValidationErrors) Reason(field string) string {
	for _, e := range v {
		if e.Field == field {
			return e.Reason
		}
	}
	return ""
}

// PersistenceError reports a storage failure. The in-memory change it
// accompanies has already been applied and is not rolled back.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persisting entries (%s): %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistence reports whether err carries a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
