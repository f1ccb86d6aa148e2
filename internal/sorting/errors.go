package sorting

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrInvalidType is returned when a measurement cannot be interpreted as a number
	ErrInvalidType = errors.New("invalid type")
	// ErrInvalidValue is returned when a measurement is numeric but not a
	// strictly positive finite number
	ErrInvalidValue = errors.New("invalid value")
)

// MeasurementError describes which measurement failed validation and why.
// It unwraps to ErrInvalidType or ErrInvalidValue.
type MeasurementError struct {
	Field string
	Value any
	Kind  error
}

func (e *MeasurementError) Error() string {
	if e.Kind == ErrInvalidType {
		if e.Value == nil {
			return fmt.Sprintf("%v: %s must be numeric, got nothing", e.Kind, e.Field)
		}
		return fmt.Sprintf("%v: %s must be numeric, got %T %#v", e.Kind, e.Field, e.Value, e.Value)
	}
	return fmt.Sprintf("%v: %s must be a positive finite number, got %v", e.Kind, e.Field, e.Value)
}

func (e *MeasurementError) Unwrap() error {
	return e.Kind
}

func invalidType(field string, value any) error {
	return errors.WithHint(
		&MeasurementError{Field: field, Value: value, Kind: ErrInvalidType},
		"pass dimensions in centimeters and mass in kilograms as numbers",
	)
}

func invalidValue(field string, value float64) error {
	return errors.WithHintf(
		&MeasurementError{Field: field, Value: value, Kind: ErrInvalidValue},
		"%s must be a finite number greater than zero", field,
	)
}

// IsInvalidType reports whether err is (or wraps) ErrInvalidType
func IsInvalidType(err error) bool {
	return errors.Is(err, ErrInvalidType)
}

// IsInvalidValue reports whether err is (or wraps) ErrInvalidValue
func IsInvalidValue(err error) bool {
	return errors.Is(err, ErrInvalidValue)
}

// ErrorKind returns a short label for the error kind, suitable for metrics
// and API error codes: "invalid_type", "invalid_value" or "" when err is
// not a measurement error.
func ErrorKind(err error) string {
	switch {
	case IsInvalidType(err):
		return "invalid_type"
	case IsInvalidValue(err):
		return "invalid_value"
	default:
		return ""
	}
}

// FieldOf returns the name of the measurement that caused err, if any
func FieldOf(err error) string {
	var me *MeasurementError
	if errors.As(err, &me) {
		return me.Field
	}
	return ""
}
