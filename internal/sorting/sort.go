package sorting

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Measurement field names, used in errors and API payloads
const (
	FieldWidth  = "width"
	FieldHeight = "height"
	FieldLength = "length"
	FieldMass   = "mass"
)

// Sort returns the dispatch stack for a package with the given dimensions
// (centimeters) and mass (kilograms).
//
// All four values must be strictly positive finite numbers, otherwise an
// error wrapping ErrInvalidValue is returned and the stack is empty.
func Sort(width, height, length, mass float64) (Stack, error) {
	p := Package{Width: width, Height: height, Length: length, Mass: mass}
	if err := p.Validate(); err != nil {
		return "", err
	}
	return p.Stack(), nil
}

// SortValues is Sort for loosely typed input such as decoded JSON or YAML,
// query strings and command line arguments. Every value is converted before
// any is range checked, so a non-numeric value always yields ErrInvalidType.
func SortValues(width, height, length, mass any) (Stack, error) {
	p, err := ParsePackage(width, height, length, mass)
	if err != nil {
		return "", err
	}
	return p.Stack(), nil
}

// ParsePackage converts and validates four loosely typed measurements
func ParsePackage(width, height, length, mass any) (Package, error) {
	var p Package
	fields := []struct {
		name  string
		value any
		dst   *float64
	}{
		{FieldWidth, width, &p.Width},
		{FieldHeight, height, &p.Height},
		{FieldLength, length, &p.Length},
		{FieldMass, mass, &p.Mass},
	}

	for _, f := range fields {
		v, err := ParseMeasurement(f.name, f.value)
		if err != nil {
			return Package{}, err
		}
		*f.dst = v
	}

	if err := p.Validate(); err != nil {
		return Package{}, err
	}
	return p, nil
}

// ParseMeasurement converts v to a float64 without range checking it.
// Integer and float kinds, json.Number and numeric strings are accepted;
// nil, booleans and anything else fail with ErrInvalidType.
func ParseMeasurement(field string, v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return parseFloat(field, n.String(), v)
	case string:
		return parseFloat(field, strings.TrimSpace(n), v)
	default:
		return 0, invalidType(field, v)
	}
}

// parseFloat keeps out-of-range literals such as "1e400" as numbers so the
// range check, not the type check, rejects them.
func parseFloat(field, s string, orig any) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return f, nil
		}
		return 0, invalidType(field, orig)
	}
	return f, nil
}

// Validate checks that every measurement is a strictly positive finite number
func (p Package) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{FieldWidth, p.Width},
		{FieldHeight, p.Height},
		{FieldLength, p.Length},
		{FieldMass, p.Mass},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) || f.value <= 0 {
			return invalidValue(f.name, f.value)
		}
	}
	return nil
}
