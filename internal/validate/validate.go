// Package validate contains the numeric and form checks run before a
// submission reaches the API.
package validate

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/fitlife/internal/display"
	"github.com/verte-zerg/fitlife/internal/model"
)

// IsValidWeight reports whether kg lies within the accepted weight range.
func IsValidWeight(kg float64) bool {
	return kg >= model.MinWeightKg && kg <= model.MaxWeightKg
}

// IsValidHeight reports whether m lies within the accepted height range.
func IsValidHeight(m float64) bool {
	return m >= model.MinHeightM && m <= model.MaxHeightM
}

// CalculateBMI returns weight / height². A zero height is not guarded.
func CalculateBMI(weightKg, heightM float64) float64 {
	return weightKg / (heightM * heightM)
}

// Field is a required form value.
type Field struct {
	Name  string
	Value string
}

// MarkFunc receives per-field validity for visual feedback.
type MarkFunc func(name string, valid bool)

// ValidateRequiredFields reports whether every field has a non-empty value.
// Whitespace counts as a value. Every field is marked, not just the first
// failing one.
func ValidateRequiredFields(fields []Field, mark MarkFunc) bool {
	ok := true
	for _, f := range fields {
		filled := f.Value != ""
		if !filled {
			ok = false
		}
		if mark != nil {
			mark(f.Name, filled)
		}
	}
	return ok
}

// RequiredFields reads the named fields from r. Missing fields count as
// empty.
func RequiredFields(r display.Reader, names ...string) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		v, _ := r.ReadField(name)
		fields = append(fields, Field{Name: name, Value: v})
	}
	return fields
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NumberInput is a numeric field with declared bounds.
type NumberInput struct {
	Min float64
	Max float64
}

// OnChange returns raw clamped into the declared bounds. Values that do not
// parse as numbers are returned unchanged so partial input keeps working.
func (n NumberInput) OnChange(raw string) string {
	v, ok := ParseNumber(raw)
	if !ok {
		return raw
	}
	if c := Clamp(v, n.Min, n.Max); c != v {
		return strconv.FormatFloat(c, 'f', -1, 64)
	}
	return raw
}

// ParseNumber parses a decimal typed with either '.' or ',' as separator.
func ParseNumber(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.Replace(trimmed, ",", ".", 1), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// WeightInput returns the bounded input used for weight fields.
func WeightInput() NumberInput {
	return NumberInput{Min: model.MinWeightKg, Max: model.MaxWeightKg}
}

// HeightInput returns the bounded input used for height fields.
func HeightInput() NumberInput {
	return NumberInput{Min: model.MinHeightM, Max: model.MaxHeightM}
}
