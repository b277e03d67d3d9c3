package evaluator

import (
	"math"
	"strconv"
)

// Result is a successful evaluation. Integral values display without a
// fractional part.
type Result struct {
	Value float64
}

// IsInteger reports whether the value has no fractional part.
func (r Result) IsInteger() bool {
	return !isNotFinite(r.Value) && r.Value == math.Trunc(r.Value)
}

// String formats the value the way the calculator displays it: "2" rather
// than "2.0", and the shortest text that parses back to the same float.
// Magnitudes below 1e-4 or from 1e16 up use exponent notation.
func (r Result) String() string {
	v := r.Value
	switch {
	case v == 0:
		return "0"
	case r.IsInteger():
		return strconv.FormatFloat(v, 'f', -1, 64)
	case isNotFinite(v):
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	if a := math.Abs(v); a < 1e-4 || a >= 1e16 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// MarshalJSON writes the display form as a JSON number.
func (r Result) MarshalJSON() ([]byte, error) {
	if isNotFinite(r.Value) {
		return []byte("null"), nil
	}
	return []byte(r.String()), nil
}

func (r *Result) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		r.Value = math.NaN()
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	r.Value = v
	return nil
}
