package evaluator

import (
	"fmt"
	"strings"
)

// AngleMode selects how the trigonometric functions interpret angles.
type AngleMode int

const (
	Radians AngleMode = iota
	Degrees
)

func (m AngleMode) String() string {
	if m == Degrees {
		return "deg"
	}
	return "rad"
}

// ParseAngleMode accepts "rad", "radians", "deg" and "degrees" in any case.
// The empty string is radians.
func ParseAngleMode(s string) (AngleMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rad", "radian", "radians":
		return Radians, nil
	case "deg", "degree", "degrees":
		return Degrees, nil
	}
	return Radians, fmt.Errorf("unknown angle mode %q", s)
}

func (m AngleMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *AngleMode) UnmarshalText(text []byte) error {
	mode, err := ParseAngleMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
