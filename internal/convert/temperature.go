package convert

import (
	"fmt"
	"strings"
)

const TemperatureCategory = "temperature"

// Scale is a temperature scale. Conversions pivot through Celsius.
type Scale int

const (
	Celsius Scale = iota
	Fahrenheit
	Kelvin
)

var temperatureUnits = []Unit{
	{Name: "Celsius", Symbol: "°C"},
	{Name: "Fahrenheit", Symbol: "°F"},
	{Name: "Kelvin", Symbol: "K"},
}

func (s Scale) String() string {
	return temperatureUnits[s].Name
}

// ParseScale accepts a scale by name, symbol ("C", "°C") or label
// ("Celsius (°C)"), ignoring case.
func ParseScale(name string) (Scale, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.TrimPrefix(n, "°")
	switch {
	case n == "c" || strings.HasPrefix(n, "celsius"):
		return Celsius, nil
	case n == "f" || strings.HasPrefix(n, "fahrenheit"):
		return Fahrenheit, nil
	case n == "k" || strings.HasPrefix(n, "kelvin"):
		return Kelvin, nil
	}
	return Celsius, fmt.Errorf("%w %q in %s", ErrUnknownUnit, name, TemperatureCategory)
}

func toCelsius(v float64, from Scale) float64 {
	switch from {
	case Fahrenheit:
		return (v - 32) * 5.0 / 9.0
	case Kelvin:
		return v - 273.15
	}
	return v
}

func fromCelsius(c float64, to Scale) float64 {
	switch to {
	case Fahrenheit:
		return c*9.0/5.0 + 32
	case Kelvin:
		return c + 273.15
	}
	return c
}

// ConvertTemperature converts v from one scale to another.
func ConvertTemperature(v float64, from, to Scale) float64 {
	return fromCelsius(toCelsius(v, from), to)
}
