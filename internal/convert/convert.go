// Package convert holds the unit conversion tables and the temperature
// formulas. Everything here is a pure function of its inputs.
package convert

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrUnknownCategory = errors.New("unknown category")
	ErrOutOfRange      = errors.New("result out of range")
)

//go:embed units.yaml
var unitsYAML []byte

// Unit is one entry of a multiplicative table. Factor converts a value in
// this unit into the table's base unit.
type Unit struct {
	Name   string  `yaml:"name" json:"name"`
	Symbol string  `yaml:"symbol" json:"symbol"`
	Factor float64 `yaml:"factor" json:"factor,omitempty"`
}

// Label is the "Kilogram (kg)" form shown in unit pickers.
func (u Unit) Label() string {
	return fmt.Sprintf("%s (%s)", u.Name, u.Symbol)
}

func (u Unit) matches(name string) bool {
	name = strings.TrimSpace(name)
	return strings.EqualFold(name, u.Symbol) ||
		strings.EqualFold(name, u.Name) ||
		strings.EqualFold(name, u.Label())
}

// Table is a category of units sharing a base unit.
type Table struct {
	Category string `yaml:"category" json:"category"`
	Base     string `yaml:"base" json:"base"`
	Units    []Unit `yaml:"units" json:"units"`
}

// Lookup finds a unit by symbol, name or label, ignoring case.
func (t *Table) Lookup(name string) (Unit, error) {
	for _, u := range t.Units {
		if u.matches(name) {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("%w %q in %s", ErrUnknownUnit, name, t.Category)
}

// Convert converts v through the base unit.
func (t *Table) Convert(v float64, from, to string) (float64, error) {
	f, err := t.Lookup(from)
	if err != nil {
		return 0, err
	}
	u, err := t.Lookup(to)
	if err != nil {
		return 0, err
	}
	return v * f.Factor / u.Factor, nil
}

func (t *Table) validate() error {
	if t.Category == "" {
		return errors.New("table without category")
	}
	seen := make(map[string]bool, len(t.Units))
	for _, u := range t.Units {
		if u.Symbol == "" || u.Name == "" {
			return fmt.Errorf("%s: unit needs a name and a symbol", t.Category)
		}
		if !(u.Factor > 0) || math.IsInf(u.Factor, 0) {
			return fmt.Errorf("%s: unit %s has factor %v", t.Category, u.Symbol, u.Factor)
		}
		key := strings.ToLower(u.Symbol)
		if seen[key] {
			return fmt.Errorf("%s: duplicate unit %s", t.Category, u.Symbol)
		}
		seen[key] = true
	}
	if _, err := t.Lookup(t.Base); err != nil {
		return fmt.Errorf("%s: base unit: %w", t.Category, err)
	}
	return nil
}

// Registry holds the multiplicative tables plus the temperature category.
type Registry struct {
	tables []*Table
}

// Load parses YAML unit tables.
func Load(data []byte) (*Registry, error) {
	var tables []*Table
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parse unit tables: %w", err)
	}
	for _, t := range tables {
		if err := t.validate(); err != nil {
			return nil, fmt.Errorf("unit tables: %w", err)
		}
		if strings.EqualFold(t.Category, TemperatureCategory) {
			return nil, fmt.Errorf("unit tables: %s is not multiplicative", TemperatureCategory)
		}
	}
	return &Registry{tables: tables}, nil
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	r, err := Load(unitsYAML)
	if err != nil {
		panic(err)
	}
	return r
})

// Default returns the registry built from the embedded tables.
func Default() *Registry {
	return defaultRegistry()
}

// Table returns the multiplicative table for category.
func (r *Registry) Table(category string) (*Table, error) {
	for _, t := range r.tables {
		if strings.EqualFold(t.Category, category) {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownCategory, category)
}

// Categories lists every category, temperature last.
func (r *Registry) Categories() []string {
	names := make([]string, 0, len(r.tables)+1)
	for _, t := range r.tables {
		names = append(names, t.Category)
	}
	return append(names, TemperatureCategory)
}

// Units lists the units of category in table order.
func (r *Registry) Units(category string) ([]Unit, error) {
	if strings.EqualFold(category, TemperatureCategory) {
		return slices.Clone(temperatureUnits), nil
	}
	t, err := r.Table(category)
	if err != nil {
		return nil, err
	}
	return slices.Clone(t.Units), nil
}

// Convert converts v between two units of category. A result that overflows
// float64 is ErrOutOfRange.
func (r *Registry) Convert(category string, v float64, from, to string) (float64, error) {
	result, err := r.convert(category, v, from, to)
	if err != nil {
		return 0, err
	}
	if math.IsInf(result, 0) || math.IsNaN(result) {
		return 0, fmt.Errorf("%w: %s %s to %s", ErrOutOfRange, Format(v), from, to)
	}
	return result, nil
}

func (r *Registry) convert(category string, v float64, from, to string) (float64, error) {
	if strings.EqualFold(category, TemperatureCategory) {
		f, err := ParseScale(from)
		if err != nil {
			return 0, err
		}
		t, err := ParseScale(to)
		if err != nil {
			return 0, err
		}
		return ConvertTemperature(v, f, t), nil
	}
	t, err := r.Table(category)
	if err != nil {
		return 0, err
	}
	return t.Convert(v, from, to)
}

// ParseValue reads user-typed numeric text. Anything that is not a finite
// number is ErrInvalidInput.
func ParseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidInput
	}
	return v, nil
}

// Format renders a converted value with six significant digits.
func Format(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
