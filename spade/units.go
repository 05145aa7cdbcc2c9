package spade

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// A LengthUnit is a unit in which lengths are displayed or entered.
//
// Profiles and curves are always stored in feet ("internal units").
type LengthUnit int

const (
	Feet LengthUnit = iota
	Inches
	Meters
	Centimeters
	Millimeters
)

var lengthUnits = []struct {
	Symbol  string
	Names   []string
	PerFoot float64
}{
	Feet:        {"ft", []string{"ft", "feet", "foot"}, 1},
	Inches:      {"in", []string{"in", "inch", "inches"}, 12},
	Meters:      {"m", []string{"m", "meter", "meters", "metre", "metres"}, 0.3048},
	Centimeters: {"cm", []string{"cm", "centimeter", "centimeters"}, 30.48},
	Millimeters: {"mm", []string{"mm", "millimeter", "millimeters"}, 304.8},
}

// ParseLengthUnit parses a unit symbol or name such as "ft" or "meters".
func ParseLengthUnit(s string) (LengthUnit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return Feet, nil
	}
	for u, info := range lengthUnits {
		for _, name := range info.Names {
			if name == s {
				return LengthUnit(u), nil
			}
		}
	}
	return 0, errors.Errorf("unknown length unit: %q", s)
}

func (u LengthUnit) valid() bool {
	return u >= 0 && int(u) < len(lengthUnits)
}

// Symbol returns a short symbol like "ft" or "mm".
func (u LengthUnit) Symbol() string {
	if !u.valid() {
		return "units"
	}
	return lengthUnits[u].Symbol
}

func (u LengthUnit) String() string {
	return u.Symbol()
}

// ToInternal converts a length in unit u to feet.
//
// The result is NaN if u is not a known unit.
func (u LengthUnit) ToInternal(v float64) float64 {
	if !u.valid() {
		return math.NaN()
	}
	return v / lengthUnits[u].PerFoot
}

// FromInternal converts a length in feet to unit u.
//
// The result is NaN if u is not a known unit.
func (u LengthUnit) FromInternal(v float64) float64 {
	if !u.valid() {
		return math.NaN()
	}
	return v * lengthUnits[u].PerFoot
}

func (u LengthUnit) MarshalText() ([]byte, error) {
	if !u.valid() {
		return nil, errors.Errorf("cannot marshal length unit %d", int(u))
	}
	return []byte(u.Symbol()), nil
}

func (u *LengthUnit) UnmarshalText(text []byte) error {
	parsed, err := ParseLengthUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
