package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Hemisphere is the zone letter supplied with a conversion run. Projection
// picks the false northing from the latitude sign, not from the letter.
type Hemisphere string

const (
	North Hemisphere = "N"
	South Hemisphere = "S"
)

const (
	MinZone = 1
	MaxZone = 60
)

// UtmZone is supplied once per conversion run and applied to every row.
type UtmZone struct {
	Number     int
	Hemisphere Hemisphere
}

func (z UtmZone) String() string { return fmt.Sprintf("%d%s", z.Number, z.Hemisphere) }

// Validate checks the zone number range and hemisphere letter.
func (z UtmZone) Validate() error {
	if z.Number < MinZone || z.Number > MaxZone {
		return &ConfigError{Param: "zone", Value: strconv.Itoa(z.Number), Reason: "must be between 1 and 60"}
	}
	if z.Hemisphere != North && z.Hemisphere != South {
		return &ConfigError{Param: "hemisphere", Value: string(z.Hemisphere), Reason: "must be N or S"}
	}
	return nil
}

// ParseHemisphere accepts N or S in either case, surrounded by optional whitespace.
func ParseHemisphere(s string) (Hemisphere, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	switch Hemisphere(v) {
	case North, South:
		return Hemisphere(v), nil
	case "":
		return "", &ConfigError{Param: "hemisphere", Reason: "is required"}
	}
	return "", &ConfigError{Param: "hemisphere", Value: s, Reason: "must be N or S"}
}

// ParseUtmZone builds a validated UtmZone from raw user input.
func ParseUtmZone(number, letter string) (UtmZone, error) {
	n := strings.TrimSpace(number)
	if n == "" {
		return UtmZone{}, &ConfigError{Param: "zone", Reason: "is required"}
	}
	zn, err := strconv.Atoi(n)
	if err != nil {
		return UtmZone{}, &ConfigError{Param: "zone", Value: number, Reason: "must be an integer"}
	}

	h, err := ParseHemisphere(letter)
	if err != nil {
		return UtmZone{}, err
	}

	z := UtmZone{Number: zn, Hemisphere: h}
	if err := z.Validate(); err != nil {
		return UtmZone{}, err
	}
	return z, nil
}

// Pivot is the rotation origin and angle (degrees, counter-clockwise),
// supplied once per rotation run.
type Pivot struct {
	X0    float64
	Y0    float64
	Angle float64
}

func (p Pivot) String() string {
	return fmt.Sprintf("x0=%s y0=%s angle=%s",
		strconv.FormatFloat(p.X0, 'g', -1, 64),
		strconv.FormatFloat(p.Y0, 'g', -1, 64),
		strconv.FormatFloat(p.Angle, 'g', -1, 64),
	)
}

// Validate requires every component to be finite.
func (p Pivot) Validate() error {
	for _, c := range []struct {
		name string
		v    float64
	}{{"x0", p.X0}, {"y0", p.Y0}, {"angle", p.Angle}} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			return &ConfigError{Param: c.name, Value: strconv.FormatFloat(c.v, 'g', -1, 64), Reason: "must be a finite number"}
		}
	}
	return nil
}

// ParsePivot builds a validated Pivot from raw user input.
func ParsePivot(x0, y0, angle string) (Pivot, error) {
	var vals [3]float64
	for i, c := range []struct{ name, raw string }{{"x0", x0}, {"y0", y0}, {"angle", angle}} {
		s := strings.TrimSpace(c.raw)
		if s == "" {
			return Pivot{}, &ConfigError{Param: c.name, Reason: "is required"}
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Pivot{}, &ConfigError{Param: c.name, Value: c.raw, Reason: "must be a number"}
		}
		vals[i] = v
	}

	p := Pivot{X0: vals[0], Y0: vals[1], Angle: vals[2]}
	if err := p.Validate(); err != nil {
		return Pivot{}, err
	}
	return p, nil
}
