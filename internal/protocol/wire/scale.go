package wire

import (
	"fmt"
	"math"
)

// ScaleFamily says how a Scale multiplies a raw integer.
type ScaleFamily uint8

const (
	ScaleNone ScaleFamily = iota
	ScalePow2
	ScaleDecimal
)

// Scale converts a transmitted integer into a fractional value:
// value = raw * 2^exp for Pow2, value = raw * factor for Decimal.
type Scale struct {
	family ScaleFamily
	exp    int
	factor float64
	// div is set when factor is an exact negative power of ten, so that
	// raw/div rounds correctly where raw*factor would not.
	div float64
}

// Decimal scales used by the catalogue.
var (
	Scale1 = Decimal(1e-1)
	Scale2 = Decimal(1e-2)
	Scale3 = Decimal(1e-3)
	Scale4 = Decimal(1e-4)
	Scale5 = Decimal(1e-5)
	Scale7 = Decimal(1e-7)
	Scale9 = Decimal(1e-9)
)

func Pow2(exp int) Scale {
	return Scale{family: ScalePow2, exp: exp}
}

func Decimal(factor float64) Scale {
	s := Scale{family: ScaleDecimal, factor: factor}
	for n := 1; n <= 12; n++ {
		d := math.Pow10(n)
		if factor == 1/d {
			s.div = d
			break
		}
	}
	return s
}

func (s Scale) Family() ScaleFamily { return s.family }

func (s Scale) IsZero() bool { return s.family == ScaleNone }

// Factor is the multiplier as a float64.
func (s Scale) Factor() float64 {
	switch s.family {
	case ScalePow2:
		return math.Ldexp(1, s.exp)
	case ScaleDecimal:
		return s.factor
	default:
		return 1
	}
}

// Apply maps a raw integer to its scaled value.
func (s Scale) Apply(raw float64) float64 {
	switch s.family {
	case ScalePow2:
		return math.Ldexp(raw, s.exp)
	case ScaleDecimal:
		if s.div != 0 {
			return raw / s.div
		}
		return raw * s.factor
	default:
		return raw
	}
}

// Raw maps a scaled value back to the nearest raw integer.
func (s Scale) Raw(value float64) float64 {
	switch s.family {
	case ScalePow2:
		return math.Round(math.Ldexp(value, -s.exp))
	case ScaleDecimal:
		if s.div != 0 {
			return math.Round(value * s.div)
		}
		return math.Round(value / s.factor)
	default:
		return math.Round(value)
	}
}

func (s Scale) String() string {
	switch s.family {
	case ScalePow2:
		return fmt.Sprintf("2^%d", s.exp)
	case ScaleDecimal:
		return fmt.Sprintf("%g", s.factor)
	default:
		return "1"
	}
}
