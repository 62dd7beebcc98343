// Package format renders numbers and frequencies for display.
package format

import (
	"math"
	"strconv"
	"strings"
)

type (
	// Prefix is one rung of the SI ladder. Exponent is the power of ten it stands for.
	Prefix struct {
		Symbol   string
		Exponent int
	}

	Formatter struct {
		// Digits after the decimal point, both in fixed and scientific notation.
		FractionDigits int
		// Magnitudes below this are written in fixed-point notation.
		FixedLimit float64
		// A prefixed frequency moves one rung up the ladder once its scaled
		// magnitude reaches this value.
		PrefixCeiling float64
		// Ascending by exponent, must contain the empty (unit) prefix.
		Prefixes []Prefix
	}
)

// SIPrefixes is the full ladder from quecto (1e-30) to quetta (1e30).
var SIPrefixes = []Prefix{
	{"q", -30}, {"r", -27}, {"y", -24}, {"z", -21}, {"a", -18}, {"f", -15},
	{"p", -12}, {"n", -9}, {"µ", -6}, {"m", -3}, {"", 0}, {"k", 3},
	{"M", 6}, {"G", 9}, {"T", 12}, {"P", 15}, {"E", 18}, {"Z", 21},
	{"Y", 24}, {"R", 27}, {"Q", 30},
}

var Default = Formatter{
	FractionDigits: 3,
	FixedLimit:     10000,
	PrefixCeiling:  100000,
	Prefixes:       SIPrefixes,
}

// FormatExponential writes x in fixed-point notation when it is small and in
// scientific notation (1.235e+5) otherwise.
func FormatExponential(x float64, fractionDigits int) string {
	f := Default
	f.FractionDigits = fractionDigits
	return f.Exponential(x)
}

// FormatHertz writes x as a frequency with an SI prefix, ex: "123.456kHz".
func FormatHertz(x float64) string {
	return Default.Hertz(x)
}

func (f Formatter) Exponential(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', f.FractionDigits, 64)
	}
	if x == 0 {
		// drop the sign of negative zero
		x = 0
	}
	if math.Abs(x) < f.FixedLimit {
		return strconv.FormatFloat(x, 'f', f.FractionDigits, 64)
	}

	// strconv pads the exponent to two digits ("1.235e+05").
	s := strconv.FormatFloat(x, 'e', f.FractionDigits, 64)
	mantissa, exponent, _ := strings.Cut(s, "e")
	sign, digits := exponent[:1], strings.TrimLeft(exponent[1:], "0")
	if digits == "" {
		digits = "0"
	}
	return mantissa + "e" + sign + digits
}

func (f Formatter) Hertz(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return f.Exponential(x) + "Hz"
	}
	if x == 0 {
		return strconv.FormatFloat(0, 'f', f.FractionDigits, 64) + "Hz"
	}

	i := f.unitIndex()
	if i < 0 {
		return f.Exponential(x) + "Hz"
	}
	magnitude := math.Abs(x)
	for i > 0 && magnitude/math.Pow10(f.Prefixes[i].Exponent) < 1 {
		i--
	}
	for i < len(f.Prefixes)-1 && magnitude/math.Pow10(f.Prefixes[i].Exponent) >= f.PrefixCeiling {
		i++
	}

	scaled := x / math.Pow10(f.Prefixes[i].Exponent)
	if math.Abs(scaled) >= f.PrefixCeiling {
		// Ran off the top of the ladder.
		return f.Exponential(x) + "Hz"
	}
	return strconv.FormatFloat(scaled, 'f', f.FractionDigits, 64) + f.Prefixes[i].Symbol + "Hz"
}

func (f Formatter) unitIndex() int {
	for i, p := range f.Prefixes {
		if p.Exponent == 0 {
			return i
		}
	}
	return -1
}
