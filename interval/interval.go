// Package interval models musical intervals written as ratios, cents, equal
// divisions or prime-exponent vectors, all measured in cents.
package interval

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// DefaultNumberOfComponents is the length of the prime basis (2 through 97)
// every monzo is padded to.
const DefaultNumberOfComponents = 25

type (
	Type int

	EqualTemperament struct {
		Steps     int64
		Divisions int64
		// nil means the octave
		Equave *big.Rat
	}

	// Interval keeps the notation it was written in next to its exact value.
	// Ratio is set for TypeRatio and ET for TypeEqualTemperament.
	Interval struct {
		Type  Type
		Value Monzo
		Ratio *big.Rat
		ET    EqualTemperament
	}
)

const (
	TypeRatio Type = iota
	TypeCents
	TypeEqualTemperament
	TypeMonzo
)

var (
	ErrInvalidNumeric = errors.New("invalid numeric value")
	ErrVectorOverflow = errors.New("too many monzo components")
)

func (t Type) String() string {
	switch t {
	case TypeRatio:
		return "ratio"
	case TypeCents:
		return "cents"
	case TypeEqualTemperament:
		return "equal temperament"
	case TypeMonzo:
		return "monzo"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

func ParseType(s string) (Type, error) {
	switch s {
	case "ratio":
		return TypeRatio, nil
	case "cents":
		return TypeCents, nil
	case "equal temperament":
		return TypeEqualTemperament, nil
	case "monzo":
		return TypeMonzo, nil
	}
	return 0, fmt.Errorf("unknown interval type: %s", s)
}

func (t Type) MarshalJSON() ([]byte, error) {
	switch t {
	case TypeRatio, TypeCents, TypeEqualTemperament, TypeMonzo:
		return json.Marshal(t.String())
	}
	return nil, fmt.Errorf("unknown interval type value: %d", int(t))
}

func (t *Type) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseType(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// NewRatio creates a just interval. The ratio must be positive.
func NewRatio(r *big.Rat, components int) (Interval, error) {
	if r.Sign() <= 0 {
		return Interval{}, fmt.Errorf("ratio %s: %w", r.RatString(), ErrInvalidNumeric)
	}
	return Interval{
		Type:  TypeRatio,
		Value: FactorRatio(r, components),
		Ratio: new(big.Rat).Set(r),
	}, nil
}

func NewCents(cents float64, components int) (Interval, error) {
	if math.IsNaN(cents) || math.IsInf(cents, 0) {
		return Interval{}, fmt.Errorf("cents %v: %w", cents, ErrInvalidNumeric)
	}
	v := Unison(components)
	v.Cents = cents
	return Interval{Type: TypeCents, Value: v}, nil
}

// NewEqualTemperament creates steps of an equal division of the equave (the
// octave when equave is nil).
func NewEqualTemperament(steps, divisions int64, equave *big.Rat, components int) (Interval, error) {
	if divisions <= 0 {
		return Interval{}, fmt.Errorf("division %d: %w", divisions, ErrInvalidNumeric)
	}
	et := EqualTemperament{Steps: steps, Divisions: divisions}
	e := big.NewRat(2, 1)
	if equave != nil {
		if equave.Sign() <= 0 {
			return Interval{}, fmt.Errorf("equave %s: %w", equave.RatString(), ErrInvalidNumeric)
		}
		e = equave
		et.Equave = new(big.Rat).Set(equave)
	}
	return Interval{
		Type:  TypeEqualTemperament,
		Value: FactorRatio(e, components).Scale(big.NewRat(steps, divisions)),
		ET:    et,
	}, nil
}

// NewMonzo creates an interval from exponents of 2, 3, 5, ... padded with
// zeros to the given number of components.
func NewMonzo(exponents []*big.Rat, components int) (Interval, error) {
	if len(exponents) > components {
		return Interval{}, fmt.Errorf("%d components, at most %d: %w", len(exponents), components, ErrVectorOverflow)
	}
	v := Unison(components)
	for i, e := range exponents {
		v.Vector[i].Set(e)
	}
	if c := v.TotalCents(); math.IsNaN(c) || math.IsInf(c, 0) {
		return Interval{}, fmt.Errorf("monzo of non-finite size: %w", ErrInvalidNumeric)
	}
	return Interval{Type: TypeMonzo, Value: v}, nil
}

func (i Interval) TotalCents() float64 {
	return i.Value.TotalCents()
}

// Add stacks two intervals. The notation survives when both sides share it:
// equal divisions of the same equave meet at their least common multiple, a
// ratio mixed with a monzo becomes a monzo and any other mix becomes cents.
func (i Interval) Add(o Interval) Interval {
	res := Interval{Value: i.Value.Add(o.Value)}
	switch {
	case i.Type == TypeRatio && o.Type == TypeRatio:
		res.Type = TypeRatio
		res.Ratio = new(big.Rat).Mul(i.Ratio, o.Ratio)
	case i.Type == TypeEqualTemperament && o.Type == TypeEqualTemperament && sameEquave(i.ET.Equave, o.ET.Equave):
		// Divisions too fine for int64 are only kept as cents.
		res.Type = TypeCents
		if et, ok := i.ET.add(o.ET); ok {
			res.Type, res.ET = TypeEqualTemperament, et
		}
	case i.Type == TypeMonzo && (o.Type == TypeMonzo || o.Type == TypeRatio),
		o.Type == TypeMonzo && i.Type == TypeRatio:
		res.Type = TypeMonzo
	default:
		res.Type = TypeCents
	}
	return res
}

// add stacks two divisions of the same equave over the lcm of their
// divisions. It reports false when that overflows int64.
func (e EqualTemperament) add(o EqualTemperament) (EqualTemperament, bool) {
	d, ok := mulInt64(e.Divisions/gcd(e.Divisions, o.Divisions), o.Divisions)
	if !ok {
		return EqualTemperament{}, false
	}
	a, ok := mulInt64(e.Steps, d/e.Divisions)
	if !ok {
		return EqualTemperament{}, false
	}
	b, ok := mulInt64(o.Steps, d/o.Divisions)
	if !ok {
		return EqualTemperament{}, false
	}
	steps := a + b
	if (b > 0 && steps < a) || (b < 0 && steps > a) {
		return EqualTemperament{}, false
	}
	return EqualTemperament{Steps: steps, Divisions: d, Equave: e.Equave}, true
}

func (i Interval) Sub(o Interval) Interval {
	return i.Add(o.Neg())
}

// Neg returns the interval pointing the other way (not the octave complement).
func (i Interval) Neg() Interval {
	res := Interval{Type: i.Type, Value: i.Value.Neg(), ET: i.ET}
	switch i.Type {
	case TypeRatio:
		res.Ratio = new(big.Rat).Inv(i.Ratio)
	case TypeEqualTemperament:
		res.ET.Steps = -i.ET.Steps
	case TypeCents, TypeMonzo:
	}
	return res
}

// String writes the interval back in its own notation; the result parses to
// an interval of the same size.
func (i Interval) String() string {
	switch i.Type {
	case TypeRatio:
		if i.Ratio == nil {
			if r, ok := i.Value.Ratio(); ok {
				return r.String()
			}
			return formatCents(i.TotalCents())
		}
		return i.Ratio.String()
	case TypeCents:
		return formatCents(i.TotalCents())
	case TypeEqualTemperament:
		s := fmt.Sprintf(`%d\%d`, i.ET.Steps, i.ET.Divisions)
		if i.ET.Equave != nil {
			s += "<" + i.ET.Equave.RatString() + ">"
		}
		return s
	case TypeMonzo:
		s := i.Value.String()
		if r := i.Value.residual(); !isOne(r) {
			s += "+" + r.String()
		}
		if c := i.Value.Cents; c != 0 {
			if c > 0 {
				s += "+"
			}
			s += formatCents(c)
		}
		return s
	}
	return fmt.Sprintf("%%!Type(%d)", int(i.Type))
}

type intervalJSON struct {
	Type     Type     `json:"type"`
	Notation string   `json:"notation"`
	Cents    float64  `json:"cents"`
	Monzo    []string `json:"monzo"`
	Residual string   `json:"residual"`
}

func (i Interval) MarshalJSON() ([]byte, error) {
	monzo := make([]string, len(i.Value.Vector))
	for k, e := range i.Value.Vector {
		monzo[k] = e.RatString()
	}
	return json.Marshal(intervalJSON{
		Type:     i.Type,
		Notation: i.String(),
		Cents:    i.TotalCents(),
		Monzo:    monzo,
		Residual: i.Value.residual().RatString(),
	})
}

func sameEquave(a, b *big.Rat) bool {
	two := big.NewRat(2, 1)
	if a == nil {
		a = two
	}
	if b == nil {
		b = two
	}
	return a.Cmp(b) == 0
}

// formatCents always leaves a decimal point so the text reads back as cents.
func formatCents(c float64) string {
	s := strconv.FormatFloat(c, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += "."
	}
	return s
}
