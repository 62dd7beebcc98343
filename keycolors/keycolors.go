// Package keycolors decides which keys of an equal-division keyboard are drawn
// black and which white.
package keycolors

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

type (
	Color int

	Colors []Color
)

const (
	White Color = iota
	Black
)

const epsilon = 1e-9

// MaxKeys bounds the keys of a single octave.
const MaxKeys = 1024

var (
	ErrInvalidGenerator = errors.New("generator must be a finite number")
	ErrWhiteKeyCount    = errors.New("white key count must be within 1..1024")
	ErrDivisions        = errors.New("divisions must be within 1..1024")
	ErrDegenerateChain  = errors.New("generator chain revisits a position")
)

// chromaticFromA are the piano colours of the twelve pitch classes starting at A.
var chromaticFromA = [12]Color{White, Black, White, White, Black, White, Black, White, White, Black, White, Black}

func (c Color) String() string {
	switch c {
	case White:
		return "white"
	case Black:
		return "black"
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

func ParseColor(s string) (Color, error) {
	switch s {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	}
	return 0, fmt.Errorf("unknown key color: %s", s)
}

func (c Color) MarshalJSON() ([]byte, error) {
	switch c {
	case White, Black:
		return json.Marshal(c.String())
	}
	return nil, fmt.Errorf("unknown key color value: %d", int(c))
}

func (c *Color) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseColor(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// String joins the colours with single spaces.
func (cs Colors) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Auto maps each of the n keys onto the nearest lower pitch class of 12-tone
// equal temperament counted from A. A key is black when its class is black,
// the previous key neither used that class nor is black, and black keys stay
// fewer than half of the keyboard.
func Auto(n int) Colors {
	if n <= 0 {
		return nil
	}
	res := make(Colors, n)
	prev, blacks := -1, 0
	for i := range res {
		pc := i * 12 / n
		if chromaticFromA[pc] == Black && pc != prev &&
			(i == 0 || res[i-1] == White) && 2*(blacks+1) < n {
			res[i] = Black
			blacks++
		}
		prev = pc
	}
	return res
}

// Gap stacks whiteKeyCount generators (in octaves), starting offset steps
// below the origin, and reduces them into one octave. When the generator is a
// step of an equal division of at most MaxKeys keys the result is that
// division coloured by GapDivided. Otherwise every step between neighbouring
// positions is a white key, and steps larger than the smallest one are
// followed by a black key.
func Gap(generator float64, whiteKeyCount, offset int) (Colors, error) {
	positions, err := chain(generator, whiteKeyCount, offset)
	if err != nil {
		return nil, err
	}
	if n, ok := Divisions(generator); ok {
		return divide(positions, n, generator)
	}

	steps := make([]float64, whiteKeyCount)
	smallest := math.Inf(1)
	for i := range positions {
		next := positions[0] + 1
		if i+1 < len(positions) {
			next = positions[i+1]
		}
		steps[i] = next - positions[i]
		if steps[i] < epsilon {
			return nil, fmt.Errorf("generator %v with %d white keys: %w", generator, whiteKeyCount, ErrDegenerateChain)
		}
		smallest = math.Min(smallest, steps[i])
	}

	res := make(Colors, 0, 2*whiteKeyCount)
	for _, step := range steps {
		res = append(res, White)
		if step > smallest+epsilon {
			res = append(res, Black)
		}
	}
	return res, nil
}

// GapDivided colours a keyboard of the given number of equal divisions: the
// keys nearest to the generator chain are white, the rest black.
func GapDivided(generator float64, whiteKeyCount, offset, divisions int) (Colors, error) {
	if divisions < 1 || divisions > MaxKeys {
		return nil, fmt.Errorf("%d divisions: %w", divisions, ErrDivisions)
	}
	positions, err := chain(generator, whiteKeyCount, offset)
	if err != nil {
		return nil, err
	}
	return divide(positions, divisions, generator)
}

// Divisions finds the smallest equal division of at most MaxKeys keys that
// has generator as one of its steps.
func Divisions(generator float64) (int, bool) {
	if math.IsNaN(generator) || math.IsInf(generator, 0) {
		return 0, false
	}
	for n := 1; n <= MaxKeys; n++ {
		x := generator * float64(n)
		if math.Abs(x-math.Round(x)) < epsilon {
			return n, true
		}
	}
	return 0, false
}

// chain returns the sorted positions of the generator chain within the octave.
func chain(generator float64, whiteKeyCount, offset int) ([]float64, error) {
	if math.IsNaN(generator) || math.IsInf(generator, 0) {
		return nil, ErrInvalidGenerator
	}
	if whiteKeyCount < 1 || whiteKeyCount > MaxKeys {
		return nil, fmt.Errorf("%d white keys: %w", whiteKeyCount, ErrWhiteKeyCount)
	}

	positions := make([]float64, whiteKeyCount)
	for i := range positions {
		x := float64(i-offset) * generator
		positions[i] = x - math.Floor(x)
		if positions[i] >= 1 {
			positions[i] = 0
		}
	}
	sort.Float64s(positions)
	return positions, nil
}

func divide(positions []float64, n int, generator float64) (Colors, error) {
	res := make(Colors, n)
	for i := range res {
		res[i] = Black
	}
	for _, p := range positions {
		k := int(math.Round(p*float64(n))) % n
		if res[k] == White {
			return nil, fmt.Errorf("generator %v with %d white keys in %d divisions: %w",
				generator, len(positions), n, ErrDegenerateChain)
		}
		res[k] = White
	}
	return res, nil
}

// FifthGenerator returns the best approximation of 3/2 in n equal divisions
// of the octave, in octaves.
func FifthGenerator(n int) float64 {
	if n <= 0 {
		return math.NaN()
	}
	return math.Round(float64(n)*math.Log2(1.5)) / float64(n)
}
