// Package chord reads chords typed as free text. Tones may be written as
// ratios (3/2), cents (701.955), equal divisions (7\12) or monzos ([-1 1>),
// separated by whitespace or any of the configured separator characters.
package chord

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"unicode"

	"github.com/rapidmidiex/xentui/interval"
)

type (
	Config struct {
		// Length of the prime basis monzos are padded to.
		NumberOfComponents int
		// Characters that separate tones besides whitespace.
		Separators string
	}

	Parser struct{ cfg Config }

	// Chord is a list of tones in the order they were typed.
	Chord []interval.Interval

	ParseError struct {
		Token    string
		Expected string
		Err      error
	}

	term struct {
		negative bool
		text     string
	}
)

var (
	ErrMalformedToken = errors.New("malformed token")
	ErrInvalidNumeric = interval.ErrInvalidNumeric
	ErrVectorOverflow = interval.ErrVectorOverflow
)

const anyNotation = "ratio, cents, equal temperament or monzo"

// reserved cannot be used as separators since the notations need them.
const reserved = `[]<>+-./\,0123456789`

func DefaultConfig() Config {
	return Config{
		NumberOfComponents: interval.DefaultNumberOfComponents,
		Separators:         ":;&|",
	}
}

func (c Config) Validate() error {
	if c.NumberOfComponents < 1 {
		return fmt.Errorf("number of components must be positive, got %d", c.NumberOfComponents)
	}
	if i := strings.IndexAny(c.Separators, reserved); i >= 0 {
		return fmt.Errorf("separator %q is part of the interval notation", c.Separators[i])
	}
	return nil
}

func New(cfg Config) *Parser { return &Parser{cfg: cfg} }

// ParseInput parses text with the default configuration.
func ParseInput(text string) (Chord, error) {
	return New(DefaultConfig()).Parse(text)
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%q: expected %s: %v", e.Token, e.Expected, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse reads every tone in text. The first malformed tone fails the whole chord.
func (p *Parser) Parse(text string) (Chord, error) {
	tokens, err := p.tokenize(text)
	if err != nil {
		return nil, err
	}
	c := make(Chord, 0, len(tokens))
	for _, tok := range tokens {
		i, err := p.ParseInterval(tok)
		if err != nil {
			return nil, err
		}
		c = append(c, i)
	}
	return c, nil
}

// ParseInterval reads a single tone. Terms joined by + and - are stacked, a
// leading - inverts the first term.
func (p *Parser) ParseInterval(token string) (interval.Interval, error) {
	terms, err := splitTerms(token)
	if err != nil {
		return interval.Interval{}, err
	}
	var res interval.Interval
	for k, t := range terms {
		i, err := p.parseTerm(t.text)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Token = token
			}
			return interval.Interval{}, err
		}
		if t.negative {
			i = i.Neg()
		}
		if k == 0 {
			res = i
			continue
		}
		res = res.Add(i)
	}
	if c := res.TotalCents(); math.IsNaN(c) || math.IsInf(c, 0) {
		return interval.Interval{}, &ParseError{Token: token, Expected: "an interval of finite size", Err: ErrInvalidNumeric}
	}
	return res, nil
}

// tokenize splits on whitespace and separators, except inside [...>.
func (p *Parser) tokenize(text string) ([]string, error) {
	var (
		tokens   []string
		cur      strings.Builder
		inVector bool
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch {
		case inVector:
			cur.WriteRune(r)
			if r == '>' {
				inVector = false
			}
		case r == '[':
			inVector = true
			cur.WriteRune(r)
		case unicode.IsSpace(r) || strings.ContainsRune(p.cfg.Separators, r):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if inVector {
		return nil, &ParseError{Token: cur.String(), Expected: "monzo closed by '>'", Err: ErrMalformedToken}
	}
	flush()
	return tokens, nil
}

func splitTerms(token string) ([]term, error) {
	var terms []term
	negative := false
	start := 0
	if strings.HasPrefix(token, "-") || strings.HasPrefix(token, "+") {
		negative = token[0] == '-'
		start = 1
	}
	// Notation characters are ASCII, so scanning bytes never splits a rune.
	inVector := false
	for i := start; i < len(token); i++ {
		switch ch := token[i]; {
		case inVector:
			inVector = ch != '>'
		case ch == '[':
			inVector = true
		case ch == '+' || ch == '-':
			if i == start {
				return nil, &ParseError{Token: token, Expected: anyNotation + " before " + strconv.Quote(string(ch)), Err: ErrMalformedToken}
			}
			terms = append(terms, term{negative: negative, text: token[start:i]})
			negative, start = ch == '-', i+1
		}
	}
	if start == len(token) {
		return nil, &ParseError{Token: token, Expected: anyNotation, Err: ErrMalformedToken}
	}
	return append(terms, term{negative: negative, text: token[start:]}), nil
}

func (p *Parser) parseTerm(text string) (interval.Interval, error) {
	n := p.cfg.NumberOfComponents
	switch {
	case strings.HasPrefix(text, "["):
		return p.parseMonzo(text)
	case strings.Contains(text, `\`):
		return p.parseEqualTemperament(text)
	case strings.Contains(text, "."):
		if !isDecimal(text) {
			return interval.Interval{}, malformed(text, "cents")
		}
		c, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return interval.Interval{}, &ParseError{Token: text, Expected: "cents", Err: ErrInvalidNumeric}
		}
		i, err := interval.NewCents(c, n)
		return i, wrap(err, text, "cents")
	case isDigits(text) || strings.Contains(text, "/"):
		r, err := parseRatio(text, "ratio")
		if err != nil {
			return interval.Interval{}, err
		}
		i, err := interval.NewRatio(r, n)
		return i, wrap(err, text, "ratio")
	}
	return interval.Interval{}, malformed(text, anyNotation)
}

// parseEqualTemperament reads steps\divisions with an optional <equave>.
func (p *Parser) parseEqualTemperament(text string) (interval.Interval, error) {
	const expected = `equal temperament steps\divisions`
	stepsText, rest, _ := strings.Cut(text, `\`)
	divisionsText, equaveText := rest, ""
	if open := strings.Index(rest, "<"); open >= 0 {
		if !strings.HasSuffix(rest, ">") {
			return interval.Interval{}, malformed(text, expected+"<equave>")
		}
		divisionsText, equaveText = rest[:open], rest[open+1:len(rest)-1]
	}
	if !isDigits(stepsText) || !isDigits(divisionsText) {
		return interval.Interval{}, malformed(text, expected)
	}
	steps, err := strconv.ParseInt(stepsText, 10, 64)
	if err != nil {
		return interval.Interval{}, &ParseError{Token: text, Expected: expected, Err: ErrInvalidNumeric}
	}
	divisions, err := strconv.ParseInt(divisionsText, 10, 64)
	if err != nil {
		return interval.Interval{}, &ParseError{Token: text, Expected: expected, Err: ErrInvalidNumeric}
	}

	var equave *big.Rat
	if equaveText != "" {
		equave, err = parseRatio(equaveText, "equave ratio")
		if err != nil {
			return interval.Interval{}, err
		}
	}
	i, err := interval.NewEqualTemperament(steps, divisions, equave, p.cfg.NumberOfComponents)
	return i, wrap(err, text, expected)
}

func (p *Parser) parseMonzo(text string) (interval.Interval, error) {
	const expected = "monzo [a b c ...>"
	if !strings.HasSuffix(text, ">") {
		return interval.Interval{}, malformed(text, expected)
	}
	fields := strings.FieldsFunc(text[1:len(text)-1], func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	exponents := make([]*big.Rat, len(fields))
	for k, f := range fields {
		e, ok := new(big.Rat).SetString(f)
		if !ok {
			return interval.Interval{}, malformed(text, expected)
		}
		exponents[k] = e
	}
	i, err := interval.NewMonzo(exponents, p.cfg.NumberOfComponents)
	return i, wrap(err, text, fmt.Sprintf("monzo of at most %d components", p.cfg.NumberOfComponents))
}

func parseRatio(text, expected string) (*big.Rat, error) {
	numText, denText, isFraction := strings.Cut(text, "/")
	if !isDigits(numText) || (isFraction && !isDigits(denText)) {
		return nil, malformed(text, expected)
	}
	num, _ := new(big.Int).SetString(numText, 10)
	den := big.NewInt(1)
	if isFraction {
		den, _ = new(big.Int).SetString(denText, 10)
	}
	if num.Sign() == 0 || den.Sign() == 0 {
		return nil, &ParseError{Token: text, Expected: "non-zero " + expected, Err: ErrInvalidNumeric}
	}
	return new(big.Rat).SetFrac(num, den), nil
}

func malformed(text, expected string) error {
	return &ParseError{Token: text, Expected: expected, Err: ErrMalformedToken}
}

func wrap(err error, text, expected string) error {
	if err == nil {
		return nil
	}
	return &ParseError{Token: text, Expected: expected, Err: err}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isDecimal accepts digits with a single decimal point, ex: "2400." or ".5".
func isDecimal(s string) bool {
	whole, frac, ok := strings.Cut(s, ".")
	if !ok || whole+frac == "" {
		return false
	}
	return (whole == "" || isDigits(whole)) && (frac == "" || isDigits(frac))
}

func (c Chord) String() string {
	parts := make([]string, len(c))
	for k, i := range c {
		parts[k] = i.String()
	}
	return strings.Join(parts, " ")
}

func (c Chord) Cents() []float64 {
	res := make([]float64, len(c))
	for k, i := range c {
		res[k] = i.TotalCents()
	}
	return res
}
