// Package config reads the YAML configuration shared by the terminal UI, the
// API server and the command line.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"os"
	"strings"

	"github.com/rapidmidiex/xentui/chord"
	"github.com/rapidmidiex/xentui/keycolors"
	"gopkg.in/yaml.v3"
)

type (
	Config struct {
		Parser   Parser   `yaml:"parser"`
		Tuning   Tuning   `yaml:"tuning"`
		Format   Format   `yaml:"format"`
		Keyboard Keyboard `yaml:"keyboard"`
		Server   Server   `yaml:"server"`
	}

	Parser struct {
		NumberOfComponents int    `yaml:"numberOfComponents"`
		Separators         string `yaml:"separators"`
	}

	Tuning struct {
		// Frequency of the unison in Hz.
		BaseFrequency float64 `yaml:"baseFrequency"`
		// Pitch bend range in semitones used for MIDI export.
		BendRange float64 `yaml:"bendRange"`
	}

	Format struct {
		FractionDigits int `yaml:"fractionDigits"`
	}

	Keyboard struct {
		// "auto" or "gap"
		Layout    string `yaml:"layout"`
		Divisions int    `yaml:"divisions"`
		WhiteKeys int    `yaml:"whiteKeys"`
		Offset    int    `yaml:"offset"`
		// Interval notation of the gap generator. Empty means the best fifth
		// of Divisions.
		Generator string `yaml:"generator"`
	}

	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	}
)

const (
	LayoutAuto = "auto"
	LayoutGap  = "gap"
)

var ErrInvalidConfig = errors.New("invalid config")

func Default() Config {
	p := chord.DefaultConfig()
	return Config{
		Parser: Parser{
			NumberOfComponents: p.NumberOfComponents,
			Separators:         p.Separators,
		},
		Tuning: Tuning{
			BaseFrequency: 261.6255653005986,
			BendRange:     2,
		},
		Format: Format{FractionDigits: 3},
		Keyboard: Keyboard{
			Layout:    LayoutAuto,
			Divisions: 12,
			WhiteKeys: 7,
			Offset:    1,
		},
		Server: Server{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads the file at path over the defaults. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// fields are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if err := c.ChordConfig().Validate(); err != nil {
		errs = append(errs, fmt.Errorf("parser: %w", err))
	}
	if !(c.Tuning.BaseFrequency > 0) {
		errs = append(errs, fmt.Errorf("tuning: base frequency must be positive, got %v", c.Tuning.BaseFrequency))
	}
	if !(c.Tuning.BendRange > 0) {
		errs = append(errs, fmt.Errorf("tuning: bend range must be positive, got %v", c.Tuning.BendRange))
	}
	if c.Format.FractionDigits < 0 || c.Format.FractionDigits > 20 {
		errs = append(errs, fmt.Errorf("format: fraction digits must be within 0..20, got %d", c.Format.FractionDigits))
	}
	switch c.Keyboard.Layout {
	case LayoutAuto, LayoutGap:
	default:
		errs = append(errs, fmt.Errorf("keyboard: unknown layout %q", c.Keyboard.Layout))
	}
	if c.Keyboard.Divisions < 1 {
		errs = append(errs, fmt.Errorf("keyboard: divisions must be positive, got %d", c.Keyboard.Divisions))
	}
	if c.Keyboard.WhiteKeys < 1 {
		errs = append(errs, fmt.Errorf("keyboard: white keys must be positive, got %d", c.Keyboard.WhiteKeys))
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server: address is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func (c Config) ChordConfig() chord.Config {
	return chord.Config{
		NumberOfComponents: c.Parser.NumberOfComponents,
		Separators:         c.Parser.Separators,
	}
}

// Colors colours the configured keyboard. In gap layout the result always
// has one colour per division.
func (k Keyboard) Colors(p *chord.Parser) (keycolors.Colors, error) {
	if k.Layout == LayoutAuto {
		return keycolors.Auto(k.Divisions), nil
	}
	g := keycolors.FifthGenerator(k.Divisions)
	if k.Generator != "" {
		var err error
		if g, err = ParseGenerator(k.Generator, p); err != nil {
			return nil, fmt.Errorf("keyboard generator: %w", err)
		}
	}
	return keycolors.GapDivided(g, k.WhiteKeys, k.Offset, k.Divisions)
}

// ParseGenerator reads a generator in octaves, ex: "7/12" or "0.585". Text
// holding a backslash or a bracket, or ending in a dot, is interval notation
// read with p instead, ex: "7\12", "[-1 1>" or "700.".
func ParseGenerator(text string, p *chord.Parser) (float64, error) {
	if strings.ContainsAny(text, `\[`) || strings.HasSuffix(text, ".") {
		i, err := p.ParseInterval(text)
		if err != nil {
			return 0, err
		}
		return i.TotalCents() / 1200, nil
	}
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return 0, &chord.ParseError{Token: text, Expected: "generator in octaves, ex: 7/12", Err: chord.ErrMalformedToken}
	}
	g, _ := r.Float64()
	if math.IsInf(g, 0) {
		return 0, &chord.ParseError{Token: text, Expected: "generator in octaves, ex: 7/12", Err: chord.ErrInvalidNumeric}
	}
	return g, nil
}
