package chord_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/rapidmidiex/xentui/chord"
	"github.com/rapidmidiex/xentui/interval"
	"github.com/stretchr/testify/require"
)

func TestParseInput(t *testing.T) {
	t.Run("parses mixed notations and separators", func(t *testing.T) {
		c, err := chord.ParseInput(`3:2400.&11/3|1\5;[-1,1> [0 0 1>-4/1`)
		require.NoError(t, err)
		require.Len(t, c, 6)

		require.Equal(t, []interval.Type{
			interval.TypeRatio,
			interval.TypeCents,
			interval.TypeRatio,
			interval.TypeEqualTemperament,
			interval.TypeMonzo,
			interval.TypeMonzo,
		}, []interval.Type{c[0].Type, c[1].Type, c[2].Type, c[3].Type, c[4].Type, c[5].Type})

		want := []float64{1901.955, 2400, 2249.36, 240, 701.955, 386.31}
		for i, cents := range c.Cents() {
			require.InDelta(t, want[i], cents, 1e-2, c[i].String())
		}
		require.Len(t, c[0].Value.Vector, interval.DefaultNumberOfComponents)
	})

	t.Run("returns an empty chord for blank input", func(t *testing.T) {
		for _, text := range []string{"", "   ", ":;&|", "\t\n"} {
			c, err := chord.ParseInput(text)
			require.NoError(t, err)
			require.Empty(t, c)
		}
	})

	t.Run("reads a bare integer as a ratio over one", func(t *testing.T) {
		c, err := chord.ParseInput("5")
		require.NoError(t, err)
		require.Equal(t, interval.TypeRatio, c[0].Type)
		require.Equal(t, "5/1", c[0].String())
	})

	t.Run("reads leading signs and subtraction", func(t *testing.T) {
		c, err := chord.ParseInput(`-1\5 3/2-2/1 +100. 1\12+1\12 [1/2>`)
		require.NoError(t, err)
		require.Equal(t, []string{`-1\5`, "3/4", "100.", `2\12`, "[1/2>"}, notations(c))
		require.InDelta(t, -240, c[0].TotalCents(), 1e-9)
		require.InDelta(t, 600, c[4].TotalCents(), 1e-9)
	})

	t.Run("reads equal divisions of other equaves", func(t *testing.T) {
		c, err := chord.ParseInput(`1\13<3>`)
		require.NoError(t, err)
		require.Equal(t, `1\13<3>`, c[0].String())
		require.InDelta(t, 146.304, c[0].TotalCents(), 1e-3)
	})

	t.Run("is deterministic", func(t *testing.T) {
		const text = `7/4 386.3 4\19 [-3 0 0 1>`
		first, err := chord.ParseInput(text)
		require.NoError(t, err)
		second, err := chord.ParseInput(text)
		require.NoError(t, err)
		require.Equal(t, first.Cents(), second.Cents())
		require.Equal(t, first.String(), second.String())
	})

	t.Run("reads its own output back", func(t *testing.T) {
		const text = `3/2 -100. 1\13<3> [-1 1>+101/1 [0 1>+50. 2/3-7\12`
		c, err := chord.ParseInput(text)
		require.NoError(t, err)

		again, err := chord.ParseInput(c.String())
		require.NoError(t, err)
		require.Len(t, again, len(c))
		for i := range c {
			require.InDelta(t, c[i].TotalCents(), again[i].TotalCents(), 1e-9, c[i].String())
		}
	})
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		token string
		err   error
	}{
		{"rejects words", "3/2 abc", "abc", chord.ErrMalformedToken},
		{"rejects a zero denominator", "3/0", "3/0", chord.ErrInvalidNumeric},
		{"rejects a zero numerator", "0/5", "0/5", chord.ErrInvalidNumeric},
		{"rejects zero divisions", `1\0`, `1\0`, chord.ErrInvalidNumeric},
		{"rejects non-numeric divisions", `1\x`, `1\x`, chord.ErrMalformedToken},
		{"rejects an unterminated monzo", "3/2 [1 2", "[1 2", chord.ErrMalformedToken},
		{"rejects garbage inside a monzo", "[1 x>", "[1 x>", chord.ErrMalformedToken},
		{"rejects two decimal points", "1.2.3", "1.2.3", chord.ErrMalformedToken},
		{"rejects a lone operator", "+", "+", chord.ErrMalformedToken},
		{"rejects a dangling operator", "3/2-", "3/2-", chord.ErrMalformedToken},
		{"reports the whole expression", "[0 0 1>-4/0", "[0 0 1>-4/0", chord.ErrInvalidNumeric},
		{"rejects monzos of infinite size", "[1e1000>", "[1e1000>", chord.ErrInvalidNumeric},
		{"rejects sums of infinite size", "[1e305>+[1e305>", "[1e305>+[1e305>", chord.ErrInvalidNumeric},
		{"rejects monzos longer than the basis", "[" + strings.Repeat("0 ", 26) + ">", "[" + strings.Repeat("0 ", 26) + ">", chord.ErrVectorOverflow},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := chord.ParseInput(tc.text)
			require.Nil(t, c)
			require.ErrorIs(t, err, tc.err)

			var pe *chord.ParseError
			require.True(t, errors.As(err, &pe))
			require.Equal(t, tc.token, pe.Token)
			require.NotEmpty(t, pe.Expected)
		})
	}
}

func TestParseUnicodeSpace(t *testing.T) {
	c, err := chord.ParseInput("[1\u00a01>+3/2\u2003100.")
	require.NoError(t, err)
	require.Equal(t, []string{"[0 2>", "100."}, notations(c))
	require.Equal(t, interval.TypeMonzo, c[0].Type)
	require.InDelta(t, 2*1901.955, c[0].TotalCents(), 1e-3)
}

func TestParser(t *testing.T) {
	t.Run("honours the configured basis", func(t *testing.T) {
		p := chord.New(chord.Config{NumberOfComponents: 3, Separators: ","})
		c, err := p.Parse("3/2 7/4")
		require.NoError(t, err)
		require.Len(t, c[0].Value.Vector, 3)
		require.Equal(t, "7/1", c[1].Value.Residual.String())

		_, err = p.Parse("[1 2 3 4>")
		require.ErrorIs(t, err, chord.ErrVectorOverflow)
	})

	t.Run("honours the configured separators", func(t *testing.T) {
		p := chord.New(chord.Config{NumberOfComponents: 5, Separators: "_"})
		c, err := p.Parse("3/2_5/4")
		require.NoError(t, err)
		require.Len(t, c, 2)

		_, err = p.Parse("3/2:5/4")
		require.ErrorIs(t, err, chord.ErrMalformedToken)
	})

	t.Run("parses a single interval", func(t *testing.T) {
		i, err := chord.New(chord.DefaultConfig()).ParseInterval(`[0 0 1>-4/1`)
		require.NoError(t, err)
		require.Equal(t, "[-2 0 1>", i.String())
	})
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, chord.DefaultConfig().Validate())
	require.Error(t, chord.Config{NumberOfComponents: 0}.Validate())
	require.Error(t, chord.Config{NumberOfComponents: 5, Separators: ":-"}.Validate())
	require.Error(t, chord.Config{NumberOfComponents: 5, Separators: "/"}.Validate())
}

func notations(c chord.Chord) []string {
	res := make([]string, len(c))
	for i, iv := range c {
		res[i] = iv.String()
	}
	return res
}
