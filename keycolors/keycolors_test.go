package keycolors_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/rapidmidiex/xentui/keycolors"
	"github.com/stretchr/testify/require"
)

func TestAuto(t *testing.T) {
	t.Run("produces the chromatic scale starting from A with 12 notes", func(t *testing.T) {
		require.Equal(t,
			"white black white white black white black white white black white black",
			keycolors.Auto(12).String())
	})

	t.Run("produces something reasonable with 17 notes", func(t *testing.T) {
		require.Equal(t,
			"white white black white white white black white white black white white white black white white black",
			keycolors.Auto(17).String())
	})

	t.Run("returns one colour per key", func(t *testing.T) {
		for n := 1; n < 100; n++ {
			require.Len(t, keycolors.Auto(n), n)
		}
	})

	t.Run("never puts two black keys on one pitch class", func(t *testing.T) {
		for n := 13; n < 72; n++ {
			blacks := 0
			for _, c := range keycolors.Auto(n) {
				if c == keycolors.Black {
					blacks++
				}
			}
			require.Equal(t, 5, blacks, n)
		}
	})

	t.Run("keeps black keys fewer than white keys on small keyboards", func(t *testing.T) {
		require.Equal(t, "white white", keycolors.Auto(2).String())
		require.Equal(t, "white white black white", keycolors.Auto(4).String())
		for n := 1; n < 12; n++ {
			blacks := 0
			for i, c := range keycolors.Auto(n) {
				if c == keycolors.Black {
					blacks++
					require.NotEqual(t, keycolors.Black, keycolors.Auto(n)[i-1], n)
				}
			}
			require.Less(t, 2*blacks, n, n)
		}
	})

	t.Run("returns nothing for an empty keyboard", func(t *testing.T) {
		require.Empty(t, keycolors.Auto(0))
		require.Empty(t, keycolors.Auto(-3))
	})

	t.Run("is deterministic", func(t *testing.T) {
		require.Equal(t, keycolors.Auto(31), keycolors.Auto(31))
	})
}

func TestGap(t *testing.T) {
	t.Run("produces a chromatic layout with the major scale in 12edo", func(t *testing.T) {
		colors, err := keycolors.Gap(7.0/12, 7, 1)
		require.NoError(t, err)
		require.Equal(t,
			"white black white black white white black white black white black white",
			colors.String())
	})

	t.Run("matches the best fifth of 12 divisions", func(t *testing.T) {
		want, err := keycolors.Gap(7.0/12, 7, 1)
		require.NoError(t, err)
		got, err := keycolors.Gap(keycolors.FifthGenerator(12), 7, 1)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("gives one key per division and one white key per generator", func(t *testing.T) {
		for _, n := range []int{12, 17, 19, 22, 31} {
			colors, err := keycolors.Gap(keycolors.FifthGenerator(n), 7, 1)
			require.NoError(t, err, n)
			require.Len(t, colors, n)
			whites := 0
			for _, c := range colors {
				if c == keycolors.White {
					whites++
				}
			}
			require.Equal(t, 7, whites, n)
			require.Equal(t, keycolors.White, colors[0], n)
		}
	})

	t.Run("colours 17 divisions with two black keys in every large step", func(t *testing.T) {
		colors, err := keycolors.Gap(10.0/17, 7, 1)
		require.NoError(t, err)
		require.Equal(t,
			"white black black white black black white white black black white black black white black black white",
			colors.String())
	})

	t.Run("follows the gaps of a generator outside any small division", func(t *testing.T) {
		colors, err := keycolors.Gap(math.Log2(1.5), 7, 1)
		require.NoError(t, err)
		require.Equal(t,
			"white black white black white white black white black white black white",
			colors.String())
	})

	t.Run("treats a single key as a white octave", func(t *testing.T) {
		colors, err := keycolors.Gap(math.Log2(1.5), 1, 0)
		require.NoError(t, err)
		require.Equal(t, keycolors.Colors{keycolors.White}, colors)
	})

	t.Run("rejects a non-finite generator", func(t *testing.T) {
		_, err := keycolors.Gap(math.NaN(), 7, 1)
		require.ErrorIs(t, err, keycolors.ErrInvalidGenerator)
		_, err = keycolors.Gap(math.Inf(1), 7, 1)
		require.ErrorIs(t, err, keycolors.ErrInvalidGenerator)
	})

	t.Run("rejects an empty or oversized chain", func(t *testing.T) {
		_, err := keycolors.Gap(7.0/12, 0, 1)
		require.ErrorIs(t, err, keycolors.ErrWhiteKeyCount)
		_, err = keycolors.Gap(7.0/12, keycolors.MaxKeys+1, 1)
		require.ErrorIs(t, err, keycolors.ErrWhiteKeyCount)
	})

	t.Run("rejects a chain that closes early", func(t *testing.T) {
		_, err := keycolors.Gap(0.5, 3, 0)
		require.ErrorIs(t, err, keycolors.ErrDegenerateChain)
	})
}

func TestGapDivided(t *testing.T) {
	t.Run("quantizes any generator onto the keyboard", func(t *testing.T) {
		colors, err := keycolors.GapDivided(math.Log2(1.5), 7, 1, 12)
		require.NoError(t, err)
		require.Equal(t,
			"white black white black white white black white black white black white",
			colors.String())
	})

	t.Run("returns one colour per division", func(t *testing.T) {
		for n := 12; n <= 72; n++ {
			colors, err := keycolors.GapDivided(keycolors.FifthGenerator(n), 7, 1, n)
			if err != nil {
				require.ErrorIs(t, err, keycolors.ErrDegenerateChain, n)
				continue
			}
			require.Len(t, colors, n)
		}
	})

	t.Run("rejects keyboards out of range", func(t *testing.T) {
		_, err := keycolors.GapDivided(7.0/12, 7, 1, 0)
		require.ErrorIs(t, err, keycolors.ErrDivisions)
		_, err = keycolors.GapDivided(7.0/12, 7, 1, keycolors.MaxKeys+1)
		require.ErrorIs(t, err, keycolors.ErrDivisions)
	})

	t.Run("rejects more white keys than divisions", func(t *testing.T) {
		_, err := keycolors.GapDivided(3.0/5, 7, 1, 5)
		require.ErrorIs(t, err, keycolors.ErrDegenerateChain)
	})
}

func TestDivisions(t *testing.T) {
	n, ok := keycolors.Divisions(7.0 / 12)
	require.True(t, ok)
	require.Equal(t, 12, n)

	n, ok = keycolors.Divisions(keycolors.FifthGenerator(31))
	require.True(t, ok)
	require.Equal(t, 31, n)

	_, ok = keycolors.Divisions(math.Log2(1.5))
	require.False(t, ok)
	_, ok = keycolors.Divisions(math.NaN())
	require.False(t, ok)
}

func TestFifthGenerator(t *testing.T) {
	require.Equal(t, 7.0/12, keycolors.FifthGenerator(12))
	require.Equal(t, 11.0/19, keycolors.FifthGenerator(19))
	require.Equal(t, 18.0/31, keycolors.FifthGenerator(31))
	require.True(t, math.IsNaN(keycolors.FifthGenerator(0)))
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(keycolors.Colors{keycolors.White, keycolors.Black})
	require.NoError(t, err)
	require.JSONEq(t, `["white", "black"]`, string(data))

	var got keycolors.Colors
	require.NoError(t, json.Unmarshal([]byte(`["black","white"]`), &got))
	require.Equal(t, keycolors.Colors{keycolors.Black, keycolors.White}, got)

	require.Error(t, json.Unmarshal([]byte(`["grey"]`), &got))
	_, err = json.Marshal(keycolors.Color(7))
	require.Error(t, err)
}
