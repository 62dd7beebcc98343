package vpiano_test

import (
	"testing"

	"github.com/rapidmidiex/xentui/keycolors"
	"github.com/rapidmidiex/xentui/vpiano"
	"github.com/stretchr/testify/require"
)

func TestMakeKeyboard(t *testing.T) {
	t.Run("maps a C based 12 key layout like a piano", func(t *testing.T) {
		colors, err := keycolors.Gap(7.0/12, 7, 1)
		require.NoError(t, err)

		got := vpiano.MakeKeyboard(colors)
		wantKeys := []vpiano.Key{
			{Step: 0, Name: `0\12`, Cents: 0, KeyBinding: "a", IsAccidental: false},
			{Step: 1, Name: `1\12`, Cents: 100, KeyBinding: "w", IsAccidental: true},
			{Step: 2, Name: `2\12`, Cents: 200, KeyBinding: "s", IsAccidental: false},
			{Step: 3, Name: `3\12`, Cents: 300, KeyBinding: "e", IsAccidental: true},
			{Step: 4, Name: `4\12`, Cents: 400, KeyBinding: "d", IsAccidental: false},
			{Step: 5, Name: `5\12`, Cents: 500, KeyBinding: "f", IsAccidental: false},
			{Step: 6, Name: `6\12`, Cents: 600, KeyBinding: "t", IsAccidental: true},
			{Step: 7, Name: `7\12`, Cents: 700, KeyBinding: "g", IsAccidental: false},
			{Step: 8, Name: `8\12`, Cents: 800, KeyBinding: "y", IsAccidental: true},
			{Step: 9, Name: `9\12`, Cents: 900, KeyBinding: "h", IsAccidental: false},
			{Step: 10, Name: `10\12`, Cents: 1000, KeyBinding: "u", IsAccidental: true},
			{Step: 11, Name: `11\12`, Cents: 1100, KeyBinding: "j", IsAccidental: false},
		}

		require.Len(t, got, len(wantKeys))
		for i, want := range wantKeys {
			require.Equal(t, want.Step, got[i].Step)
			require.Equal(t, want.Name, got[i].Name)
			require.InDelta(t, want.Cents, got[i].Cents, 1e-9)
			require.Equal(t, want.KeyBinding, got[i].KeyBinding)
			require.Equal(t, want.IsAccidental, got[i].IsAccidental)
		}
	})

	t.Run("leaves keys beyond the rows unbound", func(t *testing.T) {
		got := vpiano.MakeKeyboard(make(keycolors.Colors, 20))
		require.Equal(t, "'", got[10].KeyBinding)
		for _, k := range got[11:] {
			require.Empty(t, k.KeyBinding, k.Name)
		}
		require.Len(t, got.ToBindingMap(), 11)
	})

	t.Run("never binds one key twice", func(t *testing.T) {
		for n := 5; n < 53; n++ {
			keys := vpiano.MakeKeyboard(keycolors.Auto(n))
			seen := map[string]bool{}
			for _, k := range keys {
				if k.KeyBinding == "" {
					continue
				}
				require.False(t, seen[k.KeyBinding], "%d: %s", n, k.KeyBinding)
				seen[k.KeyBinding] = true
			}
		}
	})
}

func TestShift(t *testing.T) {
	keys := vpiano.MakeKeyboard(keycolors.Auto(5)).Shift(1)
	require.Equal(t, 5, keys[0].Step)
	require.Equal(t, `7\5`, keys[2].Name)
	require.InDelta(t, 1680, keys[2].Cents, 1e-9)
	require.Equal(t, "a", keys[0].KeyBinding)
}

func TestToBindingMap(t *testing.T) {
	m := vpiano.MakeKeyboard(keycolors.Auto(12)).ToBindingMap()
	require.Equal(t, 0, m["a"].Step)
	require.True(t, m["w"].IsAccidental)
	require.Equal(t, 1, m["w"].Step)
}
