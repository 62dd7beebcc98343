package vpiano

import (
	"fmt"

	"github.com/rapidmidiex/xentui/keycolors"
)

type (
	Key struct {
		// Step of the equal division, counted from the first key.
		Step int
		// Name of the key in equal temperament notation, ex: "7\12"
		Name string
		// Size of the step above the first key.
		Cents float64
		// Denotes a "black" key.
		IsAccidental bool
		// qwerty keyboard key binding, empty when the rows run out.
		KeyBinding string
	}

	Keys []Key

	KeyBindingMap map[string]Key
)

var (
	// Naturals sit on the home row.
	homeRow = []string{"a", "s", "d", "f", "g", "h", "j", "k", "l", ";", "'"}
	// Accidentals sit on the row above, between the naturals they separate.
	topRow = []string{"q", "w", "e", "r", "t", "y", "u", "i", "o", "p", "[", "]"}
)

// MakeKeyboard lays out one octave of len(colors) equal divisions. The
// keybindings follow the colours so that a layout starting at C maps close to
// the usual piano fingering: "a" "w" "s" "e" "d" "f" "t" ...
func MakeKeyboard(colors keycolors.Colors) Keys {
	n := len(colors)
	keys := make(Keys, 0, n)
	whites := 0
	lastTop := -1

	for step, c := range colors {
		k := Key{
			Step:         step,
			Name:         fmt.Sprintf(`%d\%d`, step, n),
			Cents:        1200 * float64(step) / float64(n),
			IsAccidental: c == keycolors.Black,
		}
		switch {
		case !k.IsAccidental:
			if whites < len(homeRow) {
				k.KeyBinding = homeRow[whites]
			}
			whites++
		case whites < len(topRow) && whites != lastTop:
			k.KeyBinding = topRow[whites]
			lastTop = whites
		}
		keys = append(keys, k)
	}

	return keys
}

// Shift moves every key by whole octaves.
func (keys Keys) Shift(octaves int) Keys {
	n := len(keys)
	res := make(Keys, n)
	for i, k := range keys {
		k.Step += octaves * n
		k.Name = fmt.Sprintf(`%d\%d`, k.Step, n)
		k.Cents += 1200 * float64(octaves)
		res[i] = k
	}
	return res
}

func (keys Keys) ToBindingMap() KeyBindingMap {
	kMap := make(KeyBindingMap, len(keys))
	for _, k := range keys {
		if k.KeyBinding == "" {
			continue
		}
		kMap[k.KeyBinding] = k
	}
	return kMap
}
