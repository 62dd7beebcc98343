package keysui_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rapidmidiex/xentui/config"
	"github.com/rapidmidiex/xentui/keycolors"
	"github.com/rapidmidiex/xentui/keysui"
	"github.com/rapidmidiex/xentui/xenerr"
	"github.com/stretchr/testify/require"
)

func press(t *testing.T, m keysui.Model, keys ...tea.KeyMsg) (keysui.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var updated tea.Model
		updated, cmd = m.Update(k)
		m = updated.(keysui.Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeysView(t *testing.T) {
	t.Run("lays out the configured keyboard", func(t *testing.T) {
		m := keysui.New(config.Default())
		require.NoError(t, m.Err())
		require.Len(t, m.Keys(), 12)
		require.True(t, m.Keys()[1].IsAccidental)
		require.False(t, m.Keys()[3].IsAccidental)
	})

	t.Run("plays a bound key", func(t *testing.T) {
		m := keysui.New(config.Default())
		m, cmd := press(t, m, runes("g"))
		require.NotNil(t, cmd)

		msg, ok := cmd().(keysui.KeyPressedMsg)
		require.True(t, ok)
		require.Equal(t, 7, msg.Key.Step)
		require.InDelta(t, 700, msg.Key.Cents, 1e-9)
		require.Contains(t, m.View(), "700.000c")
	})

	t.Run("ignores unbound keys", func(t *testing.T) {
		m := keysui.New(config.Default())
		_, cmd := press(t, m, runes("b"))
		require.Nil(t, cmd)
	})

	t.Run("shifts octaves", func(t *testing.T) {
		m := keysui.New(config.Default())
		m, _ = press(t, m, runes("x"))
		require.Equal(t, 12, m.Keys()[0].Step)
		require.Equal(t, `12\12`, m.Keys()[0].Name)

		m, _ = press(t, m, runes("z"), runes("z"))
		require.Equal(t, -12, m.Keys()[0].Step)
		require.InDelta(t, -1200, m.Keys()[0].Cents, 1e-9)
	})

	t.Run("changes the number of divisions", func(t *testing.T) {
		m := keysui.New(config.Default())
		m, _ = press(t, m, runes("="))
		require.Len(t, m.Keys(), 13)

		m, _ = press(t, m, runes("-"), runes("-"))
		require.Len(t, m.Keys(), 11)
	})

	t.Run("keeps the octave when the divisions change", func(t *testing.T) {
		m := keysui.New(config.Default())
		m, _ = press(t, m, runes("x"), runes("="))
		require.Equal(t, 13, m.Keys()[0].Step)
		require.Equal(t, `13\13`, m.Keys()[0].Name)
	})

	t.Run("toggles gap colouring", func(t *testing.T) {
		m := keysui.New(config.Default())
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
		require.NoError(t, m.Err())

		want, err := keycolors.Gap(keycolors.FifthGenerator(12), 7, 1)
		require.NoError(t, err)
		require.Len(t, m.Keys(), len(want))
		for i, k := range m.Keys() {
			require.Equal(t, want[i] == keycolors.Black, k.IsAccidental, "key %d", i)
		}
	})

	t.Run("keeps one key per division in gap colouring", func(t *testing.T) {
		cfg := config.Default()
		cfg.Keyboard.Divisions = 17
		m := keysui.New(cfg)
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
		require.NoError(t, m.Err())
		require.Len(t, m.Keys(), 17)
		require.Equal(t, `16\17`, m.Keys()[16].Name)
		require.Contains(t, m.View(), "17-EDO, gap colours, 17 keys")

		m, _ = press(t, m, runes("="), runes("="))
		require.NoError(t, m.Err())
		require.Len(t, m.Keys(), 19)
	})

	t.Run("reports a layout that cannot be coloured", func(t *testing.T) {
		cfg := config.Default()
		cfg.Keyboard.Divisions = 5
		m := keysui.New(cfg)
		m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlG})
		require.NotNil(t, cmd)
		require.Len(t, m.Keys(), 5)

		msg, ok := cmd().(xenerr.ErrMsg)
		require.True(t, ok)
		require.ErrorIs(t, msg, keycolors.ErrDegenerateChain)

		updated, _ := m.Update(msg)
		m = updated.(keysui.Model)
		require.ErrorIs(t, m.Err(), keycolors.ErrDegenerateChain)
		require.Contains(t, m.View(), "Error")
	})
}
