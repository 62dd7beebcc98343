package keymap

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type Mapping struct {
	CycleFocus  key.Binding
	GoBack      key.Binding
	Quit        key.Binding
	OctaveUp    key.Binding
	OctaveDown  key.Binding
	MoreKeys    key.Binding
	FewerKeys   key.Binding
	ToggleGap   key.Binding
	ExportChord key.Binding
}

var DefaultMapping = Mapping{
	CycleFocus: key.NewBinding(
		key.WithKeys(tea.KeyTab.String()),
		key.WithHelp("tab", "switch view"),
	),
	GoBack: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Quit: key.NewBinding(
		key.WithKeys(tea.KeyCtrlC.String()),
		key.WithHelp("ctrl+c", "quit"),
	),
	OctaveUp: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "octave up"),
	),
	OctaveDown: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "octave down"),
	),
	MoreKeys: key.NewBinding(
		key.WithKeys("="),
		key.WithHelp("=", "more divisions"),
	),
	FewerKeys: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "fewer divisions"),
	),
	ToggleGap: key.NewBinding(
		key.WithKeys(tea.KeyCtrlG.String()),
		key.WithHelp("ctrl+g", "auto/gap colours"),
	),
	ExportChord: key.NewBinding(
		key.WithKeys(tea.KeyCtrlS.String()),
		key.WithHelp("ctrl+s", "save as MIDI"),
	),
}

// ShortHelp implements help.KeyMap.
func (m Mapping) ShortHelp() []key.Binding {
	return []key.Binding{m.CycleFocus, m.GoBack, m.Quit}
}

// FullHelp implements help.KeyMap.
func (m Mapping) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.CycleFocus, m.GoBack, m.Quit},
		{m.OctaveUp, m.OctaveDown, m.MoreKeys, m.FewerKeys, m.ToggleGap},
		{m.ExportChord},
	}
}
