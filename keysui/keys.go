package keysui

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rapidmidiex/xentui/chord"
	"github.com/rapidmidiex/xentui/config"
	"github.com/rapidmidiex/xentui/format"
	"github.com/rapidmidiex/xentui/keycolors"
	"github.com/rapidmidiex/xentui/keymap"
	"github.com/rapidmidiex/xentui/styles"
	"github.com/rapidmidiex/xentui/vpiano"
	"github.com/rapidmidiex/xentui/xenerr"
	"golang.org/x/term"
)

const maxDivisions = 72

var docStyle = styles.DocStyle

type (
	// KeyPressedMsg reports the key last played.
	KeyPressedMsg struct {
		Key vpiano.Key
	}

	Model struct {
		keyboard config.Keyboard
		// Divisions the configured gap generator was written for.
		generatorDivisions int
		parser             *chord.Parser
		formatter          format.Formatter
		base               float64

		keys   vpiano.Keys
		keyMap vpiano.KeyBindingMap
		octave int
		// Currently active key binding.
		active string
		err    error
	}
)

func New(cfg config.Config) Model {
	f := format.Default
	f.FractionDigits = cfg.Format.FractionDigits

	m := Model{
		keyboard:           cfg.Keyboard,
		generatorDivisions: cfg.Keyboard.Divisions,
		parser:             chord.New(cfg.ChordConfig()),
		formatter:          f,
		base:               cfg.Tuning.BaseFrequency,
	}
	m.err = m.relayout()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keymap.DefaultMapping.OctaveUp):
			m.octave++
			m.applyOctave()
		case key.Matches(msg, keymap.DefaultMapping.OctaveDown):
			m.octave--
			m.applyOctave()
		case key.Matches(msg, keymap.DefaultMapping.MoreKeys):
			cmd = m.setDivisions(m.keyboard.Divisions + 1)
		case key.Matches(msg, keymap.DefaultMapping.FewerKeys):
			cmd = m.setDivisions(m.keyboard.Divisions - 1)
		case key.Matches(msg, keymap.DefaultMapping.ToggleGap):
			prev := m.keyboard.Layout
			if prev == config.LayoutGap {
				m.keyboard.Layout = config.LayoutAuto
			} else {
				m.keyboard.Layout = config.LayoutGap
			}
			if err := m.relayout(); err != nil {
				m.keyboard.Layout = prev
				cmd = m.reportErr(err)
			}
		case key.Matches(msg, keymap.DefaultMapping.GoBack):
			m.active = ""
		default:
			if k, ok := m.keyMap[msg.String()]; ok {
				m.active = k.KeyBinding
				cmd = keyPressed(k)
			}
		}

	case xenerr.ErrMsg:
		m.err = msg
	}

	return m, cmd
}

func (m Model) View() string {
	physicalWidth, _, _ := term.GetSize(int(os.Stdout.Fd()))
	doc := strings.Builder{}

	if physicalWidth > 0 {
		docStyle = docStyle.MaxWidth(physicalWidth)
	}

	header := fmt.Sprintf("%d-EDO, %s colours, %d keys, octave %+d",
		m.keyboard.Divisions, m.keyboard.Layout, len(m.keys), m.octave)
	doc.WriteString(styles.BoldStyle.Render(header) + "\n\n")

	// Keyboard
	rendered := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		style := styles.WhiteKeyStyle
		if k.IsAccidental {
			style = styles.BlackKeyStyle
		}
		if k.KeyBinding != "" && k.KeyBinding == m.active {
			style = styles.ActiveKeyStyle
		}
		binding := " "
		if k.KeyBinding != "" {
			binding = k.KeyBinding
		}
		rendered = append(rendered, style.Render(k.Name+"\n\n"+"("+binding+")"))
	}
	doc.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, rendered...) + "\n\n")

	if k, ok := m.keyMap[m.active]; ok {
		doc.WriteString(fmt.Sprintf("%s  %sc  %s\n",
			k.Name,
			m.formatter.Exponential(k.Cents),
			m.formatter.Hertz(m.base*math.Exp2(k.Cents/1200)),
		))
	}
	if m.err != nil {
		doc.WriteString(styles.RenderError(m.err.Error()))
	}
	return docStyle.Render(doc.String())
}

// Keys returns the keyboard as currently shifted.
func (m Model) Keys() vpiano.Keys { return m.keys }

func (m Model) Err() error { return m.err }

func (m *Model) setDivisions(n int) tea.Cmd {
	if n < 1 || n > maxDivisions {
		return nil
	}
	prev := m.keyboard.Divisions
	m.keyboard.Divisions = n
	if err := m.relayout(); err != nil {
		m.keyboard.Divisions = prev
		return m.reportErr(err)
	}
	return nil
}

func (m *Model) relayout() error {
	k := m.keyboard
	if k.Divisions != m.generatorDivisions {
		k.Generator = ""
	}
	colors, err := k.Colors(m.parser)
	if err != nil {
		return err
	}
	m.err = nil
	m.setColors(colors)
	return nil
}

func (m *Model) setColors(colors keycolors.Colors) {
	m.keys = vpiano.MakeKeyboard(colors)
	m.applyOctave()
}

func (m *Model) applyOctave() {
	m.keys = m.keys.Shift(m.octave - m.currentOctave())
	m.keyMap = m.keys.ToBindingMap()
}

func (m Model) currentOctave() int {
	if len(m.keys) == 0 {
		return 0
	}
	return floorDiv(m.keys[0].Step, len(m.keys))
}

func (m Model) reportErr(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	return xenerr.Cmd(err)
}

func keyPressed(k vpiano.Key) tea.Cmd {
	return func() tea.Msg {
		return KeyPressedMsg{Key: k}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
