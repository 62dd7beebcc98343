package chordui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rapidmidiex/xentui/chord"
	"github.com/rapidmidiex/xentui/config"
	"github.com/rapidmidiex/xentui/format"
	"github.com/rapidmidiex/xentui/keymap"
	"github.com/rapidmidiex/xentui/midi"
	"github.com/rapidmidiex/xentui/rtt"
	"github.com/rapidmidiex/xentui/styles"
	"github.com/rapidmidiex/xentui/xenerr"
)

// Parse timings kept for the status bar.
const maxTimings = 50

type (
	ExportedMsg struct {
		Path string
	}

	Model struct {
		input      textinput.Model
		table      table.Model
		parser     *chord.Parser
		formatter  format.Formatter
		midiOpts   midi.Options
		exportPath string

		chord   chord.Chord
		err     error
		status  string
		timings []time.Duration
	}
)

// New builds the chord view. exportPath is where ctrl+s writes the chord.
func New(cfg config.Config, exportPath string) Model {
	ti := textinput.New()
	ti.Placeholder = `3/2 701.955 7\12 [-1 1>`
	ti.Prompt = "┃ "
	ti.CharLimit = 512
	ti.Width = styles.Width - 4
	ti.Focus()

	f := format.Default
	f.FractionDigits = cfg.Format.FractionDigits

	o := midi.DefaultOptions()
	o.BaseFrequency = cfg.Tuning.BaseFrequency
	o.BendRange = cfg.Tuning.BendRange
	o.IncludeRoot = true

	m := Model{
		input:      ti,
		parser:     chord.New(cfg.ChordConfig()),
		formatter:  f,
		midiOpts:   o,
		exportPath: exportPath,
	}
	m.table = makeIntervalTable(nil, m)
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.table.SetWidth(msg.Width - 10)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keymap.DefaultMapping.GoBack):
			m.input.Reset()
			cmds = append(cmds, m.reparse())
			return m, tea.Batch(cmds...)
		case key.Matches(msg, keymap.DefaultMapping.ExportChord):
			cmds = append(cmds, m.export())
			return m, tea.Batch(cmds...)
		}

	case ExportedMsg:
		m.status = "saved " + msg.Path
		m.err = nil

	// We handle errors just like any other message
	case xenerr.ErrMsg:
		m.err = msg
		return m, nil
	}

	before := m.input.Value()
	var tiCmd tea.Cmd
	m.input, tiCmd = m.input.Update(msg)
	cmds = append(cmds, tiCmd)
	if m.input.Value() != before {
		cmds = append(cmds, m.reparse())
	}

	return m, tea.Batch(cmds...)
}

// reparse reads the input again and reports how long it took.
func (m *Model) reparse() tea.Cmd {
	start := time.Now()
	c, err := m.parser.Parse(m.input.Value())
	took := time.Since(start)

	m.status = ""
	if err != nil {
		m.err = err
	} else {
		m.err = nil
		m.chord = c
		m.table.SetRows(m.rows(c))
	}

	cmd := rtt.CalcStats(took, m.timings)
	m.timings = append(m.timings, took)
	if len(m.timings) > maxTimings {
		m.timings = m.timings[1:]
	}
	return cmd
}

func (m Model) View() string {
	doc := strings.Builder{}
	doc.WriteString(m.input.View() + "\n\n")
	doc.WriteString(styles.BaseStyle.Width(styles.Width).Render(m.table.View()))
	doc.WriteString("\n")

	switch {
	case m.err != nil:
		doc.WriteString(styles.RenderError(m.err.Error()))
	case m.status != "":
		doc.WriteString(styles.DimStyle.Render(m.status))
	default:
		doc.WriteString(styles.DimStyle.Render(fmt.Sprintf("%d tones", len(m.chord))))
	}
	return doc.String() + "\n"
}

// Chord returns the last chord that parsed without errors.
func (m Model) Chord() chord.Chord { return m.chord }

func (m Model) Err() error { return m.err }

func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Blur() {
	m.input.Blur()
}

func (m Model) rows(c chord.Chord) []table.Row {
	rows := make([]table.Row, 0, len(c))
	for i, iv := range c {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", i+1),
			iv.Type.String(),
			iv.String(),
			m.formatter.Exponential(iv.TotalCents()),
			m.formatter.Hertz(midi.Frequency(m.midiOpts.BaseFrequency, iv)),
		})
	}
	return rows
}

func (m Model) export() tea.Cmd {
	c, path, o := m.chord, m.exportPath, m.midiOpts
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return xenerr.ErrMsg{Err: fmt.Errorf("export: %w", err)}
		}
		defer f.Close()
		if err := midi.WriteChord(f, c, o); err != nil {
			return xenerr.ErrMsg{Err: fmt.Errorf("export: %w", err)}
		}
		return ExportedMsg{Path: path}
	}
}

func makeIntervalTable(c chord.Chord, m Model) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Type", Width: 17},
		{Title: "Notation", Width: 16},
		{Title: "Cents", Width: 11},
		{Title: "Frequency", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(m.rows(c)),
		table.WithFocused(false),
		table.WithHeight(7),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}
