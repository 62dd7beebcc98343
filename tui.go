package xentui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rapidmidiex/xentui/chordui"
	"github.com/rapidmidiex/xentui/config"
	"github.com/rapidmidiex/xentui/keymap"
	"github.com/rapidmidiex/xentui/keysui"
	"github.com/rapidmidiex/xentui/rtt"
	"github.com/rapidmidiex/xentui/styles"
)

// ********
// Code heavily based on "Project Journal"
// https://github.com/bashbunni/pjs
// https://www.youtube.com/watch?v=uJ2egAkSkjg&t=319s
// ********

type (
	appView int

	mainModel struct {
		curView appView
		chord   chordui.Model
		keys    keysui.Model
		help    help.Model
		width   int

		timings  rtt.Stats
		lastKey  string
		showHelp bool
	}
)

const (
	chordView appView = iota
	keysView
)

func (v appView) String() string {
	if v == keysView {
		return "keys"
	}
	return "chord"
}

// NewModel builds the program model. Chords exported with ctrl+s are written
// to exportPath.
func NewModel(cfg config.Config, exportPath string) mainModel {
	return mainModel{
		curView: chordView,
		chord:   chordui.New(cfg, exportPath),
		keys:    keysui.New(cfg),
		help:    help.New(),
		width:   styles.Width,
	}
}

func (m mainModel) Init() tea.Cmd {
	return tea.Batch(
		m.chord.Init(),
		m.keys.Init(),
	)
}

func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		// Ctrl+c exits. Even with short running programs it's good to have
		// a quit key, just incase your logic is off. Users will be very
		// annoyed if they can't exit.
		case key.Matches(msg, keymap.DefaultMapping.Quit):
			return m, tea.Quit

		case key.Matches(msg, keymap.DefaultMapping.CycleFocus):
			if m.curView == chordView {
				m.curView = keysView
				m.chord.Blur()
			} else {
				m.curView = chordView
				cmds = append(cmds, m.chord.Focus())
			}
			return m, tea.Batch(cmds...)

		case msg.String() == "?" && m.curView == keysView:
			m.showHelp = !m.showHelp
			return m, nil
		}

	case rtt.CalcMsg:
		m.timings = msg.Stats
		return m, nil

	case keysui.KeyPressedMsg:
		m.lastKey = fmt.Sprintf("%s (%s)", msg.Key.Name, msg.Key.KeyBinding)
		return m, nil
	}

	// Call sub-model Updates
	var updated tea.Model
	switch m.curView {
	case chordView:
		updated, cmd = m.chord.Update(msg)
		m.chord = updated.(chordui.Model)
	case keysView:
		updated, cmd = m.keys.Update(msg)
		m.keys = updated.(keysui.Model)
	}

	// Run all commands from sub-model Updates
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m mainModel) View() string {
	doc := strings.Builder{}

	switch m.curView {
	case keysView:
		doc.WriteString(m.keys.View())
	default:
		doc.WriteString(styles.DocStyle.Render(m.chord.View()))
	}

	doc.WriteString(m.statusBar() + "\n")
	if m.showHelp {
		doc.WriteString(styles.HelpMenu.Render(m.help.FullHelpView(keymap.DefaultMapping.FullHelp())))
	} else {
		doc.WriteString(m.help.ShortHelpView(keymap.DefaultMapping.ShortHelp()))
	}
	return doc.String()
}

func (m mainModel) statusBar() string {
	w := lipgloss.Width

	view := styles.StatusStyle.Render(m.curView.String())
	timing := styles.TimingStyle.Render(fmt.Sprintf("parse %v avg %v", m.timings.Latest, m.timings.Avg))
	text := styles.StatusText.Copy().
		Width(max(0, m.width-w(view)-w(timing))).
		Render(m.lastKey)

	bar := lipgloss.JoinHorizontal(lipgloss.Top, view, text, timing)
	return styles.StatusBarStyle.Width(m.width).Render(bar)
}

// Run starts the terminal UI and blocks until the user quits.
func Run(cfg config.Config, exportPath string) error {
	p := tea.NewProgram(NewModel(cfg, exportPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
