// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/prefs"
	"github.com/jeranaias/termfolio/internal/session"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// MaxInput bounds the input line, in runes.
const MaxInput = 256

// Options configures the terminal view.
type Options struct {
	// Renderer defaults to one detecting the color profile of stdout.
	Renderer *lipgloss.Renderer

	// DownloadPath reports where the last download was saved. It is
	// shown in the footer after a download.
	DownloadPath func() string
}

// =============================================================================
// MODEL
// =============================================================================

// Model is the Bubble Tea model for the terminal view. All command state
// lives in the session; the model owns layout and widgets.
type Model struct {
	session *session.Session
	opts    Options

	renderer    *lipgloss.Renderer
	theme       *styles.Theme
	themedPrefs prefs.Preferences

	keys     KeyMap
	help     help.Model
	input    textinput.Model
	viewport viewport.Model

	width    int
	height   int
	ready    bool
	status   string
	quitting bool
}

// New creates the terminal view over s.
func New(s *session.Session, opts Options) Model {
	if opts.Renderer == nil {
		opts.Renderer = lipgloss.DefaultRenderer()
	}

	input := textinput.New()
	input.CharLimit = MaxInput
	input.Focus()

	m := Model{
		session:  s,
		opts:     opts,
		renderer: opts.Renderer,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		viewport: viewport.New(0, 0),
	}
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Session returns the session behind the view.
func (m Model) Session() *session.Session {
	return m.session
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}

// =============================================================================
// UPDATE
// =============================================================================

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.layout()
		m.refresh()
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		m.session.SetInput(m.input.Value())
		res := m.session.Submit()
		m.status = ""
		if res.Download != nil && m.opts.DownloadPath != nil {
			if path := m.opts.DownloadPath(); path != "" {
				m.status = "saved " + path
			}
		}
		m.afterCommand()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.session.Run("clear")
		m.afterCommand()
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		m.session.Complete()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.Prev):
		m.session.HistoryPrev()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.session.HistoryNext()
		m.syncInput()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.ViewUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.ViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetInput(m.input.Value())
	return m, cmd
}

// syncInput copies the session's input line into the widget.
func (m *Model) syncInput() {
	m.input.SetValue(m.session.Input())
	m.input.CursorEnd()
}

// afterCommand picks up preference changes and new scrollback.
func (m *Model) afterCommand() {
	m.syncInput()
	if m.session.Prefs() != m.themedPrefs {
		m.applyTheme()
		m.layout()
	}
	m.refresh()
}

func (m *Model) applyTheme() {
	p := m.session.Prefs()
	m.theme = styles.NewTheme(m.renderer, p)
	m.themedPrefs = p

	m.input.Prompt = m.theme.Prompt(m.session.PromptUser()) + " "
	m.input.TextStyle = m.theme.Style(markup.RolePlain)
	m.input.Cursor.Style = m.theme.PromptUser

	m.help.Styles.ShortKey = m.theme.Hint.Bold(true)
	m.help.Styles.ShortDesc = m.theme.Hint
	m.help.Styles.ShortSeparator = m.theme.Hint
}
