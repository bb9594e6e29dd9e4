// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/resume"
	"github.com/jeranaias/termfolio/internal/session"
	"github.com/jeranaias/termfolio/internal/storage"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	s := session.New(session.Config{
		Resume:  resume.Static(resume.Default()),
		Store:   storage.NewMemoryStore(),
		Catalog: styles.Catalog(),
	})
	opts.Renderer = styles.NewPlainRenderer(io.Discard)
	m := New(s, opts)
	return send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		require.True(t, ok)
	}
	return m
}

func typeText(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(k tea.KeyType) tea.Msg {
	return tea.KeyMsg{Type: k}
}

func lastLine(m Model) string {
	lines := m.Session().Lines()
	return markup.PlainText(lines[len(lines)-1])
}

func TestLoadingBeforeSize(t *testing.T) {
	s := session.New(session.Config{Resume: resume.Static(resume.Default()), Catalog: styles.Catalog()})
	m := New(s, Options{Renderer: styles.NewPlainRenderer(io.Discard)})
	assert.Equal(t, "Loading...", m.View())
	assert.NotNil(t, m.Init())
}

func TestViewShowsFrame(t *testing.T) {
	m := newTestModel(t, Options{})
	view := m.View()

	assert.Contains(t, view, "Saswat Priyadarshan")
	assert.Contains(t, view, "Software Engineer @ Microsoft")
	assert.Contains(t, view, "terminal — Saswat Priyadarshan")
	assert.Contains(t, view, "Welcome to Saswat Priyadarshan's portfolio!")
	assert.Contains(t, view, "saswat@portfolio:~$")
	assert.Contains(t, view, "complete")
}

func TestTypingAndSubmit(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, typeText("whoami"))
	assert.Equal(t, "whoami", m.Session().Input())

	m = send(t, m, press(tea.KeyEnter))

	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, "Saswat Priyadarshan — Software Engineer @ Microsoft", lastLine(m))
	assert.Contains(t, m.View(), "saswat@portfolio:~$ whoami")
}

func TestTabCompletes(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, typeText("sk"), press(tea.KeyTab))
	assert.Equal(t, "skills", m.input.Value())

	m = send(t, m, press(tea.KeyEnter))
	assert.Equal(t, "Cloud-Native: Azure Service Bus, Event Hub, Kusto DB", lastLine(m))
}

func TestTabCyclesAndTypingResets(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, typeText("e"), press(tea.KeyTab), press(tea.KeyTab))
	assert.Equal(t, "education", m.input.Value())

	m = send(t, m, press(tea.KeyBackspace))
	assert.Equal(t, "educatio", m.Session().Input())

	m = send(t, m, press(tea.KeyTab))
	assert.Equal(t, "education", m.input.Value())
}

func TestHistoryKeys(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m,
		typeText("about"), press(tea.KeyEnter),
		typeText("skills"), press(tea.KeyEnter),
		press(tea.KeyUp), press(tea.KeyUp),
	)
	assert.Equal(t, "about", m.input.Value())

	m = send(t, m, press(tea.KeyDown))
	assert.Equal(t, "skills", m.input.Value())
}

func TestCtrlLClears(t *testing.T) {
	m := newTestModel(t, Options{})
	m = send(t, m, typeText("about"), press(tea.KeyEnter), press(tea.KeyCtrlL))

	assert.Empty(t, m.Session().Lines())
	assert.NotContains(t, m.View(), "Welcome")
}

func TestThemeChangeRebuildsStyles(t *testing.T) {
	m := newTestModel(t, Options{})
	before := m.theme

	m = send(t, m, typeText("theme dracula"), press(tea.KeyEnter))

	assert.NotSame(t, before, m.theme)
	assert.Equal(t, "dracula", m.theme.Palette.Name)
	assert.Equal(t, "theme set to dracula", lastLine(m))
}

func TestResizeChangesWidth(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.Equal(t, 96, m.frameWidth())

	m = send(t, m, typeText("resize small"), press(tea.KeyEnter))
	assert.Equal(t, 64, m.frameWidth())

	m = send(t, m, typeText("resize full"), press(tea.KeyEnter))
	assert.Equal(t, 120, m.frameWidth())

	for _, line := range strings.Split(m.View(), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), 120)
	}
}

func TestDownloadStatus(t *testing.T) {
	m := newTestModel(t, Options{DownloadPath: func() string { return "/tmp/resume.md" }})
	m = send(t, m, typeText("download resume"), press(tea.KeyEnter))

	assert.Contains(t, m.View(), "saved /tmp/resume.md")

	m = send(t, m, typeText("about"), press(tea.KeyEnter))
	assert.NotContains(t, m.View(), "saved /tmp/resume.md")
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newTestModel(t, Options{})
		next, cmd := m.Update(press(k))

		require.NotNil(t, cmd)
		assert.Equal(t, tea.QuitMsg{}, cmd())
		assert.True(t, next.(Model).Quitting())
		assert.Equal(t, "", next.(Model).View())
	}
}
