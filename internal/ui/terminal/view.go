// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/termfolio/internal/ui/styles"
	"github.com/jeranaias/termfolio/internal/util"
)

// =============================================================================
// LAYOUT
// =============================================================================

// Layout: header box, title bar (1 line), terminal box holding the
// scrollback viewport and the prompt line, footer (1 line).

// frameWidth is the width of the whole block for the current size.
func (m Model) frameWidth() int {
	size, _ := styles.LookupSize(m.themedPrefs.Size)
	return max(size.Width(m.width), 20)
}

// innerWidth is the text width inside the terminal box.
func (m Model) innerWidth() int {
	return max(m.frameWidth()-m.theme.Terminal.GetHorizontalFrameSize(), 1)
}

// layout sizes the viewport and input to the window.
func (m *Model) layout() {
	if !m.ready {
		return
	}

	header := m.renderHeader()
	fixed := lipgloss.Height(header) +
		1 + // title bar
		m.theme.Terminal.GetVerticalFrameSize() +
		1 + // prompt line
		1 // footer

	m.viewport.Width = m.innerWidth()
	m.viewport.Height = max(m.height-fixed, 1)
	m.input.Width = max(m.innerWidth()-lipgloss.Width(m.input.Prompt)-1, 1)
}

// refresh re-renders the scrollback into the viewport and scrolls to the
// newest line.
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	wrap := m.renderer.NewStyle().Width(m.innerWidth())
	lines := m.session.Lines()
	rendered := make([]string, len(lines))
	for i, line := range lines {
		rendered[i] = wrap.Render(m.theme.Render(line))
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
	m.viewport.GotoBottom()
}

// =============================================================================
// VIEW
// =============================================================================

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	w := m.frameWidth()
	block := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderTitleBar(),
		m.renderTerminal(),
		m.renderFooter(),
	)
	return m.renderer.PlaceHorizontal(max(m.width, w), lipgloss.Center, block)
}

func (m Model) renderHeader() string {
	w := m.frameWidth()
	textWidth := w - m.theme.Header.GetHorizontalFrameSize()
	r := m.session.Resume()

	name := m.theme.Name.Render(util.TruncateWidth(r.Name, textWidth))
	title := m.theme.Subtitle.Render(util.TruncateWidth(r.Title, textWidth))
	return m.theme.Header.
		Width(w - m.theme.Header.GetHorizontalBorderSize()).
		Render(name + "\n" + title)
}

func (m Model) renderTitleBar() string {
	w := m.frameWidth()
	text := "terminal — " + m.session.Resume().Name
	return m.theme.TitleBar.
		Width(w).
		Render(util.TruncateWidth(text, w-m.theme.TitleBar.GetHorizontalPadding()))
}

func (m Model) renderTerminal() string {
	w := m.frameWidth()
	body := m.viewport.View() + "\n" + m.input.View()
	return m.theme.Terminal.
		Width(w - m.theme.Terminal.GetHorizontalBorderSize()).
		Render(body)
}

func (m Model) renderFooter() string {
	w := m.frameWidth()
	if m.status != "" {
		return m.theme.Hint.Render(util.TruncateWidth(m.status, w))
	}
	h := m.help
	h.Width = w
	return h.View(m.keys)
}
