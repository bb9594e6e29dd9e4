// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/prefs"
)

// =============================================================================
// THEME
// =============================================================================

// Theme is the resolved set of styles for one combination of palette,
// dark mode, and renderer. It implements markup.Styler.
type Theme struct {
	Palette  Palette
	Dark     bool
	Renderer *lipgloss.Renderer

	// Frame
	App      lipgloss.Style
	Header   lipgloss.Style
	Name     lipgloss.Style
	Subtitle lipgloss.Style
	TitleBar lipgloss.Style
	Terminal lipgloss.Style

	// Prompt parts
	PromptUser lipgloss.Style
	PromptPath lipgloss.Style
	PromptSign lipgloss.Style

	// Footer hints
	Hint lipgloss.Style

	roles map[markup.Role]lipgloss.Style
}

// NewRenderer returns a renderer for w with its color profile detected
// by termenv.
func NewRenderer(w io.Writer) *lipgloss.Renderer {
	return lipgloss.NewRenderer(w, termenv.WithColorCache(true))
}

// NewPlainRenderer returns a renderer that emits no color codes.
func NewPlainRenderer(w io.Writer) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.Ascii)
	return r
}

// NewTheme resolves the theme for p on renderer r. r's dark-background
// flag is set from p.Dark so adaptive colors follow the preference, not
// the terminal.
func NewTheme(r *lipgloss.Renderer, p prefs.Preferences) *Theme {
	palette, _ := LookupPalette(p.Theme)
	r.SetHasDarkBackground(p.Dark)

	t := &Theme{
		Palette:  palette,
		Dark:     p.Dark,
		Renderer: r,
	}
	t.initStyles()
	return t
}

func (t *Theme) initStyles() {
	r := t.Renderer
	p := t.Palette

	t.App = r.NewStyle().
		Foreground(p.Text).
		Padding(0, 1)

	t.Header = r.NewStyle().
		Background(p.Panel).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Secondary).
		Padding(0, 2)

	t.Name = r.NewStyle().
		Bold(true).
		Foreground(p.Text)

	t.Subtitle = r.NewStyle().
		Foreground(p.Secondary)

	t.TitleBar = r.NewStyle().
		Foreground(p.Secondary).
		Background(p.Panel).
		Padding(0, 1)

	t.Terminal = r.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Secondary).
		Padding(0, 1)

	t.PromptUser = r.NewStyle().Foreground(p.Prompt)
	t.PromptPath = r.NewStyle().Foreground(p.Accent)
	t.PromptSign = r.NewStyle().Foreground(p.Text)

	t.Hint = r.NewStyle().
		Foreground(p.Secondary).
		Italic(true)

	t.roles = map[markup.Role]lipgloss.Style{
		markup.RolePlain:  r.NewStyle().Foreground(p.Text),
		markup.RoleOutput: r.NewStyle().Foreground(Green),
		markup.RoleError:  r.NewStyle().Foreground(Red),
		markup.RoleInput:  r.NewStyle().Foreground(Yellow),
		markup.RoleAccent: r.NewStyle().Foreground(Cyan),
	}
}

// Style returns the style for a markup role.
func (t *Theme) Style(role markup.Role) lipgloss.Style {
	if s, ok := t.roles[role]; ok {
		return s
	}
	return t.roles[markup.RolePlain]
}

// Prompt renders "<user>@portfolio:~$".
func (t *Theme) Prompt(user string) string {
	return t.PromptUser.Render(user+"@portfolio") +
		t.PromptSign.Render(":") +
		t.PromptPath.Render("~") +
		t.PromptSign.Render("$")
}

// Render renders a markup line with this theme.
func (t *Theme) Render(line markup.Line) string {
	return markup.ANSI(line, t)
}
