// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/prefs"
)

func TestThemeNames(t *testing.T) {
	want := []string{"default", "retro", "iterm", "dracula", "monokai", "ocean", "solarized", "cyberpunk"}
	assert.Equal(t, want, ThemeNames())
}

func TestSizeNames(t *testing.T) {
	assert.Equal(t, []string{"small", "medium", "large", "xlarge", "full"}, SizeNames())
}

func TestLookupPalette(t *testing.T) {
	p, ok := LookupPalette("dracula")
	require.True(t, ok)
	assert.Equal(t, "#FF79C6", p.Accent.Dark)

	p, ok = LookupPalette("neon")
	assert.False(t, ok)
	assert.Equal(t, "default", p.Name)
}

func TestPalettesAreComplete(t *testing.T) {
	for _, p := range palettes {
		for name, c := range map[string]lipgloss.AdaptiveColor{
			"background": p.Background,
			"text":       p.Text,
			"panel":      p.Panel,
			"prompt":     p.Prompt,
			"secondary":  p.Secondary,
			"accent":     p.Accent,
		} {
			if c.Light == "" || c.Dark == "" {
				t.Errorf("palette %s: %s color incomplete", p.Name, name)
			}
		}
	}
}

func TestSizeWidth(t *testing.T) {
	tests := []struct {
		size   string
		window int
		want   int
	}{
		{"small", 200, 64},
		{"medium", 200, 96},
		{"xlarge", 120, 120},
		{"full", 150, 150},
	}
	for _, tt := range tests {
		s, ok := LookupSize(tt.size)
		require.True(t, ok)
		if got := s.Width(tt.window); got != tt.want {
			t.Errorf("LookupSize(%q).Width(%d) = %d, want %d", tt.size, tt.window, got, tt.want)
		}
	}

	s, ok := LookupSize("huge")
	assert.False(t, ok)
	assert.Equal(t, "medium", s.Name)
}

func TestCatalog(t *testing.T) {
	c := Catalog()
	assert.True(t, c.HasTheme("cyberpunk"))
	assert.True(t, c.HasSize("full"))
	assert.False(t, c.HasSize("huge"))
}

func TestNewThemeFollowsDarkPreference(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)

	NewTheme(r, prefs.Preferences{Dark: false, Theme: "default", Size: "medium"})
	assert.False(t, r.HasDarkBackground())

	theme := NewTheme(r, prefs.Preferences{Dark: true, Theme: "monokai", Size: "medium"})
	assert.True(t, r.HasDarkBackground())
	assert.Equal(t, "monokai", theme.Palette.Name)
}

func TestThemeRendersPlainOnAsciiProfile(t *testing.T) {
	theme := NewTheme(NewPlainRenderer(io.Discard), prefs.Defaults())

	got := theme.Render(markup.Line{markup.Text("a"), markup.Styled(markup.RoleError, markup.Text("b"))})
	assert.Equal(t, "ab", got)
	assert.Equal(t, "guest@portfolio:~$", theme.Prompt("guest"))
}

func TestThemeRendersColorOnTrueColor(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	theme := NewTheme(r, prefs.Defaults())

	got := theme.Render(markup.Err("bad"))
	assert.True(t, strings.Contains(got, "\x1b["), "expected escape codes in %q", got)
	assert.Contains(t, got, "bad")
}

func TestPick(t *testing.T) {
	assert.Equal(t, "#4ADE80", Pick(Green, true))
	assert.Equal(t, "#16A34A", Pick(Green, false))
}
