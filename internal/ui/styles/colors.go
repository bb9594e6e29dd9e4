// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/charmbracelet/lipgloss"

// =============================================================================
// ROLE COLORS
// =============================================================================

// Green - Regular command output
var Green = lipgloss.AdaptiveColor{Light: "#16A34A", Dark: "#4ADE80"}

// Red - User-input errors
var Red = lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#F87171"}

// Yellow - Echoed input
var Yellow = lipgloss.AdaptiveColor{Light: "#CA8A04", Dark: "#FACC15"}

// Cyan - Highlights
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// =============================================================================
// PALETTE
// =============================================================================

// Palette is one named color scheme. Every color has a light and a dark
// variant; the renderer's background setting picks one.
type Palette struct {
	Name       string
	Background lipgloss.AdaptiveColor
	Text       lipgloss.AdaptiveColor
	Panel      lipgloss.AdaptiveColor
	Prompt     lipgloss.AdaptiveColor
	Secondary  lipgloss.AdaptiveColor
	Accent     lipgloss.AdaptiveColor
}

func adaptive(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

// palettes is ordered; the order is the one shown to users.
var palettes = []Palette{
	{
		Name:       "default",
		Background: adaptive("#F9FAFB", "#111827"),
		Text:       adaptive("#111827", "#F3F4F6"),
		Panel:      adaptive("#FFFFFF", "#1F2937"),
		Prompt:     adaptive("#2563EB", "#60A5FA"),
		Secondary:  adaptive("#374151", "#D1D5DB"),
		Accent:     adaptive("#2563EB", "#60A5FA"),
	},
	{
		Name:       "retro",
		Background: adaptive("#F4F1DE", "#0B0C10"),
		Text:       adaptive("#333333", "#E6E6E6"),
		Panel:      adaptive("#FFFFFF", "#1F2833"),
		Prompt:     adaptive("#2A9D8F", "#66FCF1"),
		Secondary:  adaptive("#555555", "#B3B3B3"),
		Accent:     adaptive("#2A9D8F", "#66FCF1"),
	},
	{
		Name:       "iterm",
		Background: adaptive("#F7F7F7", "#1D1F21"),
		Text:       adaptive("#333333", "#C5C8C6"),
		Panel:      adaptive("#FFFFFF", "#282A2E"),
		Prompt:     adaptive("#007ACC", "#81A2BE"),
		Secondary:  adaptive("#666666", "#969896"),
		Accent:     adaptive("#007ACC", "#81A2BE"),
	},
	{
		Name:       "dracula",
		Background: adaptive("#F8F8F2", "#282A36"),
		Text:       adaptive("#282A36", "#F8F8F2"),
		Panel:      adaptive("#FFFFFF", "#44475A"),
		Prompt:     adaptive("#8BE9FD", "#8BE9FD"),
		Secondary:  adaptive("#6272A4", "#6272A4"),
		Accent:     adaptive("#FF79C6", "#FF79C6"),
	},
	{
		Name:       "monokai",
		Background: adaptive("#F8F8F2", "#272822"),
		Text:       adaptive("#272822", "#F8F8F2"),
		Panel:      adaptive("#FFFFFF", "#3E3D32"),
		Prompt:     adaptive("#A6E22E", "#A6E22E"),
		Secondary:  adaptive("#75715E", "#75715E"),
		Accent:     adaptive("#F92672", "#F92672"),
	},
	{
		Name:       "ocean",
		Background: adaptive("#EFF1F5", "#2B303B"),
		Text:       adaptive("#2B303B", "#C0C5CE"),
		Panel:      adaptive("#FFFFFF", "#343D46"),
		Prompt:     adaptive("#8FA1B3", "#8FA1B3"),
		Secondary:  adaptive("#65737E", "#65737E"),
		Accent:     adaptive("#BF616A", "#BF616A"),
	},
	{
		Name:       "solarized",
		Background: adaptive("#FDF6E3", "#002B36"),
		Text:       adaptive("#586E75", "#839496"),
		Panel:      adaptive("#FDF6E3", "#073642"),
		Prompt:     adaptive("#268BD2", "#268BD2"),
		Secondary:  adaptive("#93A1A1", "#586E75"),
		Accent:     adaptive("#2AA198", "#2AA198"),
	},
	{
		Name:       "cyberpunk",
		Background: adaptive("#F0F3FF", "#0F0F23"),
		Text:       adaptive("#0F0F23", "#00FF41"),
		Panel:      adaptive("#FFFFFF", "#1A1A2E"),
		Prompt:     adaptive("#FF0080", "#FF0080"),
		Secondary:  adaptive("#666666", "#00D4AA"),
		Accent:     adaptive("#00D4AA", "#FFCC02"),
	},
}

// ThemeNames returns the known theme names in display order.
func ThemeNames() []string {
	names := make([]string, len(palettes))
	for i, p := range palettes {
		names[i] = p.Name
	}
	return names
}

// LookupPalette returns the named palette, or the default palette and
// false when name is unknown.
func LookupPalette(name string) (Palette, bool) {
	for _, p := range palettes {
		if p.Name == name {
			return p, true
		}
	}
	return palettes[0], false
}

// Pick returns the light or dark variant of c.
func Pick(c lipgloss.AdaptiveColor, dark bool) string {
	if dark {
		return c.Dark
	}
	return c.Light
}
