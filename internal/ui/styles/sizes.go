// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import "github.com/jeranaias/termfolio/internal/prefs"

// Size is a named terminal width.
type Size struct {
	Name string
	// Columns is the TUI width; 0 means the full window.
	Columns int
	// MaxWidth is the CSS max-width of the web terminal.
	MaxWidth string
}

var sizes = []Size{
	{Name: "small", Columns: 64, MaxWidth: "36rem"},
	{Name: "medium", Columns: 96, MaxWidth: "48rem"},
	{Name: "large", Columns: 128, MaxWidth: "64rem"},
	{Name: "xlarge", Columns: 160, MaxWidth: "80rem"},
	{Name: "full", Columns: 0, MaxWidth: "none"},
}

// SizeNames returns the known size names in display order.
func SizeNames() []string {
	names := make([]string, len(sizes))
	for i, s := range sizes {
		names[i] = s.Name
	}
	return names
}

// LookupSize returns the named size, or medium and false when unknown.
func LookupSize(name string) (Size, bool) {
	for _, s := range sizes {
		if s.Name == name {
			return s, true
		}
	}
	return sizes[1], false
}

// Width returns the usable column count for a size in a window of
// windowWidth columns.
func (s Size) Width(windowWidth int) int {
	if s.Columns == 0 || s.Columns > windowWidth {
		return windowWidth
	}
	return s.Columns
}

// Catalog returns the theme and size names as a preference catalog.
func Catalog() prefs.Catalog {
	return prefs.Catalog{Themes: ThemeNames(), Sizes: SizeNames()}
}
