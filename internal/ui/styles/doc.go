// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the palettes, sizes, and lipgloss styles of the
terminal front ends.

# Palettes (colors.go)

Eight named palettes: default, retro, iterm, dracula, monokai, ocean,
solarized, cyberpunk. Each color is a lipgloss AdaptiveColor whose light
and dark variants are chosen by the dark-mode preference, not by the
host terminal.

Output roles share four adaptive colors across palettes:

	Green  - command output
	Red    - input errors
	Yellow - echoed input
	Cyan   - highlights

# Sizes (sizes.go)

small, medium, large, xlarge, full. Columns drives the TUI width and
MaxWidth the web terminal's CSS.

# Theme (theme.go)

	r := styles.NewRenderer(os.Stdout)
	theme := styles.NewTheme(r, prefs.Defaults())
	fmt.Println(theme.Render(markup.Out("hello")))
*/
package styles
