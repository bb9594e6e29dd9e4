// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// HTML
// =============================================================================

// CSS classes for the web terminal, matching the page stylesheet.
const (
	classBold = "font-semibold"
)

var roleClasses = map[Role]string{
	RoleOutput: "text-green-600 dark:text-green-400",
	RoleError:  "text-red-600 dark:text-red-400",
	RoleInput:  "text-yellow-600 dark:text-yellow-400",
	RoleAccent: "text-cyan-600 dark:text-cyan-400",
}

// Class returns the CSS classes for a role, or "" for RolePlain.
func (r Role) Class() string {
	return roleClasses[r]
}

// HTML renders a line as an HTML fragment. Each wrapper becomes one
// <span>, breaks become <br/>, and text is escaped.
func HTML(line Line) string {
	var sb strings.Builder
	writeHTML(&sb, line)
	return sb.String()
}

func writeHTML(sb *strings.Builder, spans []Span) {
	for _, s := range spans {
		switch s.Kind {
		case KindText:
			sb.WriteString(html.EscapeString(s.Text))
		case KindBreak:
			sb.WriteString("<br/>")
		case KindBold:
			sb.WriteString(`<span class="` + classBold + `">`)
			writeHTML(sb, s.Children)
			sb.WriteString("</span>")
		case KindStyled:
			class := s.Role.Class()
			if class == "" {
				writeHTML(sb, s.Children)
				continue
			}
			sb.WriteString(`<span class="` + class + `">`)
			writeHTML(sb, s.Children)
			sb.WriteString("</span>")
		}
	}
}

// =============================================================================
// ANSI
// =============================================================================

// Styler resolves a role to a terminal style. Themes implement it.
type Styler interface {
	Style(role Role) lipgloss.Style
}

// ANSI renders a line with terminal styling from s.
func ANSI(line Line, s Styler) string {
	var sb strings.Builder
	for _, seg := range Segments(line) {
		if seg.Break {
			sb.WriteByte('\n')
			continue
		}
		st := s.Style(seg.Role)
		if seg.Bold {
			st = st.Bold(true)
		}
		sb.WriteString(st.Render(seg.Text))
	}
	return sb.String()
}

// =============================================================================
// PLAIN TEXT AND MARKERS
// =============================================================================

// PlainText renders a line without any styling.
func PlainText(line Line) string {
	var sb strings.Builder
	for _, seg := range Segments(line) {
		if seg.Break {
			sb.WriteByte('\n')
			continue
		}
		sb.WriteString(seg.Text)
	}
	return sb.String()
}

var roleMarkers = map[Role]string{
	RoleOutput: MarkGreen,
	RoleError:  MarkRed,
	RoleInput:  MarkYellow,
	RoleAccent: MarkCyan,
}

// Markers renders a line back into the legacy marker string. Parse of the
// result yields an equivalent line.
func Markers(line Line) string {
	var sb strings.Builder
	writeMarkers(&sb, line)
	return sb.String()
}

func writeMarkers(sb *strings.Builder, spans []Span) {
	for _, s := range spans {
		switch s.Kind {
		case KindText:
			sb.WriteString(s.Text)
		case KindBreak:
			sb.WriteByte('\n')
		case KindBold:
			sb.WriteString(MarkBold)
			writeMarkers(sb, s.Children)
			sb.WriteString(MarkReset)
		case KindStyled:
			m, ok := roleMarkers[s.Role]
			if !ok {
				writeMarkers(sb, s.Children)
				continue
			}
			sb.WriteString(m)
			writeMarkers(sb, s.Children)
			sb.WriteString(MarkReset)
		}
	}
}
