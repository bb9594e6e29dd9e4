// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package markup defines the styled text model used for terminal output.
//
// Output is a tree of spans: plain text leaves, bold wrappers, role-colored
// wrappers, and explicit line breaks. A Line is one scrollback entry. The
// tree is encoding-agnostic; the renderers in this package turn it into
// HTML, ANSI escape sequences, plain text, or the legacy marker string.
package markup

import "strings"

// =============================================================================
// ROLES
// =============================================================================

// Role is the semantic color of a styled span.
type Role int

const (
	RolePlain  Role = iota // No color
	RoleOutput             // Regular command output (green)
	RoleError              // User-input errors (red)
	RoleInput              // Echoed user input (yellow)
	RoleAccent             // Highlights (cyan)
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleOutput:
		return "output"
	case RoleError:
		return "error"
	case RoleInput:
		return "input"
	case RoleAccent:
		return "accent"
	default:
		return "plain"
	}
}

// =============================================================================
// SPANS
// =============================================================================

// Kind discriminates span variants.
type Kind int

const (
	KindText   Kind = iota // Leaf holding Text
	KindBold               // Bold wrapper around Children
	KindStyled             // Role wrapper around Children
	KindBreak              // Explicit line break
)

// Span is one node of the styled text tree.
type Span struct {
	Kind     Kind
	Role     Role
	Text     string
	Children []Span
}

// Line is one scrollback entry.
type Line []Span

// Text returns a plain text leaf.
func Text(s string) Span {
	return Span{Kind: KindText, Text: s}
}

// Bold wraps children in a bold span.
func Bold(children ...Span) Span {
	return Span{Kind: KindBold, Children: children}
}

// Styled wraps children in a role-colored span.
func Styled(role Role, children ...Span) Span {
	return Span{Kind: KindStyled, Role: role, Children: children}
}

// Break returns an explicit line break.
func Break() Span {
	return Span{Kind: KindBreak}
}

// Split turns s into text leaves separated by Break spans at each newline.
func Split(s string) []Span {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, "\n")
	spans := make([]Span, 0, len(parts)*2-1)
	for i, p := range parts {
		if i > 0 {
			spans = append(spans, Break())
		}
		if p != "" {
			spans = append(spans, Text(p))
		}
	}
	return spans
}

// =============================================================================
// LINE BUILDERS
// =============================================================================

// Plain builds an unstyled line.
func Plain(s string) Line {
	return Line(Split(s))
}

// Out builds a line in the output role.
func Out(s string) Line {
	return Line{Styled(RoleOutput, Split(s)...)}
}

// Err builds a line in the error role.
func Err(s string) Line {
	return Line{Styled(RoleError, Split(s)...)}
}

// In builds a line in the input role.
func In(s string) Line {
	return Line{Styled(RoleInput, Split(s)...)}
}

// Accent builds a line in the accent role.
func Accent(s string) Line {
	return Line{Styled(RoleAccent, Split(s)...)}
}

// Strong builds a bold line.
func Strong(s string) Line {
	return Line{Bold(Split(s)...)}
}

// Blank returns an empty line.
func Blank() Line {
	return Line{}
}

// Lines maps each string through build.
func Lines(build func(string) Line, items ...string) []Line {
	out := make([]Line, 0, len(items))
	for _, s := range items {
		out = append(out, build(s))
	}
	return out
}

// =============================================================================
// SEGMENTS
// =============================================================================

// Segment is a run of text with fully resolved styling. Flattening the
// tree into segments lets renderers apply one style per run instead of
// nesting escape sequences.
type Segment struct {
	Text  string
	Role  Role
	Bold  bool
	Break bool
}

// Segments flattens a line into styled runs in display order.
func Segments(line Line) []Segment {
	var out []Segment
	var walk func(spans []Span, role Role, bold bool)
	walk = func(spans []Span, role Role, bold bool) {
		for _, s := range spans {
			switch s.Kind {
			case KindText:
				if s.Text != "" {
					out = append(out, Segment{Text: s.Text, Role: role, Bold: bold})
				}
			case KindBreak:
				out = append(out, Segment{Break: true})
			case KindBold:
				walk(s.Children, role, true)
			case KindStyled:
				walk(s.Children, s.Role, bold)
			}
		}
	}
	walk(line, RolePlain, false)
	return out
}
