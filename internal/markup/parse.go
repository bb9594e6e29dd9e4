// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import "strings"

// Legacy inline markers. Each opens a wrapper that the next Reset closes.
const (
	MarkBold   = "\x1b[1m"
	MarkGreen  = "\x1b[32m"
	MarkRed    = "\x1b[31m"
	MarkYellow = "\x1b[33m"
	MarkCyan   = "\x1b[36m"
	MarkReset  = "\x1b[0m"
)

var markerRoles = map[string]Role{
	MarkGreen:  RoleOutput,
	MarkRed:    RoleError,
	MarkYellow: RoleInput,
	MarkCyan:   RoleAccent,
}

// Parse translates a marker string into a Line.
//
// Every recognised marker opens exactly one wrapper. A reset closes the
// nearest open wrapper; a reset with nothing open is dropped. Wrappers
// still open at the end of input are closed implicitly. Newlines become
// Break spans. Unrecognised escape sequences are kept as text.
func Parse(s string) Line {
	// stack[0] is the root; its children are the line.
	stack := []Span{{}}
	var text strings.Builder

	flush := func() {
		if text.Len() == 0 {
			return
		}
		top := &stack[len(stack)-1]
		top.Children = append(top.Children, Text(text.String()))
		text.Reset()
	}
	push := func(s Span) {
		flush()
		stack = append(stack, s)
	}
	pop := func() {
		flush()
		if len(stack) == 1 {
			return
		}
		closed := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		parent := &stack[len(stack)-1]
		parent.Children = append(parent.Children, closed)
	}

	for i := 0; i < len(s); {
		if s[i] == '\n' {
			flush()
			top := &stack[len(stack)-1]
			top.Children = append(top.Children, Break())
			i++
			continue
		}
		if s[i] == '\x1b' {
			if marker, ok := markerAt(s, i); ok {
				switch {
				case marker == MarkReset:
					pop()
				case marker == MarkBold:
					push(Span{Kind: KindBold})
				default:
					push(Span{Kind: KindStyled, Role: markerRoles[marker]})
				}
				i += len(marker)
				continue
			}
		}
		text.WriteByte(s[i])
		i++
	}

	for len(stack) > 1 {
		pop()
	}
	flush()
	return Line(stack[0].Children)
}

func markerAt(s string, i int) (string, bool) {
	rest := s[i:]
	for _, m := range []string{MarkReset, MarkBold, MarkGreen, MarkRed, MarkYellow, MarkCyan} {
		if strings.HasPrefix(rest, m) {
			return m, true
		}
	}
	return "", false
}
