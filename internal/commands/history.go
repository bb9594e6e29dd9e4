// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import "strings"

// History is the append-only list of submitted commands with a recall
// cursor. The cursor is -1 when not browsing, otherwise an index into
// the entries.
type History struct {
	entries []string
	cursor  int
}

// NewHistory returns an empty history.
func NewHistory() *History {
	return &History{cursor: -1}
}

// Push appends the trimmed raw command and stops browsing. Blank input
// is ignored.
func (h *History) Push(raw string) {
	raw = strings.TrimSpace(raw)
	if raw != "" {
		h.entries = append(h.entries, raw)
	}
	h.cursor = -1
}

// Prev moves one step toward the oldest entry and returns it. From -1 it
// jumps to the newest entry; at index 0 it stays. ok is false when the
// history is empty.
func (h *History) Prev() (entry string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor < 0 {
		h.cursor = len(h.entries) - 1
	} else {
		h.cursor = max(0, h.cursor-1)
	}
	return h.entries[h.cursor], true
}

// Next moves one step toward the newest entry and returns it. From -1
// it lands on the oldest entry; at the newest entry it stays there and
// returns it again, so it never yields an empty line. ok is false when
// the history is empty.
func (h *History) Next() (entry string, ok bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	h.cursor = min(len(h.entries)-1, h.cursor+1)
	return h.entries[h.cursor], true
}

// Reset stops browsing.
func (h *History) Reset() {
	h.cursor = -1
}

// Cursor returns the recall cursor.
func (h *History) Cursor() int {
	return h.cursor
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, oldest first.
func (h *History) Entries() []string {
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Load replaces the entries, e.g. from a saved history file.
func (h *History) Load(entries []string) {
	h.entries = nil
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			h.entries = append(h.entries, e)
		}
	}
	h.cursor = -1
}
