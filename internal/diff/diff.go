// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package diff

import (
	"fmt"
	"strings"
)

// =============================================================================
// DIFF TYPES
// =============================================================================

// Op says what happened to a line.
type Op int

const (
	// Equal lines appear in both texts
	Equal Op = iota
	// Insert lines appear only in the new text
	Insert
	// Delete lines appear only in the old text
	Delete
)

// String returns the name of the operation.
func (o Op) String() string {
	switch o {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Prefix returns the unified diff marker for the operation.
func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a diff.
type Line struct {
	Op   Op
	Text string
}

// Stats counts changed lines.
type Stats struct {
	Added   int
	Removed int
}

// Result is a line diff between two texts.
type Result struct {
	Lines []Line
	Stats Stats
}

// =============================================================================
// DIFF COMPUTATION
// =============================================================================

// Lines diffs old against new line by line using a longest common
// subsequence, so unchanged lines are never reported as moved.
func Lines(old, new string) Result {
	a, b := splitLines(old), splitLines(new)

	// lcs[i][j] is the LCS length of a[i:] and b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var r Result
	emit := func(op Op, text string) {
		r.Lines = append(r.Lines, Line{Op: op, Text: text})
		switch op {
		case Insert:
			r.Stats.Added++
		case Delete:
			r.Stats.Removed++
		}
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			emit(Equal, a[i])
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			emit(Delete, a[i])
			i++
		default:
			emit(Insert, b[j])
			j++
		}
	}
	for ; i < len(a); i++ {
		emit(Delete, a[i])
	}
	for ; j < len(b); j++ {
		emit(Insert, b[j])
	}
	return r
}

// splitLines splits content into lines, dropping the empty string after a
// final newline.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// =============================================================================
// SUMMARY
// =============================================================================

// Changed reports whether the texts differ.
func (r Result) Changed() bool {
	return r.Stats.Added > 0 || r.Stats.Removed > 0
}

// Summary returns "+N -M", or "no changes".
func (r Result) Summary() string {
	if !r.Changed() {
		return "no changes"
	}
	return fmt.Sprintf("+%d -%d", r.Stats.Added, r.Stats.Removed)
}

// =============================================================================
// UNIFIED DIFF FORMAT
// =============================================================================

// Unified formats the changes as unified diff hunks with the given number
// of context lines around each change. File headers are omitted.
func (r Result) Unified(context int) string {
	if !r.Changed() {
		return ""
	}
	if context < 0 {
		context = 0
	}

	// oldAt[k] and newAt[k] count the old and new lines before line k.
	oldAt := make([]int, len(r.Lines)+1)
	newAt := make([]int, len(r.Lines)+1)
	for k, l := range r.Lines {
		oldAt[k+1], newAt[k+1] = oldAt[k], newAt[k]
		if l.Op != Insert {
			oldAt[k+1]++
		}
		if l.Op != Delete {
			newAt[k+1]++
		}
	}

	var sb strings.Builder
	for _, h := range r.hunks(context) {
		oldCount := oldAt[h.end] - oldAt[h.start]
		newCount := newAt[h.end] - newAt[h.start]
		fmt.Fprintf(&sb, "@@ -%s +%s @@\n",
			hunkRange(oldAt[h.start], oldCount), hunkRange(newAt[h.start], newCount))
		for _, l := range r.Lines[h.start:h.end] {
			sb.WriteString(l.Op.Prefix())
			sb.WriteString(l.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

type span struct{ start, end int }

// hunks returns the line ranges to print: each change widened by context,
// with overlapping or touching ranges merged.
func (r Result) hunks(context int) []span {
	var out []span
	for k, l := range r.Lines {
		if l.Op == Equal {
			continue
		}
		s := span{start: max(0, k-context), end: min(len(r.Lines), k+1+context)}
		if n := len(out); n > 0 && s.start <= out[n-1].end {
			out[n-1].end = s.end
			continue
		}
		out = append(out, s)
	}
	return out
}

// hunkRange formats "start,count" the way diff(1) does: an empty range
// names the line before it.
func hunkRange(before, count int) string {
	if count == 0 {
		return fmt.Sprintf("%d,0", before)
	}
	return fmt.Sprintf("%d,%d", before+1, count)
}
