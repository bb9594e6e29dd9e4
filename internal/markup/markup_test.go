// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package markup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// PARSE
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Line
	}{
		{
			name:  "empty",
			input: "",
			want:  nil,
		},
		{
			name:  "clean text",
			input: "hello world",
			want:  Line{Text("hello world")},
		},
		{
			name:  "newline becomes break",
			input: "a\nb",
			want:  Line{Text("a"), Break(), Text("b")},
		},
		{
			name:  "bold",
			input: "Type " + MarkBold + "help" + MarkReset + " now",
			want:  Line{Text("Type "), Bold(Text("help")), Text(" now")},
		},
		{
			name:  "role",
			input: MarkRed + "oops" + MarkReset,
			want:  Line{Styled(RoleError, Text("oops"))},
		},
		{
			name:  "reset closes nearest wrapper",
			input: MarkGreen + "a" + MarkBold + "b" + MarkReset + "c" + MarkReset + "d",
			want: Line{
				Styled(RoleOutput, Text("a"), Bold(Text("b")), Text("c")),
				Text("d"),
			},
		},
		{
			name:  "unmatched reset dropped",
			input: "x" + MarkReset + "y",
			want:  Line{Text("x"), Text("y")},
		},
		{
			name:  "unclosed wrapper closed at end",
			input: MarkCyan + "open",
			want:  Line{Styled(RoleAccent, Text("open"))},
		},
		{
			name:  "unknown escape kept",
			input: "\x1b[35mx",
			want:  Line{Text("\x1b[35mx")},
		},
		{
			name:  "break inside wrapper",
			input: MarkYellow + "a\nb" + MarkReset,
			want:  Line{Styled(RoleInput, Text("a"), Break(), Text("b"))},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParsePreservesOrder(t *testing.T) {
	input := "1" + MarkBold + "2" + MarkGreen + "3" + MarkReset + "4" + MarkReset + "5\n6"
	got := PlainText(Parse(input))
	if got != "12345\n6" {
		t.Errorf("PlainText(Parse(%q)) = %q, want %q", input, got, "12345\n6")
	}
}

// =============================================================================
// HTML
// =============================================================================

func TestHTML(t *testing.T) {
	tests := []struct {
		name string
		line Line
		want string
	}{
		{
			name: "escapes text",
			line: Plain("<b>&"),
			want: "&lt;b&gt;&amp;",
		},
		{
			name: "break",
			line: Plain("a\nb"),
			want: "a<br/>b",
		},
		{
			name: "bold",
			line: Strong("x"),
			want: `<span class="font-semibold">x</span>`,
		},
		{
			name: "error role",
			line: Err("bad"),
			want: `<span class="text-red-600 dark:text-red-400">bad</span>`,
		},
		{
			name: "plain role has no wrapper",
			line: Line{Styled(RolePlain, Text("p"))},
			want: "p",
		},
		{
			name: "nested",
			line: Line{Styled(RoleOutput, Bold(Text("n")))},
			want: `<span class="text-green-600 dark:text-green-400"><span class="font-semibold">n</span></span>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTML(tt.line); got != tt.want {
				t.Errorf("HTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTMLCleanTextUnchanged(t *testing.T) {
	inputs := []string{"plain", "two\nlines", "trailing\n", "  spaced  out  "}
	for _, in := range inputs {
		want := strings.ReplaceAll(in, "\n", "<br/>")
		if got := HTML(Parse(in)); got != want {
			t.Errorf("HTML(Parse(%q)) = %q, want %q", in, got, want)
		}
	}
}

func TestHTMLWrappersBalanced(t *testing.T) {
	input := MarkBold + MarkGreen + "a" + MarkReset + MarkReset + MarkReset + MarkRed + "b"
	got := HTML(Parse(input))
	assert.Equal(t, strings.Count(got, "<span"), strings.Count(got, "</span>"))
	assert.Equal(t, 3, strings.Count(got, "<span"))
}

// =============================================================================
// MARKERS / TEXT / ANSI
// =============================================================================

func TestMarkersRoundTrip(t *testing.T) {
	lines := []Line{
		Plain("hello"),
		Err("unknown theme: xyz"),
		{Text("Type "), Bold(Text("help")), Text(" to list")},
		{Styled(RoleAccent, Text("a"), Bold(Text("b"))), Break(), Text("c")},
	}
	for _, line := range lines {
		assert.Equal(t, line, Parse(Markers(line)))
	}
}

func TestSegments(t *testing.T) {
	line := Line{Styled(RoleOutput, Text("a"), Bold(Text("b"))), Break(), Text("c")}
	want := []Segment{
		{Text: "a", Role: RoleOutput},
		{Text: "b", Role: RoleOutput, Bold: true},
		{Break: true},
		{Text: "c"},
	}
	assert.Equal(t, want, Segments(line))
}

type plainStyler struct{}

func (plainStyler) Style(Role) lipgloss.Style { return lipgloss.NewStyle() }

func TestANSIWithoutColorIsText(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	line := Line{Text("Type "), Bold(Text("help")), Break(), Text("next")}
	got := ANSI(line, plainStyler{})
	require.Contains(t, got, "help")
	assert.Equal(t, 1, strings.Count(got, "\n"))
}

func TestLines(t *testing.T) {
	got := Lines(Out, "a", "b")
	require.Len(t, got, 2)
	assert.Equal(t, Out("b"), got[1])
	assert.Equal(t, "output", RoleOutput.String())
	assert.Equal(t, "plain", Role(99).String())
}
