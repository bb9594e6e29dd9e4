// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/prefs"
	"github.com/jeranaias/termfolio/internal/resume"
)

var testCatalog = prefs.Catalog{
	Themes: []string{"default", "retro", "iterm", "dracula", "monokai", "ocean", "solarized", "cyberpunk"},
	Sizes:  []string{"small", "medium", "large", "xlarge", "full"},
}

func testState() State {
	return State{
		Resume:  resume.Default(),
		Prefs:   prefs.Defaults(),
		Catalog: testCatalog,
	}
}

func texts(res Result) []string {
	out := make([]string, len(res.Lines))
	for i, l := range res.Lines {
		out[i] = markup.PlainText(l)
	}
	return out
}

func roleOf(line markup.Line) markup.Role {
	segs := markup.Segments(line)
	if len(segs) == 0 {
		return markup.RolePlain
	}
	return segs[0].Role
}

// =============================================================================
// REGISTRY
// =============================================================================

func TestRegistryCanonicalOrder(t *testing.T) {
	want := []string{
		"about", "skills", "experience", "education", "projects", "contact",
		"certifications", "whoami", "echo", "clear", "darkmode", "theme",
		"resize", "download", "help",
	}
	assert.Equal(t, want, NewRegistry().Names())
}

func TestRegistryLookupIsExact(t *testing.T) {
	r := NewRegistry()
	assert.NotNil(t, r.Get("about"))
	assert.Nil(t, r.Get("About"))
	assert.Nil(t, r.Get("abou"))
}

func TestRegisterReplacesInPlace(t *testing.T) {
	r := NewRegistry()
	r.Register(&Command{
		Name:  "skills",
		Usage: "skills",
		Run:   func(*Context) Result { return lines(markup.Out("replaced")) },
	})
	assert.Equal(t, 15, len(r.Names()))
	assert.Equal(t, "skills", r.Names()[1])
	assert.Equal(t, []string{"replaced"}, texts(r.Execute(testState(), "skills")))
}

func TestUnknownCommand(t *testing.T) {
	res := Execute(testState(), "sudo rm -rf /")
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "command not found: sudo (try help)", markup.PlainText(res.Lines[0]))
	assert.Equal(t, markup.RoleError, roleOf(res.Lines[0]))
	assert.Nil(t, res.Prefs)
	assert.False(t, res.Clear)
}

func TestEmptyInputDoesNothing(t *testing.T) {
	assert.Equal(t, Result{}, Execute(testState(), "   "))
}

// =============================================================================
// HELP OVERRIDE
// =============================================================================

func TestHelpOverrideHasNoEffects(t *testing.T) {
	state := testState()
	for _, name := range NewRegistry().Names() {
		for _, flag := range []string{"--help", "-h"} {
			input := name + " " + flag
			if name == "download" {
				input = "download resume " + flag
			}
			res := Execute(state, input)

			require.NotEmpty(t, res.Lines, input)
			assert.True(t, strings.HasPrefix(markup.PlainText(res.Lines[0]), NewRegistry().Get(name).Usage+" - "), input)
			assert.Nil(t, res.Prefs, input)
			assert.False(t, res.Clear, input)
			assert.Nil(t, res.Download, input)
		}
	}
}

func TestHelpDetails(t *testing.T) {
	got := texts(Execute(testState(), "theme -h"))
	assert.Equal(t, []string{
		"theme <name> - Switch between visual themes",
		"Available themes: default, retro, iterm, dracula, monokai, ocean, solarized, cyberpunk",
		"Usage: theme default, theme retro",
	}, got)
}

func TestHelpListsEveryCommand(t *testing.T) {
	res := Execute(testState(), "help")
	out := strings.Join(texts(res), "\n")
	for _, name := range NewRegistry().Names() {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "darkmode [on|off|toggle]")
}

// =============================================================================
// RESUME COMMANDS
// =============================================================================

func TestAboutAndWhoami(t *testing.T) {
	for _, cmd := range []string{"about", "whoami"} {
		got := texts(Execute(testState(), cmd))
		assert.Equal(t, []string{"Saswat Priyadarshan — Software Engineer @ Microsoft"}, got)
	}
}

func TestSkillsOnePerLine(t *testing.T) {
	state := testState()
	assert.Equal(t, state.Resume.Skills, texts(Execute(state, "skills")))
}

func TestExperienceBlankLineBetweenEntries(t *testing.T) {
	state := testState()
	state.Resume.Experience = []resume.Experience{
		{Role: "Engineer", Company: "A", Period: "2020", Bullets: []string{"one", "two"}},
		{Role: "Intern", Company: "B", Period: "2019"},
	}
	assert.Equal(t, []string{
		"Engineer at A (2020)",
		" - one",
		" - two",
		"",
		"Intern at B (2019)",
	}, texts(Execute(state, "experience")))
}

func TestEducation(t *testing.T) {
	got := texts(Execute(testState(), "education"))
	require.Len(t, got, 2)
	assert.Equal(t, "M.S. in Computer Science — North Carolina State University (Aug 2021 — Dec 2022)", got[0])
}

func TestProjectsLinkOnlyWhenPresent(t *testing.T) {
	got := texts(Execute(testState(), "projects"))
	assert.Equal(t, []string{
		"Haia Platform: AI-powered case management replacing Halo, reducing costs and improving automation.",
		"System Design Evaluator: Drag-and-drop system components with LLM feedback. https://github.com/saswat123/system-design-evaluator",
	}, got)
}

func TestContact(t *testing.T) {
	got := texts(Execute(testState(), "contact"))
	assert.Equal(t, "Email: psaswat21@gmail.com", got[0])
	assert.Len(t, got, 3)
}

func TestCertifications(t *testing.T) {
	state := testState()
	assert.Equal(t, []string{"no certifications listed"}, texts(Execute(state, "certifications")))

	state.Resume.Certifications = []resume.Certification{
		{Name: "CKA", Issuer: "CNCF", Year: "2024"},
		{Name: "Solo"},
	}
	assert.Equal(t, []string{"• CKA, CNCF (2024)", "• Solo"}, texts(Execute(state, "certifications")))
}

func TestExecuteDoesNotMutateResume(t *testing.T) {
	state := testState()
	before := *state.Resume
	for _, name := range NewRegistry().Names() {
		Execute(state, name)
	}
	assert.Equal(t, before, *state.Resume)
}

// =============================================================================
// TERMINAL COMMANDS
// =============================================================================

func TestEchoRejoinsArguments(t *testing.T) {
	assert.Equal(t, []string{"hello world"}, texts(Execute(testState(), "echo   hello   world")))
}

func TestClear(t *testing.T) {
	res := Execute(testState(), "clear")
	assert.True(t, res.Clear)
	assert.Empty(t, res.Lines)

	res = Execute(testState(), "clear --help")
	assert.False(t, res.Clear)
	assert.Len(t, res.Lines, 1)
}

// =============================================================================
// PREFERENCE COMMANDS
// =============================================================================

func TestDarkMode(t *testing.T) {
	tests := []struct {
		input string
		start bool
		want  bool
		line  string
	}{
		{"darkmode on", false, true, "dark mode on"},
		{"darkmode off", true, false, "dark mode off"},
		{"darkmode", true, false, "dark mode off"},
		{"darkmode toggle", false, true, "dark mode on"},
		{"darkmode --quiet on", false, true, "dark mode on"},
	}
	for _, tt := range tests {
		state := testState()
		state.Prefs.Dark = tt.start
		res := Execute(state, tt.input)

		require.NotNil(t, res.Prefs, tt.input)
		if res.Prefs.Dark != tt.want {
			t.Errorf("%q from dark=%v: got dark=%v, want %v", tt.input, tt.start, res.Prefs.Dark, tt.want)
		}
		assert.Equal(t, []string{tt.line}, texts(res))
		assert.Equal(t, tt.start, state.Prefs.Dark, "state must not be modified")
	}
}

func TestThemeKnown(t *testing.T) {
	res := Execute(testState(), "theme Dracula")
	require.NotNil(t, res.Prefs)
	assert.Equal(t, "dracula", res.Prefs.Theme)
	assert.Equal(t, []string{"theme set to dracula"}, texts(res))
}

func TestThemeDefaultsWhenAbsent(t *testing.T) {
	state := testState()
	state.Prefs.Theme = "retro"
	res := Execute(state, "theme -x")
	require.NotNil(t, res.Prefs)
	assert.Equal(t, "default", res.Prefs.Theme)
}

func TestThemeUnknown(t *testing.T) {
	res := Execute(testState(), "theme xyz")
	assert.Nil(t, res.Prefs)
	require.Len(t, res.Lines, 1)
	assert.Contains(t, markup.PlainText(res.Lines[0]), "unknown theme: xyz")
	assert.Equal(t, markup.RoleError, roleOf(res.Lines[0]))
}

func TestResizeThenDefault(t *testing.T) {
	state := testState()

	res := Execute(state, "resize large")
	require.NotNil(t, res.Prefs)
	assert.Equal(t, []string{"terminal size set to large"}, texts(res))
	state.Prefs = *res.Prefs

	res = Execute(state, "resize")
	require.NotNil(t, res.Prefs)
	assert.Equal(t, "medium", res.Prefs.Size)
	assert.Len(t, res.Lines, 1)
}

func TestResizeUnknownListsSizes(t *testing.T) {
	res := Execute(testState(), "resize HUGE")
	assert.Nil(t, res.Prefs)
	assert.Equal(t, []string{
		"unknown size: huge",
		"Available sizes: small, medium, large, xlarge, full",
	}, texts(res))
	assert.Equal(t, markup.RoleError, roleOf(res.Lines[0]))
}

// =============================================================================
// DOWNLOAD
// =============================================================================

func TestDownload(t *testing.T) {
	res := Execute(testState(), "download resume")
	require.NotNil(t, res.Download)
	assert.Equal(t, DownloadResume, res.Download.Target)
	assert.Len(t, res.Lines, 1)

	for _, input := range []string{"download xyz", "download", "download -f"} {
		res := Execute(testState(), input)
		assert.Nil(t, res.Download, input)
		require.Len(t, res.Lines, 1, input)
		assert.Equal(t, "usage: download resume", markup.PlainText(res.Lines[0]))
	}
}

func TestAtMostOneEffect(t *testing.T) {
	inputs := []string{
		"about", "clear", "darkmode", "theme retro", "resize small",
		"download resume", "echo hi", "help", "nope",
	}
	for _, input := range inputs {
		res := Execute(testState(), input)
		effects := 0
		if res.Prefs != nil {
			effects++
		}
		if res.Clear {
			effects++
		}
		if res.Download != nil {
			effects++
		}
		if effects > 1 {
			t.Errorf("%q produced %d effects", input, effects)
		}
	}
}
