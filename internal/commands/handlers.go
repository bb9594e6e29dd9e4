// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"strings"

	"github.com/jeranaias/termfolio/internal/markup"
	"github.com/jeranaias/termfolio/internal/prefs"
)

// DownloadResume is the only download target.
const DownloadResume = "resume"

// =============================================================================
// BUILT-IN COMMANDS
// =============================================================================

func (r *Registry) registerBuiltins() {
	// Resume sections
	r.Register(&Command{
		Name:        "about",
		Usage:       "about",
		Description: "Display basic information about the portfolio owner",
		Run:         handleAbout,
	})
	r.Register(&Command{
		Name:        "skills",
		Usage:       "skills",
		Description: "List technical skills and expertise",
		Run:         handleSkills,
	})
	r.Register(&Command{
		Name:        "experience",
		Usage:       "experience",
		Description: "Show work experience and career history",
		Run:         handleExperience,
	})
	r.Register(&Command{
		Name:        "education",
		Usage:       "education",
		Description: "Display educational background and degrees",
		Run:         handleEducation,
	})
	r.Register(&Command{
		Name:        "projects",
		Usage:       "projects",
		Description: "Show notable projects and contributions",
		Run:         handleProjects,
	})
	r.Register(&Command{
		Name:        "contact",
		Usage:       "contact",
		Description: "Display contact information and social links",
		Run:         handleContact,
	})
	r.Register(&Command{
		Name:        "certifications",
		Usage:       "certifications",
		Description: "List certifications and credentials",
		Run:         handleCertifications,
	})
	r.Register(&Command{
		Name:        "whoami",
		Usage:       "whoami",
		Description: "Show current user identity (same as about)",
		Run:         handleAbout,
	})

	// Terminal
	r.Register(&Command{
		Name:        "echo",
		Usage:       "echo <text>",
		Description: "Display the given text",
		Details:     static("Usage: echo Hello World"),
		Run:         handleEcho,
	})
	r.Register(&Command{
		Name:        "clear",
		Usage:       "clear",
		Description: "Clear the terminal screen",
		Run:         handleClear,
	})

	// Preferences
	r.Register(&Command{
		Name:        "darkmode",
		Usage:       "darkmode [on|off|toggle]",
		Description: "Toggle dark mode",
		Args: []ArgDef{{
			Name:   "mode",
			Values: func(*Context) []string { return []string{"on", "off", "toggle"} },
		}},
		Details: static("Usage: darkmode on, darkmode off, or darkmode (toggle)"),
		Run:     handleDarkMode,
	})
	r.Register(&Command{
		Name:        "theme",
		Usage:       "theme <name>",
		Description: "Switch between visual themes",
		Args: []ArgDef{{
			Name:    "name",
			Default: prefs.DefaultTheme,
			Values:  func(ctx *Context) []string { return ctx.Catalog.Themes },
		}},
		Details: func(ctx *Context) []string {
			return []string{
				"Available themes: " + strings.Join(ctx.Catalog.Themes, ", "),
				"Usage: theme default, theme retro",
			}
		},
		Run: handleTheme,
	})
	r.Register(&Command{
		Name:        "resize",
		Usage:       "resize <size>",
		Description: "Change terminal screen size",
		Args: []ArgDef{{
			Name:    "size",
			Default: prefs.DefaultSize,
			Values:  func(ctx *Context) []string { return ctx.Catalog.Sizes },
		}},
		Details: func(ctx *Context) []string {
			return []string{
				"Available sizes: " + strings.Join(ctx.Catalog.Sizes, ", "),
				"Usage: resize large, resize small, resize full",
			}
		},
		Run: handleResize,
	})

	// Files
	r.Register(&Command{
		Name:        "download",
		Usage:       "download resume",
		Description: "Download the resume file",
		Args: []ArgDef{{
			Name:   "target",
			Values: func(*Context) []string { return []string{DownloadResume} },
		}},
		Details: static("Usage: download resume"),
		Run:     handleDownload,
	})

	r.Register(&Command{
		Name:        "help",
		Usage:       "help",
		Description: "Show list of available commands",
		Details:     static("Tip: Use <command> --help or <command> -h for detailed help"),
		Run:         r.handleHelp,
	})
}

func static(lines ...string) func(*Context) []string {
	return func(*Context) []string { return lines }
}

// =============================================================================
// RESUME HANDLERS
// =============================================================================

func handleAbout(ctx *Context) Result {
	return lines(markup.Out(ctx.Resume.Name + " — " + ctx.Resume.Title))
}

func handleSkills(ctx *Context) Result {
	return Result{Lines: markup.Lines(markup.Out, ctx.Resume.Skills...)}
}

func handleExperience(ctx *Context) Result {
	var out []markup.Line
	for i, e := range ctx.Resume.Experience {
		if i > 0 {
			out = append(out, markup.Blank())
		}
		out = append(out, markup.Out(fmt.Sprintf("%s at %s (%s)", e.Role, e.Company, e.Period)))
		for _, b := range e.Bullets {
			out = append(out, markup.Out(" - "+b))
		}
	}
	return Result{Lines: out}
}

func handleEducation(ctx *Context) Result {
	var out []markup.Line
	for _, e := range ctx.Resume.Education {
		out = append(out, markup.Out(fmt.Sprintf("%s — %s (%s)", e.Degree, e.School, e.Period)))
	}
	return Result{Lines: out}
}

func handleProjects(ctx *Context) Result {
	var out []markup.Line
	for _, p := range ctx.Resume.Projects {
		line := p.Name + ": " + p.Description
		if p.Link != "" {
			line += " " + p.Link
		}
		out = append(out, markup.Out(line))
	}
	return Result{Lines: out}
}

func handleContact(ctx *Context) Result {
	var out []markup.Line
	for _, c := range ctx.Resume.Contact {
		out = append(out, markup.Out(c.Label+": "+c.Value))
	}
	return Result{Lines: out}
}

func handleCertifications(ctx *Context) Result {
	certs := ctx.Resume.Certifications
	if len(certs) == 0 {
		return lines(markup.Out("no certifications listed"))
	}
	out := make([]markup.Line, 0, len(certs))
	for _, c := range certs {
		out = append(out, markup.Out("• "+c.Line()))
	}
	return Result{Lines: out}
}

// =============================================================================
// TERMINAL HANDLERS
// =============================================================================

func handleEcho(ctx *Context) Result {
	return lines(markup.Out(strings.Join(ctx.Args, " ")))
}

func handleClear(*Context) Result {
	return Result{Clear: true}
}

func (r *Registry) handleHelp(*Context) Result {
	width := 0
	for _, c := range r.commands {
		width = max(width, len(c.Usage))
	}

	out := make([]markup.Line, 0, len(r.commands)+1)
	for _, c := range r.commands {
		out = append(out, markup.Out(fmt.Sprintf("%-*s  %s", width, c.Usage, c.Description)))
	}
	out = append(out, markup.Line{
		markup.Text("Type "),
		markup.Bold(markup.Text("<command> --help")),
		markup.Text(" for details."),
	})
	return Result{Lines: out}
}

// =============================================================================
// PREFERENCE HANDLERS
// =============================================================================

func handleDarkMode(ctx *Context) Result {
	p := ctx.Prefs
	switch Positional(ctx.Args, "toggle") {
	case "on":
		p.Dark = true
	case "off":
		p.Dark = false
	default:
		p.Dark = !p.Dark
	}

	state := "off"
	if p.Dark {
		state = "on"
	}
	return Result{
		Lines: []markup.Line{markup.Out("dark mode " + state)},
		Prefs: &p,
	}
}

func handleTheme(ctx *Context) Result {
	name := strings.ToLower(Positional(ctx.Args, prefs.DefaultTheme))
	if !ctx.Catalog.HasTheme(name) {
		return lines(markup.Err("unknown theme: " + name))
	}

	p := ctx.Prefs
	p.Theme = name
	return Result{
		Lines: []markup.Line{markup.Out("theme set to " + name)},
		Prefs: &p,
	}
}

func handleResize(ctx *Context) Result {
	size := strings.ToLower(Positional(ctx.Args, prefs.DefaultSize))
	if !ctx.Catalog.HasSize(size) {
		return lines(
			markup.Err("unknown size: "+size),
			markup.Out("Available sizes: "+strings.Join(ctx.Catalog.Sizes, ", ")),
		)
	}

	p := ctx.Prefs
	p.Size = size
	return Result{
		Lines: []markup.Line{markup.Out("terminal size set to " + size)},
		Prefs: &p,
	}
}

// =============================================================================
// DOWNLOAD
// =============================================================================

func handleDownload(ctx *Context) Result {
	if Positional(ctx.Args, "") != DownloadResume {
		return lines(markup.Err("usage: download resume"))
	}
	return Result{
		Lines:    []markup.Line{markup.Out("downloading resume...")},
		Download: &Download{Target: DownloadResume},
	}
}
