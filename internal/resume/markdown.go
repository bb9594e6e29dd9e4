// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package resume

import (
	"fmt"
	"strings"
)

// Markdown renders the record as a Markdown document.
func (r *Resume) Markdown() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", r.Name)
	fmt.Fprintf(&sb, "**%s**\n", r.Title)

	var meta []string
	for _, s := range []string{r.Location, r.Email, r.Website} {
		if s != "" {
			meta = append(meta, s)
		}
	}
	if len(meta) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", strings.Join(meta, " · "))
	}
	if r.Summary != "" {
		fmt.Fprintf(&sb, "\n%s\n", r.Summary)
	}

	if len(r.Skills) > 0 {
		sb.WriteString("\n## Skills\n\n")
		for _, s := range r.Skills {
			fmt.Fprintf(&sb, "- %s\n", s)
		}
	}

	if len(r.Experience) > 0 {
		sb.WriteString("\n## Experience\n")
		for _, e := range r.Experience {
			fmt.Fprintf(&sb, "\n### %s, %s\n\n*%s*\n", e.Role, e.Company, e.Period)
			if len(e.Bullets) > 0 {
				sb.WriteString("\n")
				for _, b := range e.Bullets {
					fmt.Fprintf(&sb, "- %s\n", b)
				}
			}
		}
	}

	if len(r.Education) > 0 {
		sb.WriteString("\n## Education\n\n")
		for _, e := range r.Education {
			fmt.Fprintf(&sb, "- **%s**, %s", e.Degree, e.School)
			if e.Period != "" {
				fmt.Fprintf(&sb, " (%s)", e.Period)
			}
			sb.WriteString("\n")
		}
	}

	if len(r.Projects) > 0 {
		sb.WriteString("\n## Projects\n\n")
		for _, p := range r.Projects {
			fmt.Fprintf(&sb, "- **%s**: %s", p.Name, p.Description)
			if p.Link != "" {
				fmt.Fprintf(&sb, " (<%s>)", p.Link)
			}
			sb.WriteString("\n")
		}
	}

	if len(r.Certifications) > 0 {
		sb.WriteString("\n## Certifications\n\n")
		for _, c := range r.Certifications {
			fmt.Fprintf(&sb, "- %s\n", c.Line())
		}
	}

	if len(r.Contact) > 0 {
		sb.WriteString("\n## Contact\n\n")
		for _, c := range r.Contact {
			fmt.Fprintf(&sb, "- **%s**: %s\n", c.Label, c.Value)
		}
	}

	return sb.String()
}

// Line formats a certification as "name, issuer (year)", omitting empty
// parts.
func (c Certification) Line() string {
	s := c.Name
	if c.Issuer != "" {
		s += ", " + c.Issuer
	}
	if c.Year != "" {
		s += " (" + c.Year + ")"
	}
	return s
}
