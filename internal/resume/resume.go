// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package resume holds the portfolio owner's resume record.
//
// A Resume is read-only once loaded. The interpreter receives it as a
// value and never reaches for a global copy.
package resume

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// =============================================================================
// RECORD
// =============================================================================

// Resume is the full portfolio record.
type Resume struct {
	Name     string `json:"name" toml:"name" yaml:"name" validate:"required"`
	Title    string `json:"title" toml:"title" yaml:"title" validate:"required"`
	Location string `json:"location,omitempty" toml:"location" yaml:"location,omitempty"`
	Email    string `json:"email,omitempty" toml:"email" yaml:"email,omitempty" validate:"omitempty,email"`
	Website  string `json:"website,omitempty" toml:"website" yaml:"website,omitempty" validate:"omitempty,url"`
	Summary  string `json:"summary,omitempty" toml:"summary" yaml:"summary,omitempty"`

	Skills         []string        `json:"skills" toml:"skills" yaml:"skills" validate:"dive,required"`
	Experience     []Experience    `json:"experience" toml:"experience" yaml:"experience" validate:"dive"`
	Education      []Education     `json:"education" toml:"education" yaml:"education" validate:"dive"`
	Projects       []Project       `json:"projects" toml:"projects" yaml:"projects" validate:"dive"`
	Contact        []Contact       `json:"contact" toml:"contact" yaml:"contact" validate:"dive"`
	Certifications []Certification `json:"certifications,omitempty" toml:"certifications" yaml:"certifications,omitempty" validate:"dive"`
}

// Experience is one job.
type Experience struct {
	Role    string   `json:"role" toml:"role" yaml:"role" validate:"required"`
	Company string   `json:"company" toml:"company" yaml:"company" validate:"required"`
	Period  string   `json:"period" toml:"period" yaml:"period" validate:"required"`
	Bullets []string `json:"bullets,omitempty" toml:"bullets" yaml:"bullets,omitempty"`
}

// Education is one degree.
type Education struct {
	Degree string `json:"degree" toml:"degree" yaml:"degree" validate:"required"`
	School string `json:"school" toml:"school" yaml:"school" validate:"required"`
	Period string `json:"period,omitempty" toml:"period" yaml:"period,omitempty"`
}

// Project is a portfolio project. Link is optional.
type Project struct {
	Name        string `json:"name" toml:"name" yaml:"name" validate:"required"`
	Description string `json:"desc" toml:"desc" yaml:"desc"`
	Link        string `json:"link,omitempty" toml:"link" yaml:"link,omitempty" validate:"omitempty,url"`
}

// Contact is a labelled way to reach the owner.
type Contact struct {
	Label string `json:"label" toml:"label" yaml:"label" validate:"required"`
	Value string `json:"value" toml:"value" yaml:"value" validate:"required"`
}

// Certification is an optional credential.
type Certification struct {
	Name   string `json:"name" toml:"name" yaml:"name" validate:"required"`
	Issuer string `json:"issuer,omitempty" toml:"issuer" yaml:"issuer,omitempty"`
	Year   string `json:"year,omitempty" toml:"year" yaml:"year,omitempty"`
}

// FirstName returns the first word of the owner's name, lower-cased.
// It is used as the prompt user when none is configured.
func (r *Resume) FirstName() string {
	fields := strings.Fields(r.Name)
	if len(fields) == 0 {
		return "guest"
	}
	return strings.ToLower(fields[0])
}

// =============================================================================
// VALIDATION
// =============================================================================

// FieldError is one failed constraint.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("invalid resume:")
	for _, fe := range e.Errors {
		fmt.Fprintf(&sb, " %s: %s;", fe.Field, fe.Message)
	}
	return strings.TrimSuffix(sb.String(), ";")
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report field paths by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the record's struct constraints. It returns nil or a
// *ValidationError.
func (r *Resume) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate resume: %w", err)
	}

	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   strings.TrimPrefix(fe.Namespace(), "Resume."),
			Message: describe(fe),
		})
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a URL"
	case "email":
		return "must be an email address"
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}
