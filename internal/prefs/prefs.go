// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package prefs reads and writes the terminal's persisted preferences:
// dark mode, theme, and size.
//
// Values are stored JSON-encoded under fixed keys so a file written by
// one front end is readable by another. Anything unreadable falls back
// to the default without surfacing an error.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Store keys.
const (
	KeyDark  = "terminal-dark"
	KeyTheme = "terminal-theme"
	KeySize  = "terminal-size"
)

// Built-in defaults.
const (
	DefaultDark  = true
	DefaultTheme = "default"
	DefaultSize  = "medium"
)

// Store is a key-scoped string store.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Preferences are the persisted terminal settings.
type Preferences struct {
	Dark  bool   `json:"dark"`
	Theme string `json:"theme"`
	Size  string `json:"size"`
}

// Defaults returns the built-in preferences.
func Defaults() Preferences {
	return Preferences{Dark: DefaultDark, Theme: DefaultTheme, Size: DefaultSize}
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog lists the known theme and size names in display order.
type Catalog struct {
	Themes []string
	Sizes  []string
}

// HasTheme reports whether name is a known theme.
func (c Catalog) HasTheme(name string) bool {
	return slices.Contains(c.Themes, name)
}

// HasSize reports whether name is a known size.
func (c Catalog) HasSize(name string) bool {
	return slices.Contains(c.Sizes, name)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load reads all three preferences from store. A key that is missing,
// unreadable, malformed, or names an unknown theme or size takes its
// value from defaults.
func Load(store Store, defaults Preferences, catalog Catalog) Preferences {
	p := defaults

	if dark, ok := get[bool](store, KeyDark); ok {
		p.Dark = dark
	}
	if theme, ok := get[string](store, KeyTheme); ok && catalog.HasTheme(theme) {
		p.Theme = theme
	}
	if size, ok := get[string](store, KeySize); ok && catalog.HasSize(size) {
		p.Size = size
	}
	return p
}

func get[T any](store Store, key string) (T, bool) {
	var zero T
	raw, ok, err := store.Get(key)
	if err != nil || !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return zero, false
	}
	return v, true
}

// Save writes all three preferences. It attempts every key and joins the
// failures.
func Save(store Store, p Preferences) error {
	var errs []error
	for _, kv := range []struct {
		key   string
		value any
	}{
		{KeyDark, p.Dark},
		{KeyTheme, p.Theme},
		{KeySize, p.Size},
	} {
		data, err := json.Marshal(kv.value)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode %s: %w", kv.key, err))
			continue
		}
		if err := store.Set(kv.key, string(data)); err != nil {
			errs = append(errs, fmt.Errorf("save %s: %w", kv.key, err))
		}
	}
	return errors.Join(errs...)
}
