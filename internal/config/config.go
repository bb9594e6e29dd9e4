// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/prefs"
	"github.com/jeranaias/termfolio/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete termfolio configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	Profile ProfileConfig `toml:"profile"`
	UI      UIConfig      `toml:"ui"`
	Server  ServerConfig  `toml:"server"`
	Paths   PathsConfig   `toml:"paths"`
}

// ProfileConfig says whose portfolio is shown.
type ProfileConfig struct {
	// Resume is a .json, .toml, or .yaml resume file. Empty uses the
	// built-in sample.
	Resume string `toml:"resume"`

	// PromptUser is the user part of the prompt. Empty uses the resume
	// owner's first name.
	PromptUser string `toml:"prompt_user"`

	// DownloadFile is served by "download resume". Empty serves the
	// resume rendered as Markdown.
	DownloadFile string `toml:"download_file"`
}

// UIConfig holds the preference defaults used until a visitor changes them.
type UIConfig struct {
	Theme string `toml:"theme"`
	Size  string `toml:"size"`
	Dark  bool   `toml:"dark"`
}

// ServerConfig configures "termfolio serve".
type ServerConfig struct {
	Addr string `toml:"addr"`

	// Database is the SQLite file holding visitor preferences.
	Database string `toml:"database"`

	// RateLimit is requests per second per client IP; Burst is the bucket size.
	RateLimit float64 `toml:"rate_limit"`
	Burst     int     `toml:"burst"`

	// MaxInput bounds a submitted line, in runes.
	MaxInput int `toml:"max_input"`

	// IdleTimeout evicts visitor sessions, e.g. "30m".
	IdleTimeout string `toml:"idle_timeout"`

	// MaxSessions caps live visitor sessions.
	MaxSessions int `toml:"max_sessions"`

	// PrefsRetention prunes stored visitor preferences untouched for
	// longer, e.g. "720h".
	PrefsRetention string `toml:"prefs_retention"`

	TrustedProxies []string `toml:"trusted_proxies"`
}

// PathsConfig locates local state. Empty values resolve under the config
// directory.
type PathsConfig struct {
	Prefs     string `toml:"prefs"`
	History   string `toml:"history"`
	Downloads string `toml:"downloads"`
	Logs      string `toml:"logs"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := prefs.Defaults()
	return &Config{
		LogLevel: logging.LevelInfo,
		UI: UIConfig{
			Theme: p.Theme,
			Size:  p.Size,
			Dark:  p.Dark,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			RateLimit:      5,
			Burst:          20,
			MaxInput:       256,
			IdleTimeout:    "30m",
			MaxSessions:    10000,
			PrefsRetention: "720h",
		},
	}
}

// Preferences returns the configured preference defaults.
func (c *Config) Preferences() prefs.Preferences {
	return prefs.Preferences{Dark: c.UI.Dark, Theme: c.UI.Theme, Size: c.UI.Size}
}

// IdleTimeout returns the parsed server idle timeout.
func (c *Config) IdleTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Server.IdleTimeout)
	return d
}

// PrefsRetention returns the parsed visitor preference retention.
func (c *Config) PrefsRetention() time.Duration {
	d, _ := time.ParseDuration(c.Server.PrefsRetention)
	return d
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the termfolio configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".termfolio"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// SetDefaults fills empty paths relative to dir.
func (c *Config) SetDefaults(dir string) {
	if c.LogLevel == "" {
		c.LogLevel = logging.LevelInfo
	}
	if c.Paths.Prefs == "" {
		c.Paths.Prefs = filepath.Join(dir, "prefs.json")
	}
	if c.Paths.History == "" {
		c.Paths.History = filepath.Join(dir, "history")
	}
	if c.Paths.Downloads == "" {
		c.Paths.Downloads = filepath.Join(dir, "downloads")
	}
	if c.Paths.Logs == "" {
		c.Paths.Logs = dir
	}
	if c.Server.Database == "" {
		c.Server.Database = filepath.Join(dir, "visitors.db")
	}
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the config file at path, or the default location when path is
// empty. A missing default file is not an error; a missing explicit file
// is. Environment overrides, defaults, and validation are applied last.
func Load(path string) (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, "config.toml")
	}

	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := LoadDotEnv(".env", filepath.Join(dir, ".env")); err != nil {
		return nil, err
	}
	cfg.ApplyEnvOverrides()
	cfg.SetDefaults(dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes the TOML file at path into cfg. Keys that match no
// field are rejected.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%s: unknown config keys: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadDotEnv loads the .env files that exist. Variables already set in the
// environment are left alone. A file that exists but does not parse is an
// error.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Save writes cfg to path as TOML with owner-only permissions.
func Save(cfg *Config, path string) error {
	var buf bytes.Buffer
	buf.WriteString("# termfolio configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := util.AtomicWriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies environment variable overrides.
//
// Supported:
//   - TERMFOLIO_RESUME, TERMFOLIO_PROMPT_USER, TERMFOLIO_DOWNLOAD_FILE
//   - TERMFOLIO_THEME, TERMFOLIO_SIZE, TERMFOLIO_DARK
//   - TERMFOLIO_ADDR (or PORT), TERMFOLIO_DB, TERMFOLIO_RATE_LIMIT, TERMFOLIO_BURST
//   - TERMFOLIO_LOG_LEVEL
func (c *Config) ApplyEnvOverrides() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	setString("TERMFOLIO_RESUME", &c.Profile.Resume)
	setString("TERMFOLIO_PROMPT_USER", &c.Profile.PromptUser)
	setString("TERMFOLIO_DOWNLOAD_FILE", &c.Profile.DownloadFile)
	setString("TERMFOLIO_THEME", &c.UI.Theme)
	setString("TERMFOLIO_SIZE", &c.UI.Size)
	setString("TERMFOLIO_DB", &c.Server.Database)
	setString("TERMFOLIO_LOG_LEVEL", &c.LogLevel)

	if dark := os.Getenv("TERMFOLIO_DARK"); dark != "" {
		c.UI.Dark = dark == "1" || strings.EqualFold(dark, "true")
	}

	// PORT is the convention on most hosting platforms.
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	setString("TERMFOLIO_ADDR", &c.Server.Addr)

	if v := os.Getenv("TERMFOLIO_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Server.RateLimit = f
		}
	}
	if v := os.Getenv("TERMFOLIO_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Server.Burst = n
		}
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks the configuration against the known themes and sizes.
func (c *Config) Validate() error {
	return c.ValidateWith(knownThemes, knownSizes)
}

// Theme and size names accepted by Validate. The cli sets these from the
// style catalog so this package does not depend on the UI.
var knownThemes, knownSizes []string

// SetCatalog registers the theme and size names Validate accepts. An
// empty catalog disables those checks.
func SetCatalog(cat prefs.Catalog) {
	knownThemes, knownSizes = cat.Themes, cat.Sizes
}

// ValidateWith validates against explicit theme and size lists.
func (c *Config) ValidateWith(themes, sizes []string) error {
	var errs ValidateErrors

	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("invalid level '%s', must be one of: debug, info, warn, error", c.LogLevel),
		})
	}

	if len(themes) > 0 && !slices.Contains(themes, c.UI.Theme) {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("unknown theme '%s', must be one of: %s", c.UI.Theme, strings.Join(themes, ", ")),
		})
	}
	if len(sizes) > 0 && !slices.Contains(sizes, c.UI.Size) {
		errs = append(errs, ValidationError{
			Field:   "ui.size",
			Message: fmt.Sprintf("unknown size '%s', must be one of: %s", c.UI.Size, strings.Join(sizes, ", ")),
		})
	}

	if c.Server.Addr == "" {
		errs = append(errs, ValidationError{Field: "server.addr", Message: "must not be empty"})
	}
	if c.Server.RateLimit <= 0 {
		errs = append(errs, ValidationError{Field: "server.rate_limit", Message: "must be positive"})
	}
	if c.Server.Burst < 1 {
		errs = append(errs, ValidationError{Field: "server.burst", Message: "must be at least 1"})
	}
	if c.Server.MaxInput < 1 {
		errs = append(errs, ValidationError{Field: "server.max_input", Message: "must be at least 1"})
	}
	if c.Server.MaxSessions < 0 {
		errs = append(errs, ValidationError{Field: "server.max_sessions", Message: "must not be negative"})
	}
	for field, value := range map[string]string{
		"server.idle_timeout":    c.Server.IdleTimeout,
		"server.prefs_retention": c.Server.PrefsRetention,
	} {
		if d, err := time.ParseDuration(value); err != nil || d <= 0 {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("invalid duration '%s'", value),
			})
		}
	}

	if len(errs) > 0 {
		slices.SortFunc(errs, func(a, b ValidationError) int { return strings.Compare(a.Field, b.Field) })
		return errs
	}
	return nil
}

// String returns the configuration as TOML.
func (c *Config) String() string {
	var buf bytes.Buffer
	_ = toml.NewEncoder(&buf).Encode(c)
	return buf.String()
}

// =============================================================================
// SINGLETON PATTERN (THREAD-SAFE)
// =============================================================================

var (
	globalConfig   *Config
	globalConfigMu sync.RWMutex
)

// Global returns the global configuration instance, or the defaults when
// none has been set. Thread-safe.
func Global() *Config {
	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	if globalConfig == nil {
		return Default()
	}
	return globalConfig
}

// SetGlobal sets the global configuration instance. Thread-safe.
func SetGlobal(cfg *Config) {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting clears the global config between tests.
func ResetGlobalForTesting() {
	SetGlobal(nil)
}
