// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio/internal/config"
	"github.com/jeranaias/termfolio/internal/prefs"
	"github.com/jeranaias/termfolio/internal/storage"
)

// isolate points HOME at a temp dir and clears the environment the
// config layer reads. It returns the config directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{
		"TERMFOLIO_RESUME", "TERMFOLIO_PROMPT_USER", "TERMFOLIO_DOWNLOAD_FILE",
		"TERMFOLIO_THEME", "TERMFOLIO_SIZE", "TERMFOLIO_DARK", "TERMFOLIO_ADDR",
		"TERMFOLIO_DB", "TERMFOLIO_RATE_LIMIT", "TERMFOLIO_BURST", "TERMFOLIO_LOG_LEVEL",
		"PORT", "NO_COLOR", "FORCE_COLOR",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Cleanup(config.ResetGlobalForTesting)
	return filepath.Join(home, ".termfolio")
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

// =============================================================================
// VERSION
// =============================================================================

func TestVersion(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "termfolio version "+Version))

	out, _, err = run(t, "version", "--json")
	require.NoError(t, err)
	var v VersionData
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, Version, v.Version)
	assert.NotEmpty(t, v.GoVersion)
}

// =============================================================================
// EXEC
// =============================================================================

func TestExecPrintsPlainOutput(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "exec", "whoami")
	require.NoError(t, err)
	assert.Equal(t, "Saswat Priyadarshan — Software Engineer @ Microsoft\n", out)
}

func TestExecJoinsArguments(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "exec", "echo", "hello", "world")
	require.NoError(t, err)
	assert.Equal(t, "hello world\n", out)
}

func TestExecHelpAfterDoubleDash(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "exec", "--", "theme", "--help")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "theme <name> - Switch between visual themes\n"))
}

func TestExecRequiresCommand(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "exec")
	assert.Error(t, err)
}

func TestExecPersistsPreferences(t *testing.T) {
	dir := isolate(t)

	_, _, err := run(t, "exec", "theme", "dracula")
	require.NoError(t, err)

	store := storage.NewFileStore(filepath.Join(dir, "prefs.json"))
	p := prefs.Load(store, prefs.Defaults(), prefs.Catalog{Themes: []string{"default", "dracula"}, Sizes: []string{"medium"}})
	assert.Equal(t, "dracula", p.Theme)
}

func TestExecDownloadWritesFile(t *testing.T) {
	dir := isolate(t)

	_, errOut, err := run(t, "exec", "download", "resume")
	require.NoError(t, err)

	want := filepath.Join(dir, "downloads", "resume.md")
	assert.Equal(t, "saved "+want+"\n", errOut)
	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# Saswat Priyadarshan"))
}

func TestExecClearPrintsNothing(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "exec", "clear")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestResumeFlag(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "ada.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: Ada Lovelace\ntitle: Analyst\n"), 0600))

	out, _, err := run(t, "--resume", path, "exec", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
}

func TestInvalidLogLevel(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "--log-level", "loud", "exec", "about")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--log-level")
}

// =============================================================================
// EXPORT
// =============================================================================

func TestExportJSON(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "export", "--format", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Saswat Priyadarshan", doc["name"])
}

func TestExportMarkdownIsPlainWhenPiped(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "export")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Saswat Priyadarshan\n"))
	assert.NotContains(t, out, "\x1b[")
}

func TestExportText(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "export", "-f", "txt")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ABOUT\n"))
}

func TestExportToDirectory(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	out, _, err := run(t, "export", "--format", "html", "--output", dir)
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.Equal(t, filepath.Join(dir, "saswat-priyadarshan-resume.html"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")
}

func TestExportUnknownFormat(t *testing.T) {
	isolate(t)
	_, _, err := run(t, "export", "--format", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "choose from md, txt")
}

// =============================================================================
// CONFIG
// =============================================================================

func TestConfigInitShowPath(t *testing.T) {
	dir := isolate(t)
	want := filepath.Join(dir, "config.toml")

	out, _, err := run(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out)

	out, _, err = run(t, "config", "init")
	require.NoError(t, err)
	assert.Equal(t, "wrote "+want+"\n", out)
	assert.FileExists(t, want)

	_, _, err = run(t, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, _, err = run(t, "config", "init", "--force")
	assert.NoError(t, err)

	out, _, err = run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `addr = ":8080"`)
	assert.Contains(t, out, `theme = "default"`)
}

func TestConfigRejectsInvalidFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\ntheme = \"neon\"\n"), 0600))

	_, _, err := run(t, "--config", path, "config", "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ui.theme")
}

func TestConfigValidate(t *testing.T) {
	isolate(t)

	out, _, err := run(t, "config", "validate")
	require.NoError(t, err)
	assert.Equal(t, "config ok; resume: Saswat Priyadarshan\n", out)
}
