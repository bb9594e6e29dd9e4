// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

func TestStores(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stores := map[string]store{
		"file":   NewFileStore(filepath.Join(t.TempDir(), "prefs.json")),
		"memory": NewMemoryStore(),
		"sqlite": db.Scope("visitor-1"),
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.Get("terminal-theme")
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set("terminal-theme", `"dracula"`))
			require.NoError(t, s.Set("terminal-theme", `"ocean"`))
			require.NoError(t, s.Set("terminal-dark", `false`))

			v, ok, err := s.Get("terminal-theme")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `"ocean"`, v)
		})
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	s := NewFileStore(path)
	_, _, err := s.Get("terminal-dark")
	assert.Error(t, err)

	require.NoError(t, s.Set("terminal-dark", "true"))
	v, ok, err := s.Get("terminal-dark")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreNullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0600))

	s := NewFileStore(path)
	_, ok, err := s.Get("terminal-theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NotPanics(t, func() {
		require.NoError(t, s.Set("terminal-theme", `"dracula"`))
	})
	v, ok, err := s.Get("terminal-theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"dracula"`, v)
}

func TestSQLiteHasScope(t *testing.T) {
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	ok, err := db.HasScope(ctx, "visitor")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Scope("visitor").Set("terminal-dark", "false"))
	ok, err = db.HasScope(ctx, "visitor")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSQLiteScopesAreIsolated(t *testing.T) {
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	a, b := db.Scope("a"), db.Scope("b")
	require.NoError(t, a.Set("terminal-size", `"large"`))

	_, ok, err := b.Get("terminal-size")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "a", a.Scope())
}

func TestSQLitePrune(t *testing.T) {
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	db.now = func() time.Time { return base }
	require.NoError(t, db.Scope("old").Set("terminal-dark", "true"))

	db.now = func() time.Time { return base.Add(48 * time.Hour) }
	require.NoError(t, db.Scope("new").Set("terminal-dark", "false"))

	ctx := context.Background()
	n, err := db.Prune(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	scopes, err := db.Scopes(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, scopes)
}

func TestMemoryStoreLen(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("a", "1"))
	require.NoError(t, s.Set("a", "2"))
	assert.Equal(t, 1, s.Len())
}
