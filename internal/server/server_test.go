// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/termfolio/internal/resume"
	"github.com/jeranaias/termfolio/internal/session"
	"github.com/jeranaias/termfolio/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	if cfg.Resume == nil {
		cfg.Resume = resume.Static(resume.Default())
	}
	s, err := New(cfg)
	require.NoError(t, err)
	return s
}

// client carries the session cookie between requests.
type client struct {
	t      *testing.T
	srv    *Server
	cookie *http.Cookie
}

func newClient(t *testing.T, srv *Server) *client {
	return &client{t: t, srv: srv}
}

func (c *client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	rec := httptest.NewRecorder()
	c.srv.Handler().ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) exec(input string) execResponse {
	c.t.Helper()
	rec := c.do(http.MethodPost, "/api/exec", gin.H{"input": input})
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp execResponse
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (c *client) input(path string, body gin.H) string {
	c.t.Helper()
	rec := c.do(http.MethodPost, path, body)
	require.Equal(c.t, http.StatusOK, rec.Code, rec.Body.String())
	var resp inputResponse
	require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Input
}

// =============================================================================
// PAGE
// =============================================================================

func TestIndexRendersTerminal(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))

	rec := c.do(http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Saswat Priyadarshan")
	assert.Contains(t, body, "saswat@portfolio:~$")
	assert.Contains(t, body, "Welcome to Saswat Priyadarshan")
	assert.Contains(t, body, `class="dark theme-default size-medium"`)
	assert.Contains(t, body, `/static/terminal.js`)

	require.NotNil(t, c.cookie)
	assert.True(t, session.ValidID(c.cookie.Value))
	assert.True(t, c.cookie.HttpOnly)
}

func TestSecurityHeaders(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))
	rec := c.do(http.MethodGet, "/", nil)

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "script-src 'self'")
}

func TestStaticAssets(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))

	rec := c.do(http.MethodGet, "/static/terminal.js", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/exec")

	rec = c.do(http.MethodGet, "/static/terminal.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ".text-green-600")
}

// =============================================================================
// EXEC
// =============================================================================

func TestExecReturnsEchoAndOutput(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))

	resp := c.exec("whoami")
	require.Len(t, resp.Lines, 2)
	assert.Contains(t, resp.Lines[0], "saswat@portfolio:~$")
	assert.Contains(t, resp.Lines[0], "text-yellow-600")
	assert.Contains(t, resp.Lines[0], "whoami")
	assert.Contains(t, resp.Lines[1], "Saswat Priyadarshan")
	assert.False(t, resp.Clear)
	assert.Empty(t, resp.Download)
	assert.Equal(t, "default", resp.Prefs.Theme)
}

func TestExecEscapesInput(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))

	resp := c.exec("echo <script>alert(1)</script>")
	require.Len(t, resp.Lines, 2)
	assert.NotContains(t, resp.Lines[1], "<script>")
	assert.Contains(t, resp.Lines[1], "&lt;script&gt;")
}

func TestExecKeepsSessionPerCookie(t *testing.T) {
	srv := newTestServer(t, Config{})
	a := newClient(t, srv)
	b := newClient(t, srv)

	a.exec("theme retro")
	assert.Equal(t, "retro", a.exec("whoami").Prefs.Theme)
	assert.Equal(t, "default", b.exec("whoami").Prefs.Theme)
	assert.NotEqual(t, a.cookie.Value, b.cookie.Value)
	assert.Equal(t, 2, srv.Visitors().Len())
}

func TestExecForgedCookieGetsNewSession(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))
	c.cookie = &http.Cookie{Name: CookieName, Value: "not-a-uuid"}

	c.exec("about")
	assert.NotEqual(t, "not-a-uuid", c.cookie.Value)
	assert.True(t, session.ValidID(c.cookie.Value))
}

func TestExecChosenCookieGetsNewSession(t *testing.T) {
	db, err := storage.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := newClient(t, newTestServer(t, Config{DB: db}))
	chosen := "11111111-2222-3333-4444-555555555555"
	c.cookie = &http.Cookie{Name: CookieName, Value: chosen}

	c.exec("theme dracula")
	assert.NotEqual(t, chosen, c.cookie.Value)

	stored, err := db.HasScope(context.Background(), chosen)
	require.NoError(t, err)
	assert.False(t, stored)
}

func TestExecClear(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))
	c.exec("about")

	resp := c.exec("clear")
	assert.True(t, resp.Clear)
	assert.Empty(t, resp.Lines)
}

func TestExecPrefsUpdateTheme(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))

	resp := c.exec("resize large")
	assert.Equal(t, "large", resp.Prefs.Size)
	assert.Equal(t, "64rem", resp.Prefs.MaxWidth)

	resp = c.exec("darkmode off")
	assert.False(t, resp.Prefs.Dark)
	assert.Equal(t, "#F9FAFB", resp.Prefs.Colors["background"])
	assert.Equal(t, "#16A34A", resp.Prefs.Colors["output"])
}

func TestExecNormalisesInput(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))

	resp := c.exec("echo cafe\u0301")
	require.Len(t, resp.Lines, 2)
	assert.Contains(t, resp.Lines[1], "caf\u00e9")
	assert.NotContains(t, resp.Lines[1], "\u0301")
}

func TestExecBoundsInput(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{MaxInput: 10}))

	resp := c.exec("echo 1234567890")
	require.Len(t, resp.Lines, 2)
	assert.Contains(t, resp.Lines[1], "12345")
	assert.NotContains(t, resp.Lines[1], "123456")
}

func TestExecRejectsBadBody(t *testing.T) {
	srv := newTestServer(t, Config{})
	req := httptest.NewRequest(http.MethodPost, "/api/exec", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExecRejectsOversizedBody(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))
	rec := c.do(http.MethodPost, "/api/exec", gin.H{"input": strings.Repeat("x", MaxRequestBodySize)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPrefsPersistInDatabase(t *testing.T) {
	db, err := storage.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	first := newClient(t, newTestServer(t, Config{DB: db}))
	first.exec("theme dracula")

	// A restarted server has no sessions in memory but the same database.
	second := newClient(t, newTestServer(t, Config{DB: db}))
	second.cookie = first.cookie
	rec := second.do(http.MethodGet, "/", nil)
	assert.Contains(t, rec.Body.String(), "theme-dracula")
}

// =============================================================================
// COMPLETION / HISTORY
// =============================================================================

func TestCompleteCycles(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))

	got := c.input("/api/complete", gin.H{"input": "e"})
	assert.Equal(t, "experience", got)
	got = c.input("/api/complete", gin.H{"input": got})
	assert.Equal(t, "education", got)
	got = c.input("/api/complete", gin.H{"input": got})
	assert.Equal(t, "echo", got)

	assert.Equal(t, "help", c.input("/api/complete", gin.H{"input": "he"}))
}

func TestHistoryWalk(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))
	c.exec("about")
	c.exec("skills")

	got := c.input("/api/history", gin.H{"direction": "prev", "input": ""})
	assert.Equal(t, "skills", got)
	got = c.input("/api/history", gin.H{"direction": "prev", "input": got})
	assert.Equal(t, "about", got)
	got = c.input("/api/history", gin.H{"direction": "next", "input": got})
	assert.Equal(t, "skills", got)
}

func TestHistoryRejectsDirection(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))
	for _, body := range []gin.H{{"direction": "sideways"}, {}} {
		rec := c.do(http.MethodPost, "/api/history", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	}
}

// =============================================================================
// DOWNLOAD / HEALTH
// =============================================================================

func TestExecDownloadThenFetch(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))

	resp := c.exec("download resume")
	assert.Equal(t, "/download/resume", resp.Download)

	rec := c.do(http.MethodGet, resp.Download, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename=resume.md`, rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "# Saswat Priyadarshan"))
}

func TestDownloadUnknownTarget(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{}))
	rec := c.do(http.MethodGet, "/download/cv", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, Config{Version: "1.2.3"})
	c := newClient(t, srv)
	c.exec("about")

	rec := c.do(http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "1.2.3", body["version"])
	assert.EqualValues(t, 1, body["sessions"])
}

// =============================================================================
// RATE LIMITING
// =============================================================================

func TestRateLimitReturns429(t *testing.T) {
	c := newClient(t, newTestServer(t, Config{RateLimit: 0.001, Burst: 2}))

	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/health", nil).Code)

	rec := c.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestIPRateLimiterSweep(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	ok, _ := l.Allow("10.0.0.1")
	assert.True(t, ok)
	ok, wait := l.Allow("10.0.0.1")
	assert.False(t, ok)
	assert.Greater(t, wait, time.Duration(0))

	ok, _ = l.Allow("10.0.0.2")
	assert.True(t, ok)
	assert.Equal(t, 2, l.Len())

	now = now.Add(DefaultLimiterTTL + time.Second)
	assert.Equal(t, 2, l.Sweep())
	assert.Equal(t, 0, l.Len())
}

func TestIPHasher(t *testing.T) {
	a, err := NewIPHasher()
	require.NoError(t, err)
	b, err := NewIPHasher()
	require.NoError(t, err)

	h := a.Hash("192.0.2.1")
	assert.Len(t, h, 16)
	assert.Equal(t, h, a.Hash("192.0.2.1"))
	assert.NotEqual(t, h, a.Hash("192.0.2.2"))
	assert.NotEqual(t, h, b.Hash("192.0.2.1"))
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestServeStopsOnCancel(t *testing.T) {
	srv := newTestServer(t, Config{})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestNewRequiresResume(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}
