// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jeranaias/termfolio/internal/logging"
	"github.com/jeranaias/termfolio/internal/prefs"
	"github.com/jeranaias/termfolio/internal/resume"
	"github.com/jeranaias/termfolio/internal/session"
	"github.com/jeranaias/termfolio/internal/storage"
	"github.com/jeranaias/termfolio/internal/ui/styles"
)

// =============================================================================
// CONSTANTS
// =============================================================================

const (
	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// CookieName holds the visitor's session ID.
	CookieName = "termfolio_sid"

	// DefaultMaxInput bounds one command line, in runes.
	DefaultMaxInput = 256

	// MaxRequestBodySize bounds API request bodies.
	MaxRequestBodySize = 16 << 10

	// ShutdownTimeout is how long in-flight requests get on shutdown.
	ShutdownTimeout = 5 * time.Second

	// Server timeouts
	readTimeout  = 10 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 120 * time.Second

	sweepInterval = time.Minute
	pruneInterval = time.Hour
	cookieMaxAge  = 30 * 24 * 60 * 60
)

//go:embed assets
var assets embed.FS

// =============================================================================
// CONFIG
// =============================================================================

// Config holds server configuration.
type Config struct {
	Addr string

	// Resume is the record every visitor's commands run against.
	Resume *resume.Source

	// DB persists visitor preferences. Nil keeps them in memory.
	DB *storage.DB

	// Defaults are the preferences of a new visitor.
	Defaults prefs.Preferences

	PromptUser   string
	DownloadFile string

	// RateLimit is requests per second per client IP; zero disables it.
	RateLimit float64
	Burst     int

	MaxInput       int
	IdleTimeout    time.Duration
	MaxSessions    int
	PrefsRetention time.Duration
	TrustedProxies []string

	Version string
	Logger  *slog.Logger
}

// =============================================================================
// SERVER
// =============================================================================

// Server serves the web terminal.
type Server struct {
	cfg      Config
	engine   *gin.Engine
	visitors *session.Manager
	limiter  *IPRateLimiter
	hasher   *IPHasher
	logger   *slog.Logger
	http     *http.Server
}

// New builds the server and its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Resume == nil {
		return nil, errors.New("server: resume source is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxInput <= 0 {
		cfg.MaxInput = DefaultMaxInput
	}
	if cfg.Defaults == (prefs.Preferences{}) {
		cfg.Defaults = prefs.Defaults()
	}

	hasher, err := NewIPHasher()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:    cfg,
		hasher: hasher,
		logger: logging.OrDiscard(cfg.Logger).With("component", "server"),
	}
	if cfg.RateLimit > 0 {
		s.limiter = NewIPRateLimiter(cfg.RateLimit, cfg.Burst)
	}
	s.visitors = session.NewManager(session.ManagerConfig{
		IdleTimeout: cfg.IdleTimeout,
		MaxSessions: cfg.MaxSessions,
		Known:       s.knownVisitor,
	}, s.newSession)

	if err := s.buildEngine(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Server) newSession(id string) *session.Session {
	var store prefs.Store = storage.NewMemoryStore()
	if s.cfg.DB != nil {
		store = s.cfg.DB.Scope(id)
	}
	return session.New(session.Config{
		Resume:     s.cfg.Resume,
		Store:      store,
		Defaults:   s.cfg.Defaults,
		Catalog:    styles.Catalog(),
		PromptUser: s.cfg.PromptUser,
		Logger:     s.logger,
	})
}

func (s *Server) buildEngine() error {
	e := gin.New()
	if err := e.SetTrustedProxies(s.cfg.TrustedProxies); err != nil {
		return fmt.Errorf("trusted proxies: %w", err)
	}

	tmpl, err := template.New("").ParseFS(assets, "assets/*.html")
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	e.SetHTMLTemplate(tmpl)

	static, err := fs.Sub(assets, "assets/static")
	if err != nil {
		return fmt.Errorf("static assets: %w", err)
	}

	e.Use(
		RecoveryMiddleware(s.logger),
		SecurityHeadersMiddleware(),
		LoggingMiddleware(s.logger, s.hasher),
		RateLimitMiddleware(s.limiter),
	)

	e.GET("/", s.handleIndex)
	e.StaticFS("/static", http.FS(static))
	e.GET("/health", s.handleHealth)
	e.GET("/download/:target", s.handleDownload)

	api := e.Group("/api", BodyLimitMiddleware(MaxRequestBodySize))
	api.POST("/exec", s.handleExec)
	api.POST("/complete", s.handleComplete)
	api.POST("/history", s.handleHistory)

	s.engine = e
	return nil
}

// knownVisitor accepts a returning visitor whose preferences outlived
// their in-memory session.
func (s *Server) knownVisitor(id string) bool {
	if s.cfg.DB == nil {
		return false
	}
	ok, err := s.cfg.DB.HasScope(context.Background(), id)
	if err != nil {
		s.logger.Debug("visitor lookup failed", "error", err)
		return false
	}
	return ok
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Visitors returns the visitor session manager.
func (s *Server) Visitors() *session.Manager {
	return s.visitors
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Run listens on the configured address and serves until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down gracefully. It
// also runs the resume watcher and the session and preference sweepers.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.cfg.Resume.Watch(ctx); err != nil {
		s.logger.Warn("resume watch disabled", "error", err)
	}
	go s.visitors.Run(ctx, sweepInterval, func(n int) {
		s.logger.Debug("idle sessions evicted", "count", n)
	})
	go s.sweepLoop(ctx)

	s.http = &http.Server{
		Handler:      s.engine,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- s.http.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	return s.Shutdown()
}

// Shutdown stops the server, waiting up to ShutdownTimeout.
func (s *Server) Shutdown() error {
	if s.http == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) sweepLoop(ctx context.Context) {
	sweep := time.NewTicker(sweepInterval)
	defer sweep.Stop()
	prune := time.NewTicker(pruneInterval)
	defer prune.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-sweep.C:
			if s.limiter != nil {
				s.limiter.Sweep()
			}
		case <-prune.C:
			s.prunePrefs(ctx)
		}
	}
}

func (s *Server) prunePrefs(ctx context.Context) {
	if s.cfg.DB == nil || s.cfg.PrefsRetention <= 0 {
		return
	}
	n, err := s.cfg.DB.Prune(ctx, time.Now().Add(-s.cfg.PrefsRetention))
	if err != nil {
		s.logger.Warn("preference prune failed", "error", err)
		return
	}
	if n > 0 {
		s.logger.Info("stale preferences pruned", "rows", n)
	}
}
