// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// VISITOR MANAGER
// =============================================================================

// DefaultIdleTimeout is how long a visitor session survives without
// activity.
const DefaultIdleTimeout = 30 * time.Minute

// ManagerConfig holds configuration for the visitor manager.
type ManagerConfig struct {
	// IdleTimeout evicts sessions idle for longer (default: 30 minutes)
	IdleTimeout time.Duration

	// MaxSessions caps live sessions; the least recently active is evicted
	// first. Zero means no cap.
	MaxSessions int

	// Known reports whether an ID that has no live session was issued
	// before, e.g. because preferences are stored under it. Nil means
	// only live IDs are known.
	Known func(id string) bool
}

// Factory builds the session for a new visitor.
type Factory func(id string) *Session

// Visitor is one browser's session. Access goes through Do so a visitor's
// commands run one at a time.
type Visitor struct {
	mu           sync.Mutex
	id           string
	session      *Session
	startTime    time.Time
	lastActivity time.Time
}

// ID returns the visitor's session ID.
func (v *Visitor) ID() string {
	return v.id
}

// Do runs fn with exclusive access to the visitor's session.
func (v *Visitor) Do(fn func(s *Session)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(v.session)
}

// Manager tracks visitor sessions by ID.
type Manager struct {
	mu       sync.Mutex
	visitors map[string]*Visitor
	factory  Factory
	cfg      ManagerConfig
	now      func() time.Time
}

// NewManager creates a visitor manager.
func NewManager(cfg ManagerConfig, factory Factory) *Manager {
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	return &Manager{
		visitors: make(map[string]*Visitor),
		factory:  factory,
		cfg:      cfg,
		now:      time.Now,
	}
}

// NewID returns a fresh visitor ID.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like an ID from NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Acquire returns the visitor for id and records activity. An ID that is
// neither live nor Known is replaced with a fresh one, so the returned ID
// may differ from id.
func (m *Manager) Acquire(id string) (v *Visitor, created bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if v, ok := m.visitors[id]; ok {
		v.lastActivity = now
		return v, false
	}

	if !ValidID(id) || m.cfg.Known == nil || !m.cfg.Known(id) {
		id = NewID()
	}
	if m.cfg.MaxSessions > 0 && len(m.visitors) >= m.cfg.MaxSessions {
		m.evictOldestLocked()
	}
	v = &Visitor{
		id:           id,
		session:      m.factory(id),
		startTime:    now,
		lastActivity: now,
	}
	m.visitors[id] = v
	return v, true
}

// Lookup returns the visitor for id without creating one.
func (m *Manager) Lookup(id string) (*Visitor, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.visitors[id]
	if ok {
		v.lastActivity = m.now()
	}
	return v, ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.visitors)
}

// Sweep evicts idle sessions and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.cfg.IdleTimeout)
	removed := 0
	for id, v := range m.visitors {
		if v.lastActivity.Before(cutoff) {
			delete(m.visitors, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done. onSweep, if set, is called
// after each sweep that removed sessions.
func (m *Manager) Run(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}

func (m *Manager) evictOldestLocked() {
	var oldest *Visitor
	for _, v := range m.visitors {
		if oldest == nil || v.lastActivity.Before(oldest.lastActivity) {
			oldest = v
		}
	}
	if oldest != nil {
		delete(m.visitors, oldest.id)
	}
}

// =============================================================================
// STATUS
// =============================================================================

// Status summarises the live sessions.
type Status struct {
	Sessions    int           `json:"sessions"`
	OldestAge   time.Duration `json:"-"`
	IdleTimeout time.Duration `json:"-"`
	Oldest      string        `json:"oldest"`
}

// GetStatus returns a snapshot of the manager.
func (m *Manager) GetStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	st := Status{Sessions: len(m.visitors), IdleTimeout: m.cfg.IdleTimeout}
	for _, v := range m.visitors {
		if age := now.Sub(v.startTime); age > st.OldestAge {
			st.OldestAge = age
		}
	}
	st.Oldest = FormatDuration(st.OldestAge)
	return st
}

// FormatDuration formats a duration as "1h 5m", "5m 30s", or "45s".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	s := int(d%time.Minute) / int(time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
