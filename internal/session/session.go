// Package session gives each connected editor a server-side undo/redo
// history confined behind a mutex.
//
// A [history.History] is not safe for concurrent mutation, so a Session
// owns exactly one instance and serialises every access. The [Manager]
// tracks live sessions and evicts idle ones.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/redlinehq/redline/internal/history"
	"github.com/redlinehq/redline/internal/observe"
)

// ErrNotFound is returned when a session id is unknown or already closed.
var ErrNotFound = errors.New("session: not found")

// DefaultIdleTTL is how long an untouched session survives before the
// janitor evicts it.
const DefaultIdleTTL = 30 * time.Minute

// janitorInterval is how often the janitor sweeps for idle sessions.
const janitorInterval = time.Minute

// Session owns one editing session's text history. All exported methods
// are safe for concurrent use.
type Session struct {
	// ID is the opaque identifier handed to the client.
	ID string

	mu       sync.Mutex
	hist     *history.History
	lastSeen time.Time
}

// Push records text as the session's new current state.
func (s *Session) Push(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	s.hist.Push(text)
}

// Undo steps back one snapshot. ok is false when there is nothing to
// undo.
func (s *Session) Undo() (text string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.hist.Undo()
}

// Redo steps forward one snapshot. ok is false when there is nothing to
// redo.
func (s *Session) Redo() (text string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.hist.Redo()
}

// Current returns the session's current text. ok is false when nothing
// has been pushed yet.
func (s *Session) Current() (text string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Current()
}

// LastActivity returns when the session was last pushed, undone, or
// redone.
func (s *Session) LastActivity() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// touch must be called with s.mu held.
func (s *Session) touch() {
	s.lastSeen = time.Now()
}

// Manager tracks live sessions by id. All exported methods are safe for
// concurrent use.
type Manager struct {
	historyCap int
	idleTTL    time.Duration
	metrics    *observe.Metrics

	mu       sync.Mutex
	sessions map[string]*Session
}

// Option is a functional option for [NewManager].
type Option func(*Manager)

// WithHistoryCap sets the per-session undo snapshot cap. Default:
// [history.DefaultCap].
func WithHistoryCap(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.historyCap = n
		}
	}
}

// WithIdleTTL sets how long an untouched session survives. Default:
// [DefaultIdleTTL].
func WithIdleTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.idleTTL = d
		}
	}
}

// WithMetrics attaches observability instruments for the active-session
// gauge. When nil (the default), nothing is recorded.
func WithMetrics(met *observe.Metrics) Option {
	return func(m *Manager) {
		m.metrics = met
	}
}

// NewManager returns an empty [Manager].
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		idleTTL:  DefaultIdleTTL,
		sessions: make(map[string]*Session),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Create opens a new session and returns it.
func (m *Manager) Create(ctx context.Context) *Session {
	s := &Session{
		ID:       newID(),
		hist:     history.New(m.historyCap),
		lastSeen: time.Now(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.ActiveSessions.Add(ctx, 1)
	}
	return s
}

// Get returns the session with the given id, or [ErrNotFound].
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Close removes the session with the given id. Closing an unknown id
// returns [ErrNotFound].
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	if m.metrics != nil {
		m.metrics.ActiveSessions.Add(ctx, -1)
	}
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Janitor evicts sessions idle for longer than the TTL until ctx is
// cancelled. Run it in its own goroutine.
func (m *Manager) Janitor(ctx context.Context) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.evictIdle(ctx)
		}
	}
}

// EvictIdleOnce runs a single eviction sweep and returns the number of
// sessions removed. Exposed for tests; Janitor calls it periodically.
func (m *Manager) EvictIdleOnce(ctx context.Context) int {
	return m.evictIdle(ctx)
}

func (m *Manager) evictIdle(ctx context.Context) int {
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	var stale []string
	for id, s := range m.sessions {
		if s.LastActivity().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	for _, id := range stale {
		slog.Info("evicted idle session", "session_id", id)
		if m.metrics != nil {
			m.metrics.ActiveSessions.Add(ctx, -1)
		}
	}
	return len(stale)
}

// newID returns a 16-byte random hex identifier.
func newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms.
		panic("session: rand: " + err.Error())
	}
	return hex.EncodeToString(b[:])
}
