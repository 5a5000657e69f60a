// Package session holds per-user interactive state: the open database
// connection, the most recent query result, and the current chart
// selections. There is no ambient global; everything hangs off a State
// owned by the Manager.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dbglance/dbglance/internal/database"
)

// DefaultTTL is how long an idle session survives before the janitor
// reclaims its connection and temp file.
const DefaultTTL = 2 * time.Hour

// State is one user session's mutable state. All accessors are
// mutex-guarded: within a session the model is request-per-interaction,
// but a browser can still fire overlapping requests.
type State struct {
	ID string

	mu        sync.Mutex
	db        *database.DB
	result    *database.Result
	lastQuery string
	chartKind string
	chartX    string
	chartY    string
	lastSeen  time.Time
}

// DB returns the open database connection, or nil.
func (s *State) DB() *database.DB {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db
}

// SetDB installs a freshly loaded database, closing the previous
// connection and dropping the previous result: a result from an older
// upload must never feed the presenters or the chart builder.
func (s *State) SetDB(db *database.DB) {
	s.mu.Lock()
	old := s.db
	s.db = db
	s.result = nil
	s.lastQuery = ""
	s.mu.Unlock()

	_ = old.Close()
}

// Result returns the most recent query result, or nil.
func (s *State) Result() *database.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// SetResult records a new query result. Failed executions must not call
// this; the prior result stays current until superseded by a success.
func (s *State) SetResult(query string, res *database.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = query
	s.result = res
}

// LastQuery returns the text of the query that produced Result.
func (s *State) LastQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery
}

// ChartSelections returns the last chart kind and axis columns chosen in
// the visualization view. Used only to re-fill the form; validation
// always runs against the current result.
func (s *State) ChartSelections() (kind, x, y string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chartKind, s.chartX, s.chartY
}

// SetChartSelections remembers the visualization form state.
func (s *State) SetChartSelections(kind, x, y string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chartKind, s.chartX, s.chartY = kind, x, y
}

func (s *State) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *State) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// close releases the session's connection and backing file.
func (s *State) close() {
	s.mu.Lock()
	db := s.db
	s.db = nil
	s.result = nil
	s.mu.Unlock()

	_ = db.Close()
}

// Manager owns all live sessions in the process.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*State
	ttl      time.Duration
	logger   *slog.Logger
}

// NewManager creates a session manager. ttl <= 0 means DefaultTTL.
func NewManager(ttl time.Duration, logger *slog.Logger) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		sessions: make(map[string]*State),
		ttl:      ttl,
		logger:   logger,
	}
}

// Get returns the session with the given ID, marking it live. When the
// ID is unknown (empty, expired, or forged) a fresh session is created,
// so callers always get a usable State; check State.ID against the
// requested ID to know whether the cookie needs rewriting.
func (m *Manager) Get(id string) *State {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.touch(now)
		return s
	}

	s := &State{ID: uuid.New().String()}
	s.touch(now)
	m.sessions[s.ID] = s
	m.logger.Debug("session created", "id", s.ID)
	return s
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reap closes and removes sessions idle for longer than the TTL.
// Returns how many were reclaimed.
func (m *Manager) Reap(now time.Time) int {
	m.mu.Lock()
	var expired []*State
	for id, s := range m.sessions {
		if s.idleSince(now) > m.ttl {
			delete(m.sessions, id)
			expired = append(expired, s)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
		m.logger.Debug("session expired", "id", s.ID)
	}
	return len(expired)
}

// Janitor reaps expired sessions periodically until the context is
// cancelled, then closes every remaining session.
func (m *Manager) Janitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Close()
			return
		case <-ticker.C:
			m.Reap(time.Now())
		}
	}
}

// Close releases every session's resources.
func (m *Manager) Close() {
	m.mu.Lock()
	sessions := make([]*State, 0, len(m.sessions))
	for id, s := range m.sessions {
		delete(m.sessions, id)
		sessions = append(sessions, s)
	}
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}
