package importer

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session IDs.
var ErrSessionNotFound = errors.New("import session not found")

// Manager tracks active import sessions by ID for the HTTP layer. Each
// session belongs to one client flow; the manager only provides lookup and
// expiry. Stale sessions are reaped by a background janitor.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
}

type entry struct {
	session  *Session
	lastUsed time.Time
}

// NewManager creates a Manager whose sessions expire after ttl of
// inactivity. The janitor stops when done is closed.
func NewManager(ttl time.Duration, done <-chan struct{}) *Manager {
	m := &Manager{
		sessions: make(map[string]*entry),
		ttl:      ttl,
	}
	go m.janitor(done)
	return m
}

// Create registers a fresh session and returns its ID.
func (m *Manager) Create() (string, *Session) {
	id := uuid.New().String()
	s := NewSession()

	m.mu.Lock()
	m.sessions[id] = &entry{session: s, lastUsed: time.Now()}
	m.mu.Unlock()

	return id, s
}

// Get returns the session for id and refreshes its expiry.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	e.lastUsed = time.Now()
	return e.session, nil
}

// Remove drops a session. Removing an unknown ID is a no-op.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// janitor reaps sessions idle past the TTL once a minute.
func (m *Manager) janitor(done <-chan struct{}) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-m.ttl)
			m.mu.Lock()
			for id, e := range m.sessions {
				if e.lastUsed.Before(cutoff) {
					delete(m.sessions, id)
				}
			}
			m.mu.Unlock()
		}
	}
}
