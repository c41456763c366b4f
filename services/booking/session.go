package booking

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type sessionEntry struct {
	widget   *Widget
	lastSeen time.Time
}

// SessionRegistry keeps one Widget per booking session in memory.
type SessionRegistry struct {
	mu        sync.Mutex
	sessions  map[string]*sessionEntry
	newWidget func() *Widget
	now       func() time.Time
}

// NewSessionRegistry returns a registry that builds widgets with newWidget.
func NewSessionRegistry(newWidget func() *Widget) *SessionRegistry {
	return &SessionRegistry{
		sessions:  make(map[string]*sessionEntry),
		newWidget: newWidget,
		now:       time.Now,
	}
}

// Create starts a new session.
func (r *SessionRegistry) Create() (string, *Widget) {
	id := uuid.New().String()
	w := r.newWidget()

	r.mu.Lock()
	r.sessions[id] = &sessionEntry{widget: w, lastSeen: r.now()}
	r.mu.Unlock()
	return id, w
}

// Get returns the session's widget and marks it as recently used.
func (r *SessionRegistry) Get(id string) (*Widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	entry.lastSeen = r.now()
	return entry.widget, nil
}

// Delete drops a session.
func (r *SessionRegistry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// SweepIdle removes sessions unused for longer than maxIdle, except those
// with a submission in flight, and returns how many were removed.
func (r *SessionRegistry) SweepIdle(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	removed := 0
	for id, entry := range r.sessions {
		if entry.lastSeen.After(cutoff) || entry.widget.State() == StateSubmitting {
			continue
		}
		delete(r.sessions, id)
		removed++
	}
	return removed
}

// Len returns the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
