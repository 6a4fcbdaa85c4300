package forms

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Form is what the registry knows about a live session.
type Form interface {
	State() State
}

type session struct {
	form     Form
	kind     string
	lastSeen time.Time
}

// Registry owns the live form sessions, keyed by a generated id. Sessions
// idle longer than ttl are swept by a background janitor; closing a session
// discards its draft entirely (reopening yields a fresh default draft).
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session
	ttl      time.Duration
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

// NewRegistry builds the registry and starts its janitor.
func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[uuid.UUID]*session),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go r.janitor()
	return r
}

// Put registers a new session and returns its id.
func (r *Registry) Put(kind string, f Form) uuid.UUID {
	id := uuid.New()
	r.mu.Lock()
	r.sessions[id] = &session{form: f, kind: kind, lastSeen: r.now()}
	r.mu.Unlock()
	return id
}

// Get returns the session form when id exists under kind, refreshing its
// idle timer.
func (r *Registry) Get(kind string, id uuid.UUID) (Form, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.kind != kind {
		return nil, false
	}
	s.lastSeen = r.now()
	return s.form, true
}

// Close discards a session and its draft.
func (r *Registry) Close(id uuid.UUID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// CloseAfter discards a session after d. Used by the create-product flow,
// which shows its success state for a short fixed window before the dialog
// closes.
func (r *Registry) CloseAfter(id uuid.UUID, d time.Duration) {
	time.AfterFunc(d, func() { r.Close(id) })
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Stop terminates the janitor. Live sessions stay readable until closed.
func (r *Registry) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Registry) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			cutoff := r.now().Add(-r.ttl)
			r.mu.Lock()
			for id, s := range r.sessions {
				if s.lastSeen.Before(cutoff) {
					delete(r.sessions, id)
				}
			}
			r.mu.Unlock()
		}
	}
}
