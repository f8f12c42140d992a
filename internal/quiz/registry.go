package quiz

import "sync"

// Registry holds the in-progress attempt per session. Starting a new attempt
// replaces and discards the previous one; nothing here survives a restart.
type Registry struct {
	mu       sync.RWMutex
	attempts map[string]*Attempt
}

// NewRegistry creates an empty attempt registry.
func NewRegistry() *Registry {
	return &Registry{attempts: make(map[string]*Attempt)}
}

// Start registers a fresh attempt for the session.
func (r *Registry) Start(sessionID string, attempt *Attempt) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[sessionID] = attempt
}

// Get returns the session's current attempt, if any.
func (r *Registry) Get(sessionID string) (*Attempt, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	attempt, ok := r.attempts[sessionID]
	return attempt, ok
}
