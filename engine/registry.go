package engine

import (
	"fmt"
	"sync"
)

// Session wraps one preview engine instance behind a mutex. Editor commands
// and the simulation tick may race from different goroutines; every access
// to the wrapped engine must go through With (or an explicit Lock/Unlock
// pair).
type Session struct {
	mu     sync.Mutex
	engine *Engine
}

// With runs fn with exclusive access to the session's engine.
func (s *Session) With(fn func(*Engine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.engine)
}

// Lock takes exclusive access and returns the engine. The caller must call
// Unlock when done. Prefer With.
func (s *Session) Lock() *Engine {
	s.mu.Lock()
	return s.engine
}

// Unlock releases access taken with Lock.
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// SessionRegistry maps preview session IDs to engine sessions. The editor
// shell opens a session when a preview starts and closes it when the
// preview ends; a session that is never closed leaks its engine.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]*Session),
	}
}

// Open creates an engine for the session ID. Opening an ID that is already
// open is an error, not a replace: the editor owns the lifecycle and a
// duplicate open indicates a leaked session.
func (r *SessionRegistry) Open(id string, config Config, renderer Renderer) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sessions[id]; exists {
		return nil, fmt.Errorf("session %q already open", id)
	}
	session := &Session{engine: New(config, renderer)}
	r.sessions[id] = session
	return session, nil
}

// Get returns the session for the ID, or false.
func (r *SessionRegistry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	return session, ok
}

// Each invokes fn for every open session. The registry lock is held for the
// whole walk, so fn must not call back into the registry.
func (r *SessionRegistry) Each(fn func(id string, session *Session)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, session := range r.sessions {
		fn(id, session)
	}
}

// Close removes the session. Returns false if the ID is not open.
func (r *SessionRegistry) Close(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return false
	}
	delete(r.sessions, id)
	return true
}

// Len returns the number of open sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
