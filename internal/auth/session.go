package auth

import (
	"sync"

	"github.com/reclaimit/reclaimit/internal/model"
)

// Session holds the signed-in identity for one client context and pushes a
// notification to registered listeners on every change. Listeners also get
// an immediate notification with the state at registration time, so a
// subscriber never has to poll.
type Session struct {
	mu        sync.Mutex
	user      *model.Identity
	nextID    int
	listeners map[int]func(*model.Identity)
}

// NewSession creates an empty (signed-out) session.
func NewSession() *Session {
	return &Session{listeners: make(map[int]func(*model.Identity))}
}

// NewSessionFor creates a session already signed in as the given identity.
func NewSessionFor(user *model.Identity) *Session {
	s := NewSession()
	s.user = user
	return s
}

// Current returns the signed-in identity, or nil.
func (s *Session) Current() *model.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// SetUser signs the session in as the given identity and notifies listeners.
func (s *Session) SetUser(user *model.Identity) {
	s.mu.Lock()
	s.user = user
	fns := s.snapshotListeners()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(user)
	}
}

// Clear signs the session out and notifies listeners.
func (s *Session) Clear() {
	s.SetUser(nil)
}

// OnChange registers a listener. It is invoked immediately with the current
// identity and again on every later change. The returned func removes the
// listener; it is safe to call more than once.
func (s *Session) OnChange(fn func(*model.Identity)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	current := s.user
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// snapshotListeners must be called with the lock held.
func (s *Session) snapshotListeners() []func(*model.Identity) {
	fns := make([]func(*model.Identity), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	return fns
}
