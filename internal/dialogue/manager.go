package dialogue

import (
	"context"
	"errors"
	"sync"

	"github.com/arctika/intake/internal/models"
)

var (
	// ErrBusy means an earlier message for this session is still being
	// answered. The shell should keep input disabled and retry after the
	// pending reply arrives.
	ErrBusy = errors.New("session is processing a previous message")

	// ErrSessionNotFound means the session id is unknown, usually after a
	// server restart.
	ErrSessionNotFound = errors.New("session not found")
)

// Manager owns the live sessions. It serializes input per session with a
// busy flag and throws away replies that resolve after the session was reset
// or restored underneath them.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ctrl     *Controller
}

func NewManager(ctrl *Controller) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		ctrl:     ctrl,
	}
}

// Start creates a new session and returns a copy of it with its greeting
// messages.
func (m *Manager) Start(lang string) (*Session, []Message) {
	s := NewSession(lang)
	greetings := s.Greetings()
	view := s.clone()
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return view, greetings
}

// Get returns a detached copy of the session for an id. The live session
// never leaves the manager, so callers reading the copy cannot race a turn
// that is being adopted concurrently.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.clone(), nil
}

// Message runs one user input through the controller. At most one call per
// session is in flight at a time; a second concurrent call gets ErrBusy. If
// the session is reset while the controller is working, the late reply is
// dropped and the caller gets an empty message list.
func (m *Manager) Message(ctx context.Context, id, input string) ([]Message, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}
	if s.busy {
		m.mu.Unlock()
		return nil, ErrBusy
	}
	s.busy = true
	epoch := s.epoch
	work := s.clone()
	m.mu.Unlock()

	replies, err := m.ctrl.Respond(ctx, work, input)

	m.mu.Lock()
	s.busy = false
	stale := s.epoch != epoch
	if !stale {
		s.adopt(work)
	}
	m.mu.Unlock()

	if stale {
		return nil, nil
	}
	return replies, err
}

// Reset restarts a session in the given language, invalidating any in-flight
// reply, and returns the fresh greetings.
func (m *Manager) Reset(id, lang string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.Reset(lang)
	return s.Greetings(), nil
}

// Resume creates a session restored from a saved progress snapshot and
// returns a detached copy of it.
func (m *Manager) Resume(snap *models.ProgressSnapshot) *Session {
	s := NewSession(snap.Language)
	s.Restore(snap)
	view := s.clone()
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return view
}
