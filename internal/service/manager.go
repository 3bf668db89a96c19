package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Defaults apply to every session the manager creates.
type Defaults struct {
	FEN           string
	Duration      time.Duration
	FrameInterval time.Duration
	Logger        zerolog.Logger
}

type SessionManager struct {
	sessions map[string]*Session
	defaults Defaults
	mu       sync.RWMutex
}

func NewSessionManager(defaults Defaults) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		defaults: defaults,
	}
}

// Create starts a session under a fresh id. A zero FEN, Duration or
// FrameInterval in opts falls back to the manager defaults. Sessions always
// log through the manager's logger; opts.Logger is overwritten.
func (sm *SessionManager) Create(opts Options) (*Session, error) {
	if opts.FEN == "" {
		opts.FEN = sm.defaults.FEN
	}
	if opts.Duration == 0 {
		opts.Duration = sm.defaults.Duration
	}
	if opts.FrameInterval == 0 {
		opts.FrameInterval = sm.defaults.FrameInterval
	}
	opts.Logger = sm.defaults.Logger

	s, err := NewSession(uuid.New().String(), opts)
	if err != nil {
		return nil, err
	}

	sm.mu.Lock()
	sm.sessions[s.ID] = s
	sm.mu.Unlock()
	return s, nil
}

func (sm *SessionManager) Get(id string) (*Session, error) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	s, exists := sm.sessions[id]
	if !exists {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (sm *SessionManager) Close(id string) error {
	sm.mu.Lock()
	s, exists := sm.sessions[id]
	delete(sm.sessions, id)
	sm.mu.Unlock()

	if !exists {
		return ErrSessionNotFound
	}
	s.Close()
	return nil
}

// CloseAll ends every session, e.g. on shutdown.
func (sm *SessionManager) CloseAll() {
	sm.mu.Lock()
	sessions := sm.sessions
	sm.sessions = make(map[string]*Session)
	sm.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

func (sm *SessionManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}
