package service

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Conn is the part of a WebSocket connection the manager needs.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

var ErrSessionNotFound = errors.New("session not found")

// SessionManager tracks live WebSocket sessions so they can be closed on shutdown.
type SessionManager struct {
	log      zerolog.Logger
	sessions map[string]Conn
	closed   bool
	mu       sync.RWMutex
}

func NewSessionManager(log zerolog.Logger) *SessionManager {
	return &SessionManager{
		log:      log,
		sessions: make(map[string]Conn),
	}
}

// Register adds conn under a fresh session id. After CloseAll the connection is
// closed right away and ok is false.
func (sm *SessionManager) Register(conn Conn) (id string, ok bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.closed {
		conn.Close()
		return "", false
	}
	id = uuid.New().String()
	sm.sessions[id] = conn
	sm.log.Debug().Str("session", id).Int("sessions", len(sm.sessions)).Msg("Registered session")
	return id, true
}

func (sm *SessionManager) Unregister(id string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if _, exists := sm.sessions[id]; !exists {
		return
	}
	delete(sm.sessions, id)
	sm.log.Debug().Str("session", id).Int("sessions", len(sm.sessions)).Msg("Unregistered session")
}

// Send writes v as JSON to the session's connection.
func (sm *SessionManager) Send(id string, v interface{}) error {
	sm.mu.RLock()
	conn, exists := sm.sessions[id]
	sm.mu.RUnlock()
	if !exists {
		return ErrSessionNotFound
	}
	return conn.WriteJSON(v)
}

func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// CloseAll closes every session and refuses new ones.
func (sm *SessionManager) CloseAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.closed = true
	for id, conn := range sm.sessions {
		if err := conn.Close(); err != nil {
			sm.log.Warn().Err(err).Str("session", id).Msg("Failed to close session")
		}
		delete(sm.sessions, id)
	}
	sm.log.Info().Msg("Closed all sessions")
}
