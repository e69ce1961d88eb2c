// Package session scopes history ledgers to interactive sessions. Each
// session owns its own ledger; nothing is shared across session boundaries.
package session

import (
	"sync"

	"github.com/google/uuid"

	"avatarstudio/internal/history"
)

// Store hands out per-session ledgers, creating them on first use.
type Store struct {
	mu         sync.Mutex
	historyCap int
	ledgers    map[string]*history.Ledger
}

// NewStore creates a registry whose ledgers are bounded at historyCap.
func NewStore(historyCap int) *Store {
	return &Store{
		historyCap: historyCap,
		ledgers:    make(map[string]*history.Ledger),
	}
}

// Ledger returns the ledger owned by the given session, minting a session id
// when none is supplied. The returned id always identifies the ledger.
func (s *Store) Ledger(sessionID string) (string, *history.Ledger) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ledger, ok := s.ledgers[sessionID]
	if !ok {
		ledger = history.NewLedger(s.historyCap)
		s.ledgers[sessionID] = ledger
	}
	return sessionID, ledger
}

// Peek returns the session's ledger without creating one. Read-only paths
// use it so that idle polling from sessionless clients does not grow the
// store; the returned id still mints for empty input so callers can echo a
// usable session id, but nothing is stored until an outcome is recorded.
func (s *Store) Peek(sessionID string) (string, *history.Ledger) {
	if sessionID == "" {
		return uuid.NewString(), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return sessionID, s.ledgers[sessionID]
}

// Drop removes a session and its ledger.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ledgers, sessionID)
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ledgers)
}
