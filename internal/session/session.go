// Package session holds the bearer token for one client instance.
package session

import (
	"fmt"
	"sync"

	"github.com/bobmcallan/sentinel/internal/common"
	"github.com/bobmcallan/sentinel/internal/interfaces"
)

// Session is a single-slot credential holder. A Session with a nil store
// keeps the token in memory only.
type Session struct {
	mu     sync.RWMutex
	token  string
	store  interfaces.TokenStore
	logger *common.Logger
}

// New creates a session and hydrates it from store when one is given.
// A store that fails to load leaves the session empty; the failure is logged.
func New(store interfaces.TokenStore, logger *common.Logger) *Session {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	s := &Session{store: store, logger: logger}

	if store == nil {
		return s
	}

	tok, err := store.Load()
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to load stored token")
		return s
	}
	s.token = tok
	if tok != "" {
		logger.Debug().Msg("Session hydrated from token store")
	}
	return s
}

// Token returns the current bearer token, or "".
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// HasToken reports whether a token is held.
func (s *Session) HasToken() bool {
	return s.Token() != ""
}

// Persistent reports whether tokens outlive the process.
func (s *Session) Persistent() bool {
	return s.store != nil
}

// SetToken overwrites the in-memory token, then persists it. The in-memory
// token stays set even when persisting fails.
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return nil
}

// ClearToken removes the in-memory and persisted token.
func (s *Session) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if s.store == nil {
		return nil
	}
	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear stored token: %w", err)
	}
	return nil
}
