package storage

import (
	"sync"

	"github.com/bobmcallan/sentinel/internal/interfaces"
)

// MemoryTokenStore holds the token for the lifetime of the process.
type MemoryTokenStore struct {
	mu    sync.Mutex
	token string

	// Saves counts Save calls; tests use it to assert persistence happened.
	Saves int
	// SaveErr, when set, is returned by Save without storing.
	SaveErr error
}

// NewMemoryTokenStore returns a store preloaded with token, which may be "".
func NewMemoryTokenStore(token string) *MemoryTokenStore {
	return &MemoryTokenStore{token: token}
}

func (m *MemoryTokenStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryTokenStore) Save(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.token = token
	return nil
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

var _ interfaces.TokenStore = (*MemoryTokenStore)(nil)
