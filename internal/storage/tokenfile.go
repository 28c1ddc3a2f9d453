// Package storage provides durable homes for the session token.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/sentinel/internal/common"
	"github.com/bobmcallan/sentinel/internal/interfaces"
)

// TokenKey is the fixed key the token is stored under.
const TokenKey = "access_token"

// credentials is the on-disk layout of the token file.
type credentials struct {
	AccessToken string `toml:"access_token"`
}

// FileTokenStore keeps the token in a TOML file readable only by its owner.
type FileTokenStore struct {
	path   string
	logger *common.Logger
	mu     sync.Mutex
}

// NewFileTokenStore returns a store backed by path. The file and its parent
// directory are created on first Save.
func NewFileTokenStore(path string, logger *common.Logger) *FileTokenStore {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &FileTokenStore{path: path, logger: logger}
}

// Path returns the backing file location.
func (s *FileTokenStore) Path() string { return s.path }

// Load returns the stored token or "" if the file does not exist.
func (s *FileTokenStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return "", nil
	}

	var creds credentials
	if err := toml.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return creds.AccessToken, nil
}

// Save writes the token atomically: temp file in the same directory, then rename.
func (s *FileTokenStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	data, err := toml.Marshal(credentials{AccessToken: token})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to restrict temp file: %w", err)
	}
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	s.logger.Debug().Str("path", s.path).Msg("Token persisted")
	return nil
}

// Clear deletes the token file.
func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	s.logger.Debug().Str("path", s.path).Msg("Token removed")
	return nil
}

var _ interfaces.TokenStore = (*FileTokenStore)(nil)
