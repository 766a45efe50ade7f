package client

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// Persistent storage keys, one for the session token and one for the
// serialized user.
const (
	TokenKey = "portfolio_auth_token"
	UserKey  = "portfolio_user"
)

// CredentialStore is the client-local persistent storage a session is
// mirrored into. Environments without one run the session with a nil
// store and simply never restore.
type CredentialStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// FileCredentialStore keeps credentials in a small JSON file, the
// closest Go analogue of browser local storage.
type FileCredentialStore struct {
	path string
	mu   sync.Mutex
}

// NewFileCredentialStore opens (or creates) the credential file at path.
func NewFileCredentialStore(path string) *FileCredentialStore {
	return &FileCredentialStore{path: path}
}

func (s *FileCredentialStore) read() map[string]string {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}
	values := map[string]string{}
	if err := json.Unmarshal(content, &values); err != nil {
		return map[string]string{}
	}
	return values
}

func (s *FileCredentialStore) write(values map[string]string) error {
	content, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}
	if err := os.WriteFile(s.path, content, 0o600); err != nil {
		return fmt.Errorf("failed to write credential file %s: %w", s.path, err)
	}
	return nil
}

// Get returns the stored value for key, if any.
func (s *FileCredentialStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.read()[key]
	return value, ok
}

// Set stores value under key.
func (s *FileCredentialStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.read()
	values[key] = value
	return s.write(values)
}

// Delete removes key. Deleting an absent key is not an error.
func (s *FileCredentialStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	values := s.read()
	delete(values, key)
	return s.write(values)
}
