// Package session persists the client's credentials and selected-document
// projection across runs. It is the single owner of that state: it is read
// from disk once at construction and every mutation writes through.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/docchat/docchat-cli/internal/model"
)

// State keys. keyLegacyToken duplicates the access token under the key older
// readers expect; Current prefers the canonical key and falls back to it.
const (
	keyAccessToken  = "access_token"
	keyRefreshToken = "refresh_token"
	keyLegacyToken  = "token"
	keySelectedDoc  = "current_pdf"
)

const stateFile = "state.json"

// DefaultDir returns the per-user state directory.
func DefaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "docchat")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "docchat")
}

// Store is a file-backed key/value store for session state. Lifecycle spans
// login to logout/expiry.
type Store struct {
	mu   sync.Mutex
	path string
	vals map[string]string
}

// Open loads existing state from dir (DefaultDir when empty). A missing or
// unreadable state file starts the store empty rather than failing: the user
// is simply unauthenticated.
func Open(dir string) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	s := &Store{path: filepath.Join(dir, stateFile), vals: map[string]string{}}
	if b, err := os.ReadFile(s.path); err == nil {
		_ = json.Unmarshal(b, &s.vals)
	}
	return s
}

// Save persists both tokens plus the legacy alias, overwriting prior values.
func (s *Store) Save(creds model.Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[keyAccessToken] = creds.AccessToken
	s.vals[keyRefreshToken] = creds.RefreshToken
	s.vals[keyLegacyToken] = creds.AccessToken
	return s.flush()
}

// Current returns the best-available access token: the canonical key,
// falling back to the legacy alias, or "" when unauthenticated.
func (s *Store) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.vals[keyAccessToken]; t != "" {
		return t
	}
	return s.vals[keyLegacyToken]
}

// RefreshToken returns the stored refresh token, if any. Kept only for
// completeness; no refresh flow exists.
func (s *Store) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vals[keyRefreshToken]
}

// Clear removes all token keys and the selected-document projection in one
// write. Used on logout and on session expiry.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals = map[string]string{}
	return s.flush()
}

// SaveSelection persists the selected document for the chat page.
func (s *Store) SaveSelection(doc model.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[keySelectedDoc] = string(b)
	return s.flush()
}

// Selection returns the persisted selected document. The projection is
// independent of the live list and is not revalidated against it.
func (s *Store) Selection() (model.Document, bool) {
	s.mu.Lock()
	raw := s.vals[keySelectedDoc]
	s.mu.Unlock()
	if raw == "" {
		return model.Document{}, false
	}
	var doc model.Document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return model.Document{}, false
	}
	return doc, true
}

// flush writes state atomically: temp file in the same dir, then rename.
// Caller holds s.mu.
func (s *Store) flush() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(s.vals, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, stateFile+".*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}
