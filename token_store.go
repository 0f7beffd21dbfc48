package authclient

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	goerrors "github.com/goliatone/go-errors"
)

// storedTokens is the on-disk shape, matching the localStorage keys the web
// client used.
type storedTokens struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// FileTokenStore persists the token pair in a JSON file under the user's
// config directory, the durable per-origin storage analog. Writes replace
// the whole file atomically; reads tolerate a missing file.
type FileTokenStore struct {
	mu     sync.RWMutex
	path   string
	logger Logger
}

var _ TokenStore = (*FileTokenStore)(nil)

// NewFileTokenStore creates a store rooted at path, creating parent
// directories on first write.
func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{
		path:   path,
		logger: defLogger{},
	}
}

func (s *FileTokenStore) WithLogger(logger Logger) *FileTokenStore {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *FileTokenStore) Get() string {
	tokens, _ := s.read()
	return tokens.AccessToken
}

func (s *FileTokenStore) GetRefresh() string {
	tokens, _ := s.read()
	return tokens.RefreshToken
}

// Set writes both tokens. An empty refresh token keeps the previously
// stored one, matching how the refresh endpoint may omit it.
func (s *FileTokenStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, _ := s.readLocked()
	if refresh == "" {
		refresh = current.RefreshToken
	}

	return s.writeLocked(storedTokens{AccessToken: access, RefreshToken: refresh})
}

func (s *FileTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear token storage")
	}
	return nil
}

func (s *FileTokenStore) read() (storedTokens, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readLocked()
}

func (s *FileTokenStore) readLocked() (storedTokens, error) {
	var tokens storedTokens

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return tokens, nil
		}
		return tokens, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read token storage")
	}

	if err := json.Unmarshal(data, &tokens); err != nil {
		s.logger.Warn("token storage is corrupt, treating as empty: %v", err)
		return storedTokens{}, nil
	}

	return tokens, nil
}

func (s *FileTokenStore) writeLocked(tokens storedTokens) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create token storage directory")
	}

	data, err := json.Marshal(tokens)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode tokens")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".tokens-*")
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to stage token storage write")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write token storage")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to set token storage permissions")
	}
	if err := tmp.Close(); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to finish token storage write")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to replace token storage")
	}

	return nil
}

// MemoryTokenStore keeps tokens in process memory only. Used by tests and
// hosts that manage their own persistence.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

var _ TokenStore = (*MemoryTokenStore)(nil)

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Get() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryTokenStore) GetRefresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryTokenStore) Set(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	if refresh != "" {
		s.refresh = refresh
	}
	return nil
}

func (s *MemoryTokenStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
	return nil
}
