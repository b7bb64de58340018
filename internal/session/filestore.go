package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fleetory/console/internal/apperrors"
	"github.com/fleetory/console/internal/models"
)

// FileStore persists the session as a single JSON record on disk, so the
// session survives console restarts the way browser storage survives reloads.
// Writes go through a temp file and rename, which keeps the commit atomic
// even if the process dies mid-write.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store backed by the given file.
// The parent directory is created if missing.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty session file path", apperrors.ErrStorageFailure)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%w: create session dir: %v", apperrors.ErrStorageFailure, err)
	}

	return &FileStore{path: path}, nil
}

// DefaultFilePath returns the session file location under the user config dir
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: resolve user config dir: %v", apperrors.ErrStorageFailure, err)
	}
	return filepath.Join(dir, "fleetory", "session.json"), nil
}

func (f *FileStore) Read() (models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.read()
}

func (f *FileStore) Commit(s models.Session) error {
	if !complete(s) {
		return apperrors.ErrIncompleteSession
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: encode session: %v", apperrors.ErrStorageFailure, err)
	}

	// Write to a temp file in the same directory and rename over the
	// record, so a reader never observes a half written session
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".session-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", apperrors.ErrStorageFailure, err)
	}
	defer os.Remove(tmp.Name()) // nolint:errcheck

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("%w: chmod temp file: %v", apperrors.ErrStorageFailure, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close() // nolint:errcheck
		return fmt.Errorf("%w: write session: %v", apperrors.ErrStorageFailure, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp file: %v", apperrors.ErrStorageFailure, err)
	}

	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("%w: rename session file: %v", apperrors.ErrStorageFailure, err)
	}

	return nil
}

func (f *FileStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	switch {
	case err == nil, os.IsNotExist(err):
		return nil
	default:
		return fmt.Errorf("%w: remove session file: %v", apperrors.ErrStorageFailure, err)
	}
}

func (f *FileStore) IsAuthenticated() bool {
	s, err := f.Read()
	return err == nil && s.Authenticated()
}

func (f *FileStore) Role() models.Role {
	s, err := f.Read()
	if err != nil {
		return models.RoleNone
	}
	return s.Role
}

// read expects f.mu to be held
func (f *FileStore) read() (models.Session, error) {
	data, err := os.ReadFile(f.path)
	switch {
	case os.IsNotExist(err):
		return models.Session{}, apperrors.ErrNoSession
	case err != nil:
		return models.Session{}, fmt.Errorf("%w: read session file: %v", apperrors.ErrStorageFailure, err)
	}

	var s models.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return models.Session{}, fmt.Errorf("%w: decode session file: %v", apperrors.ErrStorageFailure, err)
	}

	if !s.Authenticated() {
		return models.Session{}, apperrors.ErrNoSession
	}

	return s, nil
}
