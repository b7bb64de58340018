package session

import (
	"sync"

	"github.com/fleetory/console/internal/apperrors"
	"github.com/fleetory/console/internal/models"
)

// MemStore keeps the session in memory only.
// Used by tests as the injectable substrate so the gateway and the guard can
// be exercised without touching the filesystem.
type MemStore struct {
	mu      sync.Mutex
	current models.Session
	stored  bool
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (m *MemStore) Read() (models.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.stored {
		return models.Session{}, apperrors.ErrNoSession
	}
	return m.current, nil
}

func (m *MemStore) Commit(s models.Session) error {
	if !complete(s) {
		return apperrors.ErrIncompleteSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = s
	m.stored = true
	return nil
}

func (m *MemStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = models.Session{}
	m.stored = false
	return nil
}

func (m *MemStore) IsAuthenticated() bool {
	s, err := m.Read()
	return err == nil && s.Authenticated()
}

func (m *MemStore) Role() models.Role {
	s, err := m.Read()
	if err != nil {
		return models.RoleNone
	}
	return s.Role
}
