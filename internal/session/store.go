package session

import (
	"github.com/fleetory/console/internal/models"
)

// Store is the single source of truth for "who is logged in and with what
// role". The gateway and the guard both read it and never keep a copy.
type Store interface {
	// Read the stored session
	// Must return apperrors.ErrNoSession if no access token is stored
	Read() (models.Session, error)

	// Commit persists the whole record in one operation.
	// Must return apperrors.ErrIncompleteSession before writing anything
	// if a field is missing: a partial session (token without role) must
	// never be observable
	Commit(s models.Session) error

	// Clear removes the stored session
	// Clearing an already empty store is a no-op, not an error
	Clear() error

	// IsAuthenticated is true iff a non-empty access token is stored
	IsAuthenticated() bool

	// Role returns the stored role, or models.RoleNone if nothing is stored
	Role() models.Role
}

// complete reports whether every session field is populated.
// Checked before any write so a commit is all-or-nothing.
func complete(s models.Session) bool {
	return s.AccessToken != "" &&
		s.RefreshToken != "" &&
		s.UserID != "" &&
		s.Email != "" &&
		s.Role.Known()
}
