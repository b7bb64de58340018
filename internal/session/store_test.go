package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fleetory/console/internal/apperrors"
	"github.com/fleetory/console/internal/models"
)

func validSession() models.Session {
	return models.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		UserID:       "user-1",
		Email:        "dist@example.com",
		Role:         models.RoleDistributor,
	}
}

// Both implementations must honor the same contract
func stores(t *testing.T) map[string]Store {
	t.Helper()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "session.json"))
	require.NoError(t, err, "should create file store in temp dir")

	return map[string]Store{
		"file": fileStore,
		"mem":  NewMemStore(),
	}
}

func TestStore_Contract(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			t.Run("read empty store", func(t *testing.T) {
				_, err := store.Read()
				require.ErrorIs(t, err, apperrors.ErrNoSession)
				require.False(t, store.IsAuthenticated())
				require.Equal(t, models.RoleNone, store.Role())
			})

			t.Run("commit then read round trips", func(t *testing.T) {
				s := validSession()
				require.NoError(t, store.Commit(s))

				got, err := store.Read()
				require.NoError(t, err)
				require.Equal(t, s, got, "all five fields should round trip")
				require.True(t, store.IsAuthenticated())
				require.Equal(t, models.RoleDistributor, store.Role())
			})

			t.Run("incomplete commit rejected without write", func(t *testing.T) {
				require.NoError(t, store.Commit(validSession()))

				incomplete := validSession()
				incomplete.Role = models.RoleNone
				err := store.Commit(incomplete)
				require.ErrorIs(t, err, apperrors.ErrIncompleteSession)

				// The previous record must be intact, not partially overwritten
				got, err := store.Read()
				require.NoError(t, err)
				require.Equal(t, validSession(), got)
			})

			t.Run("clear is idempotent", func(t *testing.T) {
				require.NoError(t, store.Commit(validSession()))

				require.NoError(t, store.Clear())
				require.NoError(t, store.Clear(), "second clear should be a no-op")

				require.False(t, store.IsAuthenticated())
				_, err := store.Read()
				require.ErrorIs(t, err, apperrors.ErrNoSession)
			})
		})
	}
}

func TestStore_CommitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Session)
	}{
		{"missing access token", func(s *models.Session) { s.AccessToken = "" }},
		{"missing refresh token", func(s *models.Session) { s.RefreshToken = "" }},
		{"missing user id", func(s *models.Session) { s.UserID = "" }},
		{"missing email", func(s *models.Session) { s.Email = "" }},
		{"unknown role", func(s *models.Session) { s.Role = "OPERATOR" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewMemStore()

			s := validSession()
			tt.mutate(&s)

			require.ErrorIs(t, store.Commit(s), apperrors.ErrIncompleteSession)
			require.False(t, store.IsAuthenticated())
		})
	}
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	first, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Commit(validSession()))

	// A new store over the same file sees the committed session,
	// the way a browser reload sees local storage
	second, err := NewFileStore(path)
	require.NoError(t, err)

	got, err := second.Read()
	require.NoError(t, err)
	require.Equal(t, validSession(), got)
}

func TestFileStore_CorruptedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)

	err = os.WriteFile(path, []byte("{not json"), 0o600)
	require.NoError(t, err)

	_, err = store.Read()
	require.ErrorIs(t, err, apperrors.ErrStorageFailure, "corruption should surface, not be swallowed")
	require.False(t, store.IsAuthenticated())
}

func TestFileStore_Permissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Commit(validSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "session file holds tokens, keep it private")
}
