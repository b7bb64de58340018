package integration

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fleetory/console/internal/api"
	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/guard"
	"github.com/fleetory/console/internal/logger"
	"github.com/fleetory/console/internal/mockapi"
	"github.com/fleetory/console/internal/models"
	"github.com/fleetory/console/internal/session"
)

// Recorder collects the events the gateway publishes during a test
type Recorder struct {
	mu     sync.Mutex
	events []gateway.Event
}

func (r *Recorder) Notify(ev gateway.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *Recorder) Events() []gateway.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]gateway.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Env is a full client stack wired against an in-memory backend
type Env struct {
	Store  *session.MemStore
	API    *api.API
	Guard  *guard.Guard
	Events *Recorder
}

// Serve starts the stub backend and builds a console client stack on it.
// Each call gets fresh seeded state and a fresh session store.
func Serve(t *testing.T) *Env {
	t.Helper()

	backend := mockapi.NewServer(logger.NewNoOpLogger())
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	store := session.NewMemStore()
	events := &Recorder{}

	gw, err := gateway.NewClient(gateway.Config{
		BaseURL: srv.URL,
		Timeout: 5 * time.Second,
	}, store, events, logger.NewNoOpLogger())
	require.NoError(t, err, "gateway client should be created without errors")

	return &Env{
		Store:  store,
		API:    api.New(gw, store),
		Guard:  guard.New(store),
		Events: events,
	}
}

// LoginDistributor signs in with the seeded distributor account
func (e *Env) LoginDistributor(t *testing.T) models.Session {
	t.Helper()

	s, err := e.API.Auth.Login(t.Context(), mockapi.SeedDistributorEmail, mockapi.SeedDistributorPassword)
	require.NoError(t, err, "seeded distributor should be able to log in")
	return s
}

// LoginAdmin signs in with the seeded super admin account
func (e *Env) LoginAdmin(t *testing.T) models.Session {
	t.Helper()

	s, err := e.API.Auth.Login(t.Context(), mockapi.SeedAdminEmail, mockapi.SeedAdminPassword)
	require.NoError(t, err, "seeded admin should be able to log in")
	return s
}
