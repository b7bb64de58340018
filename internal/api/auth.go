package api

import (
	"context"
	"fmt"

	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/models"
	"github.com/fleetory/console/internal/session"
)

// Auth handles login and logout. It is the only resource client that touches
// the session store: a successful login response is committed as one record.
type Auth struct {
	gw    *gateway.Client
	store session.Store
}

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterDistributorInput onboards a distributor account (super admin only)
type RegisterDistributorInput struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login authenticates and commits the resulting session.
// The returned session is what the store now holds.
func (a *Auth) Login(ctx context.Context, email string, password string) (models.Session, error) {
	creds := Credentials{Email: email, Password: password}
	if err := checkPayload(creds); err != nil {
		return models.Session{}, err
	}

	var s models.Session
	if err := a.gw.Post(ctx, "/auth/login", creds, &s); err != nil {
		return models.Session{}, err
	}

	if err := a.store.Commit(s); err != nil {
		return models.Session{}, fmt.Errorf("login succeeded but session could not be stored: %w", err)
	}

	return s, nil
}

// RegisterDistributor creates a distributor account on the platform
func (a *Auth) RegisterDistributor(ctx context.Context, in RegisterDistributorInput) (models.Distributor, error) {
	if err := checkPayload(in); err != nil {
		return models.Distributor{}, err
	}

	var created models.Distributor
	if err := a.gw.Post(ctx, "/auth/register/distributor", in, &created); err != nil {
		return models.Distributor{}, err
	}
	return created, nil
}

// Logout clears the local session. The backend has no logout endpoint;
// discarding the tokens is all there is to it.
func (a *Auth) Logout() error {
	return a.store.Clear()
}
