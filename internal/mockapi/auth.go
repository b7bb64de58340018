package mockapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetory/console/internal/models"
)

// loginResponse carries the full session record the console commits
type loginResponse struct {
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
	UserID       string      `json:"userId"`
	Email        string      `json:"email"`
	Role         models.Role `json:"role"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	type loginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	data, err := bindAndValidate[loginRequest](w, r)
	if err != nil {
		return
	}

	s.mu.Lock()
	var account *user
	for _, u := range s.users {
		if u.Email == data.Email {
			account = u
			break
		}
	}
	s.mu.Unlock()

	if account == nil || bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(data.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	access, err := s.issueAccessToken(account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	refresh := newRefreshToken()
	s.mu.Lock()
	s.refreshTokens[refresh] = account.ID
	s.mu.Unlock()

	s.logger.Info("User logged in", "email", account.Email, "role", account.Role)
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		UserID:       account.ID,
		Email:        account.Email,
		Role:         account.Role,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	type refreshRequest struct {
		RefreshToken string `json:"refreshToken" validate:"required"`
	}

	data, err := bindAndValidate[refreshRequest](w, r)
	if err != nil {
		return
	}

	// Rotate: a refresh token is single use
	s.mu.Lock()
	userID, ok := s.refreshTokens[data.RefreshToken]
	if ok {
		delete(s.refreshTokens, data.RefreshToken)
	}
	account := s.users[userID]
	s.mu.Unlock()

	if !ok || account == nil {
		writeError(w, http.StatusUnauthorized, "Refresh token expired or invalid")
		return
	}

	access, err := s.issueAccessToken(account)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	refresh := newRefreshToken()
	s.mu.Lock()
	s.refreshTokens[refresh] = account.ID
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{
		"accessToken":  access,
		"refreshToken": refresh,
	})
}

func (s *Server) handleRegisterDistributor(w http.ResponseWriter, r *http.Request) {
	type registerRequest struct {
		Name     string `json:"name" validate:"required,min=2,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Phone    string `json:"phone" validate:"required"`
		Address  string `json:"address" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	data, err := bindAndValidate[registerRequest](w, r)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == data.Email {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Validation failed",
				Errors:  []string{"email is already registered"},
			})
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	distributor := models.Distributor{
		ID:        uuid.New(),
		Name:      data.Name,
		Email:     data.Email,
		Phone:     data.Phone,
		Address:   data.Address,
		CreatedAt: time.Now().UTC(),
	}
	s.distributors[distributor.ID] = distributor

	account := &user{
		ID:            uuid.NewString(),
		Email:         data.Email,
		Role:          models.RoleDistributor,
		PasswordHash:  string(hash),
		DistributorID: distributor.ID,
	}
	s.users[account.ID] = account

	s.logger.Info("Distributor onboarded", "name", data.Name)
	writeJSON(w, http.StatusCreated, distributor)
}
