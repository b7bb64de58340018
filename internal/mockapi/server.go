package mockapi

import (
	"context"
	"crypto/rand"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/fleetory/console/internal/logger"
	"github.com/fleetory/console/internal/models"
)

// Server is an in-memory stand-in for the delivery platform backend.
// It speaks the same REST surface, the same bearer token scheme and the same
// error envelope, so the console and its tests run without the real thing.
// State lives in maps behind one mutex; nothing survives a restart.
type Server struct {
	secret []byte
	logger logger.Logger

	mu            sync.Mutex
	users         map[string]*user  // by user id
	refreshTokens map[string]string // refresh token -> user id
	distributors  map[uuid.UUID]models.Distributor
	drivers       map[uuid.UUID]models.Driver
	products      map[uuid.UUID]models.Product
	orders        map[uuid.UUID]models.Order
	requests      map[uuid.UUID]models.ConnectionRequest
}

type user struct {
	ID            string
	Email         string
	Role          models.Role
	PasswordHash  string
	DistributorID uuid.UUID // zero unless the user is a distributor
}

func NewServer(log logger.Logger) *Server {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	secret := make([]byte, 32)
	_, _ = rand.Read(secret)

	s := &Server{
		secret:        secret,
		logger:        log,
		users:         map[string]*user{},
		refreshTokens: map[string]string{},
		distributors:  map[uuid.UUID]models.Distributor{},
		drivers:       map[uuid.UUID]models.Driver{},
		products:      map[uuid.UUID]models.Product{},
		orders:        map[uuid.UUID]models.Order{},
		requests:      map[uuid.UUID]models.ConnectionRequest{},
	}
	s.seed()

	return s
}

// Handler returns the routed HTTP surface
func (s *Server) Handler() http.Handler {
	distributorOnly := []models.Role{models.RoleDistributor}
	superAdminOnly := []models.Role{models.RoleSuperAdmin}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("POST /auth/refresh", s.handleRefresh)
	mux.Handle("POST /auth/register/distributor", s.requireRole(superAdminOnly, s.handleRegisterDistributor))

	mux.Handle("GET /distributors", s.requireRole(nil, s.handleListDistributors))
	mux.Handle("GET /distributors/{id}", s.requireRole(nil, s.handleGetDistributor))
	mux.Handle("POST /distributors", s.requireRole(superAdminOnly, s.handleCreateDistributor))
	mux.Handle("PUT /distributors/{id}", s.requireRole(superAdminOnly, s.handleUpdateDistributor))
	mux.Handle("DELETE /distributors/{id}", s.requireRole(superAdminOnly, s.handleDeleteDistributor))

	mux.Handle("GET /drivers", s.requireRole(distributorOnly, s.handleListDrivers))
	mux.Handle("POST /drivers", s.requireRole(distributorOnly, s.handleCreateDriver))
	mux.Handle("PUT /drivers/{id}", s.requireRole(distributorOnly, s.handleUpdateDriver))
	mux.Handle("DELETE /drivers/{id}", s.requireRole(distributorOnly, s.handleDeleteDriver))

	mux.Handle("GET /products", s.requireRole(distributorOnly, s.handleListProducts))
	mux.Handle("POST /products", s.requireRole(distributorOnly, s.handleCreateProduct))
	mux.Handle("PUT /products/{id}", s.requireRole(distributorOnly, s.handleUpdateProduct))
	mux.Handle("DELETE /products/{id}", s.requireRole(distributorOnly, s.handleDeleteProduct))

	mux.Handle("GET /orders", s.requireRole(distributorOnly, s.handleListOrders))
	mux.Handle("GET /orders/{id}", s.requireRole(distributorOnly, s.handleGetOrder))
	mux.Handle("PATCH /orders/{id}/status", s.requireRole(distributorOnly, s.handleOrderStatus))

	mux.Handle("GET /requests/distributor/{id}", s.requireRole(distributorOnly, s.handleListRequests))
	mux.Handle("PUT /requests/{id}/respond", s.requireRole(distributorOnly, s.handleRespondRequest))
	mux.HandleFunc("POST /requests", s.handleCreateRequest)

	return mux
}

type ctxKey string

const claimsKey ctxKey = "claims"

// requireRole authenticates the bearer token and optionally restricts roles.
// nil roles means any authenticated user.
func (s *Server) requireRole(roles []models.Role, next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || raw == "" {
			writeError(w, http.StatusUnauthorized, "Missing bearer token")
			return
		}

		claims, err := s.parseAccessToken(raw)
		if err != nil {
			s.logger.Debug("Rejected token", "error", err)
			writeError(w, http.StatusUnauthorized, "Token expired or invalid")
			return
		}

		if len(roles) > 0 {
			allowed := false
			for _, role := range roles {
				if claims.Role == role {
					allowed = true
					break
				}
			}
			if !allowed {
				writeError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromContext(ctx context.Context) *accessClaims {
	claims, _ := ctx.Value(claimsKey).(*accessClaims)
	return claims
}

// currentDistributorID resolves the authenticated distributor's own record
func (s *Server) currentDistributorID(ctx context.Context) uuid.UUID {
	claims := claimsFromContext(ctx)
	if claims == nil {
		return uuid.Nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[claims.Subject]
	if !ok {
		return uuid.Nil
	}
	return u.DistributorID
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "The requested resource was not found")
		return uuid.Nil, false
	}
	return id, true
}
