package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/models"
	"github.com/fleetory/console/internal/session"
)

func newTestAPI(t *testing.T, handler http.Handler) (*API, *session.MemStore) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewMemStore()
	gw, err := gateway.NewClient(gateway.Config{BaseURL: srv.URL}, store, nil, nil)
	require.NoError(t, err)

	return New(gw, store), store
}

func TestAuth_Login(t *testing.T) {
	t.Run("commits session from login response", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
			var creds Credentials
			require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
			require.Equal(t, "dist@example.com", creds.Email)

			_ = json.NewEncoder(w).Encode(models.Session{
				AccessToken:  "access-token",
				RefreshToken: "refresh-token",
				UserID:       "user-1",
				Email:        creds.Email,
				Role:         models.RoleDistributor,
			})
		})

		client, store := newTestAPI(t, mux)

		s, err := client.Auth.Login(t.Context(), "dist@example.com", "password123")
		require.NoError(t, err)
		require.Equal(t, models.RoleDistributor, s.Role)

		stored, err := store.Read()
		require.NoError(t, err)
		require.Equal(t, s, stored, "login must commit exactly what it returned")
	})

	t.Run("rejects bad credentials before the wire", func(t *testing.T) {
		called := false
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

		client, store := newTestAPI(t, handler)

		_, err := client.Auth.Login(t.Context(), "not-an-email", "password123")
		require.Error(t, err)
		require.False(t, called, "invalid payloads never reach the backend")
		require.False(t, store.IsAuthenticated())
	})
}

func TestAuth_Logout(t *testing.T) {
	client, store := newTestAPI(t, http.NewServeMux())
	require.NoError(t, store.Commit(models.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		UserID:       "user-1",
		Email:        "dist@example.com",
		Role:         models.RoleDistributor,
	}))

	require.NoError(t, client.Auth.Logout())
	require.False(t, store.IsAuthenticated())
	require.NoError(t, client.Auth.Logout(), "logout is idempotent")
}

func TestProducts_Create(t *testing.T) {
	productID := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /products", func(w http.ResponseWriter, r *http.Request) {
		var in ProductInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		require.Equal(t, "Oat Crates", in.Name)
		require.True(t, in.Price.Equal(decimal.RequireFromString("12.50")))

		_ = json.NewEncoder(w).Encode(models.Product{
			ID:       productID,
			Name:     in.Name,
			Category: in.Category,
			Price:    in.Price,
			Stock:    in.Stock,
		})
	})

	client, _ := newTestAPI(t, mux)

	created, err := client.Products.Create(t.Context(), ProductInput{
		Name:     "Oat Crates",
		Category: "Grains",
		Price:    decimal.RequireFromString("12.50"),
		Stock:    40,
	})
	require.NoError(t, err)
	require.Equal(t, productID, created.ID)
}

func TestOrders_UpdateStatus(t *testing.T) {
	orderID := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /orders/"+orderID.String()+"/status", func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))

		_ = json.NewEncoder(w).Encode(models.Order{ID: orderID, Status: in.Status})
	})

	client, _ := newTestAPI(t, mux)

	t.Run("valid transition", func(t *testing.T) {
		order, err := client.Orders.UpdateStatus(t.Context(), orderID, models.OrderStatusAccepted)
		require.NoError(t, err)
		require.Equal(t, models.OrderStatusAccepted, order.Status)
	})

	t.Run("unknown status rejected locally", func(t *testing.T) {
		_, err := client.Orders.UpdateStatus(t.Context(), orderID, "TELEPORTED")
		require.Error(t, err)
	})
}

func TestRequests_Respond(t *testing.T) {
	requestID := uuid.New()

	t.Run("unwraps success envelope", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("PUT /requests/"+requestID.String()+"/respond", func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "ACCEPTED", r.URL.Query().Get("status"))

			success := true
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": success,
				"data":    models.ConnectionRequest{ID: requestID, Status: models.RequestStatusAccepted},
			})
		})

		client, _ := newTestAPI(t, mux)

		req, err := client.Requests.Respond(t.Context(), requestID, models.RequestStatusAccepted)
		require.NoError(t, err)
		require.Equal(t, models.RequestStatusAccepted, req.Status)
	})

	t.Run("application level failure inside 2xx", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("PUT /requests/"+requestID.String()+"/respond", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": false,
				"message": "request already answered",
			})
		})

		client, _ := newTestAPI(t, mux)

		_, err := client.Requests.Respond(t.Context(), requestID, models.RequestStatusRejected)
		require.Error(t, err)
		require.Contains(t, err.Error(), "request already answered")
	})
}

func TestDrivers_ListAndDelete(t *testing.T) {
	driverID := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /drivers", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]models.Driver{{ID: driverID, Name: "Kira", Status: models.DriverStatusActive}})
	})
	deleted := false
	mux.HandleFunc("DELETE /drivers/"+driverID.String(), func(w http.ResponseWriter, r *http.Request) {
		deleted = true
		w.WriteHeader(http.StatusNoContent)
	})

	client, _ := newTestAPI(t, mux)

	drivers, err := client.Drivers.List(t.Context())
	require.NoError(t, err)
	require.Len(t, drivers, 1)
	require.Equal(t, "Kira", drivers[0].Name)

	require.NoError(t, client.Drivers.Delete(t.Context(), driverID))
	require.True(t, deleted)
}
