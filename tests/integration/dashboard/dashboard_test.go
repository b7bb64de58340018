package dashboard

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fleetory/console/internal/api"
	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/mockapi"
	"github.com/fleetory/console/internal/models"
	"github.com/fleetory/console/tests/integration"
)

func Test_Drivers(t *testing.T) {
	t.Parallel()

	t.Run("list and manage own drivers", func(t *testing.T) {
		env := integration.Serve(t)
		env.LoginDistributor(t)

		drivers, err := env.API.Drivers.List(t.Context())
		require.NoError(t, err)
		require.Len(t, drivers, 1, "one driver is seeded for the distributor")

		created, err := env.API.Drivers.Create(t.Context(), api.DriverInput{
			Name:          "Jonas Pike",
			Phone:         "+15550100",
			LicenseNumber: "DL-9921",
		})
		require.NoError(t, err)
		require.Equal(t, models.DriverStatusActive, created.Status, "new drivers default to active")

		updated, err := env.API.Drivers.Update(t.Context(), created.ID, api.DriverInput{
			Name:          "Jonas Pike",
			Phone:         "+15550100",
			LicenseNumber: "DL-9921",
			Status:        models.DriverStatusInactive,
		})
		require.NoError(t, err)
		require.Equal(t, models.DriverStatusInactive, updated.Status)

		require.NoError(t, env.API.Drivers.Delete(t.Context(), created.ID))

		drivers, err = env.API.Drivers.List(t.Context())
		require.NoError(t, err)
		require.Len(t, drivers, 1)
	})

	t.Run("unknown driver id", func(t *testing.T) {
		env := integration.Serve(t)
		env.LoginDistributor(t)

		err := env.API.Drivers.Delete(t.Context(), uuid.New())
		var gwErr *gateway.Error
		require.ErrorAs(t, err, &gwErr)
		require.Equal(t, gateway.KindNotFound, gwErr.Kind)
		require.Equal(t, "The requested resource was not found.", gwErr.Message)
	})
}

func Test_Products(t *testing.T) {
	t.Parallel()

	env := integration.Serve(t)
	env.LoginDistributor(t)

	created, err := env.API.Products.Create(t.Context(), api.ProductInput{
		Name:     "Rye Crates",
		Category: "Bakery",
		Price:    decimal.RequireFromString("8.75"),
		Stock:    40,
	})
	require.NoError(t, err)
	require.True(t, created.Price.Equal(decimal.RequireFromString("8.75")), "price should survive the round trip exactly")

	products, err := env.API.Products.List(t.Context())
	require.NoError(t, err)
	require.Len(t, products, 2, "the seeded product plus the created one")
}

func Test_Orders(t *testing.T) {
	t.Parallel()

	t.Run("status transition", func(t *testing.T) {
		env := integration.Serve(t)
		env.LoginDistributor(t)

		orders, err := env.API.Orders.List(t.Context())
		require.NoError(t, err)
		require.Len(t, orders, 1)
		require.Equal(t, models.OrderStatusPending, orders[0].Status)

		updated, err := env.API.Orders.UpdateStatus(t.Context(), orders[0].ID, models.OrderStatusAccepted)
		require.NoError(t, err)
		require.Equal(t, models.OrderStatusAccepted, updated.Status)

		got, err := env.API.Orders.Get(t.Context(), orders[0].ID)
		require.NoError(t, err)
		require.Equal(t, models.OrderStatusAccepted, got.Status)
	})

	t.Run("invalid status rejected locally", func(t *testing.T) {
		env := integration.Serve(t)
		env.LoginDistributor(t)

		orders, err := env.API.Orders.List(t.Context())
		require.NoError(t, err)

		_, err = env.API.Orders.UpdateStatus(t.Context(), orders[0].ID, "SHIPPED")
		require.Error(t, err)
		require.Contains(t, err.Error(), "status is invalid")
		require.Empty(t, env.Events.Events(), "local validation should not publish events")
	})
}

func Test_RoleIsolation(t *testing.T) {
	t.Parallel()

	t.Run("distributor cannot onboard distributors", func(t *testing.T) {
		env := integration.Serve(t)
		env.LoginDistributor(t)

		_, err := env.API.Auth.RegisterDistributor(t.Context(), api.RegisterDistributorInput{
			Name:     "Northside Goods",
			Email:    "north@fleetory.dev",
			Phone:    "+15550101",
			Address:  "12 Dock Rd",
			Password: "password123",
		})
		require.Error(t, err)

		var gwErr *gateway.Error
		require.ErrorAs(t, err, &gwErr)
		require.Equal(t, gateway.KindForbidden, gwErr.Kind)
		require.True(t, env.Store.IsAuthenticated(), "a 403 must not touch the session")
	})

	t.Run("duplicate email is a validation failure", func(t *testing.T) {
		env := integration.Serve(t)
		env.LoginAdmin(t)

		_, err := env.API.Auth.RegisterDistributor(t.Context(), api.RegisterDistributorInput{
			Name:     "Acme Again",
			Email:    mockapi.SeedDistributorEmail,
			Phone:    "+15550102",
			Address:  "1 Main St",
			Password: "password123",
		})
		require.Error(t, err)

		var gwErr *gateway.Error
		require.ErrorAs(t, err, &gwErr)
		require.Equal(t, gateway.KindValidationFailed, gwErr.Kind)
		require.NotEmpty(t, gwErr.Fields, "the 422 body carries field messages")
	})

	t.Run("admin can onboard a distributor that can then log in", func(t *testing.T) {
		env := integration.Serve(t)
		env.LoginAdmin(t)

		created, err := env.API.Auth.RegisterDistributor(t.Context(), api.RegisterDistributorInput{
			Name:     "Northside Goods",
			Email:    "north@fleetory.dev",
			Phone:    "+15550101",
			Address:  "12 Dock Rd",
			Password: "password123",
		})
		require.NoError(t, err)
		require.Equal(t, "Northside Goods", created.Name)

		s, err := env.API.Auth.Login(t.Context(), "north@fleetory.dev", "password123")
		require.NoError(t, err)
		require.Equal(t, models.RoleDistributor, s.Role)
	})
}
