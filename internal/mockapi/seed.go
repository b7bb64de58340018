package mockapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/fleetory/console/internal/models"
)

// Seed accounts for local runs and tests
const (
	SeedAdminEmail    = "admin@fleetory.dev"
	SeedAdminPassword = "superadmin1"

	SeedDistributorEmail    = "acme@fleetory.dev"
	SeedDistributorPassword = "distributor1"
)

// seed populates one super admin, one distributor with a couple of drivers,
// products, orders and a pending connection request, so every console view
// has something to show right after login
func (s *Server) seed() {
	now := time.Now().UTC()

	acme := models.Distributor{
		ID:        uuid.New(),
		Name:      "Acme Distribution",
		Email:     SeedDistributorEmail,
		Phone:     "+1-202-555-0134",
		Address:   "12 Warehouse Row",
		CreatedAt: now,
	}
	s.distributors[acme.ID] = acme

	s.users["u-admin"] = &user{
		ID:           "u-admin",
		Email:        SeedAdminEmail,
		Role:         models.RoleSuperAdmin,
		PasswordHash: mustHash(SeedAdminPassword),
	}
	s.users["u-acme"] = &user{
		ID:            "u-acme",
		Email:         SeedDistributorEmail,
		Role:          models.RoleDistributor,
		PasswordHash:  mustHash(SeedDistributorPassword),
		DistributorID: acme.ID,
	}

	driver := models.Driver{
		ID:            uuid.New(),
		DistributorID: acme.ID,
		Name:          "Kira Vance",
		Phone:         "+1-202-555-0171",
		LicenseNumber: "DL-48213",
		Status:        models.DriverStatusActive,
		CreatedAt:     now,
	}
	s.drivers[driver.ID] = driver

	product := models.Product{
		ID:            uuid.New(),
		DistributorID: acme.ID,
		Name:          "Oat Crates",
		Category:      "Grains",
		Description:   "24-pack wholesale crates",
		Price:         decimal.RequireFromString("12.50"),
		Stock:         40,
		CreatedAt:     now,
	}
	s.products[product.ID] = product

	order := models.Order{
		ID:            uuid.New(),
		DistributorID: acme.ID,
		CustomerName:  "Corner Grocery",
		Status:        models.OrderStatusPending,
		Total:         decimal.RequireFromString("125.00"),
		CreatedAt:     now,
		ModifiedAt:    now,
	}
	s.orders[order.ID] = order

	request := models.ConnectionRequest{
		ID:            uuid.New(),
		DistributorID: acme.ID,
		RetailerName:  "Corner Grocery",
		RetailerPhone: "+1-202-555-0199",
		Status:        models.RequestStatusPending,
		CreatedAt:     now,
	}
	s.requests[request.ID] = request
}

func mustHash(password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return string(hash)
}
