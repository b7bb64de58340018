package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DriverStatusActive   = "ACTIVE"
	DriverStatusInactive = "INACTIVE"
)

type Driver struct {
	ID            uuid.UUID `json:"id"`
	DistributorID uuid.UUID `json:"distributorId"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	LicenseNumber string    `json:"licenseNumber"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
