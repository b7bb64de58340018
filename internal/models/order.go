package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusAccepted  = "ACCEPTED"
	OrderStatusRejected  = "REJECTED"
	OrderStatusDelivered = "DELIVERED"
)

type Order struct {
	ID            uuid.UUID       `json:"id"`
	DistributorID uuid.UUID       `json:"distributorId"`
	DriverID      *uuid.UUID      `json:"driverId,omitempty"` // nil until a delivery is assigned
	CustomerName  string          `json:"customerName"`
	Status        string          `json:"status"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
	ModifiedAt    time.Time       `json:"modifiedAt"`
}
