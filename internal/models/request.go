package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RequestStatusPending  = "PENDING"
	RequestStatusAccepted = "ACCEPTED"
	RequestStatusRejected = "REJECTED"
)

// ConnectionRequest is a retailer asking to be connected to a distributor.
// The distributor accepts or rejects it from the dashboard.
type ConnectionRequest struct {
	ID            uuid.UUID `json:"id"`
	DistributorID uuid.UUID `json:"distributorId"`
	RetailerName  string    `json:"retailerName"`
	RetailerPhone string    `json:"retailerPhone"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
}
