package api

import (
	"context"
	"net/url"

	"github.com/google/uuid"

	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/models"
)

type Requests struct {
	gw *gateway.Client
}

type ConnectionRequestInput struct {
	DistributorID uuid.UUID `json:"distributorId" validate:"required"`
	RetailerName  string    `json:"retailerName" validate:"required,min=2,max=100"`
	RetailerPhone string    `json:"retailerPhone" validate:"required"`
}

// ListForDistributor returns the connection requests addressed to one distributor
func (r *Requests) ListForDistributor(ctx context.Context, distributorID uuid.UUID) ([]models.ConnectionRequest, error) {
	var out []models.ConnectionRequest
	if err := r.gw.Get(ctx, "/requests/distributor/"+distributorID.String(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Respond accepts or rejects a pending request. The respond endpoint nests
// its result in a success envelope, which is checked here, not in the gateway.
func (r *Requests) Respond(ctx context.Context, id uuid.UUID, status string) (models.ConnectionRequest, error) {
	in := struct {
		Status string `validate:"required,oneof=ACCEPTED REJECTED"`
	}{Status: status}
	if err := checkPayload(in); err != nil {
		return models.ConnectionRequest{}, err
	}

	path := "/requests/" + id.String() + "/respond?status=" + url.QueryEscape(status)

	var env envelope[models.ConnectionRequest]
	if err := r.gw.Put(ctx, path, nil, &env); err != nil {
		return models.ConnectionRequest{}, err
	}
	return env.unwrap()
}

func (r *Requests) Create(ctx context.Context, in ConnectionRequestInput) (models.ConnectionRequest, error) {
	if err := checkPayload(in); err != nil {
		return models.ConnectionRequest{}, err
	}

	var out models.ConnectionRequest
	if err := r.gw.Post(ctx, "/requests", in, &out); err != nil {
		return models.ConnectionRequest{}, err
	}
	return out, nil
}
