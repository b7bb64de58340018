package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/models"
)

type Orders struct {
	gw *gateway.Client
}

type orderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=PENDING ACCEPTED REJECTED DELIVERED"`
}

func (o *Orders) List(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := o.gw.Get(ctx, "/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (o *Orders) Get(ctx context.Context, id uuid.UUID) (models.Order, error) {
	var out models.Order
	if err := o.gw.Get(ctx, "/orders/"+id.String(), &out); err != nil {
		return models.Order{}, err
	}
	return out, nil
}

// UpdateStatus moves an order through its lifecycle (accept, reject, deliver)
func (o *Orders) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (models.Order, error) {
	in := orderStatusInput{Status: status}
	if err := checkPayload(in); err != nil {
		return models.Order{}, err
	}

	var out models.Order
	if err := o.gw.Patch(ctx, "/orders/"+id.String()+"/status", in, &out); err != nil {
		return models.Order{}, err
	}
	return out, nil
}
