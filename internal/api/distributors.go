package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/models"
)

type Distributors struct {
	gw *gateway.Client
}

type DistributorInput struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

func (d *Distributors) List(ctx context.Context) ([]models.Distributor, error) {
	var out []models.Distributor
	if err := d.gw.Get(ctx, "/distributors", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Distributors) Get(ctx context.Context, id uuid.UUID) (models.Distributor, error) {
	var out models.Distributor
	if err := d.gw.Get(ctx, "/distributors/"+id.String(), &out); err != nil {
		return models.Distributor{}, err
	}
	return out, nil
}

func (d *Distributors) Create(ctx context.Context, in DistributorInput) (models.Distributor, error) {
	if err := checkPayload(in); err != nil {
		return models.Distributor{}, err
	}

	var out models.Distributor
	if err := d.gw.Post(ctx, "/distributors", in, &out); err != nil {
		return models.Distributor{}, err
	}
	return out, nil
}

func (d *Distributors) Update(ctx context.Context, id uuid.UUID, in DistributorInput) (models.Distributor, error) {
	if err := checkPayload(in); err != nil {
		return models.Distributor{}, err
	}

	var out models.Distributor
	if err := d.gw.Put(ctx, "/distributors/"+id.String(), in, &out); err != nil {
		return models.Distributor{}, err
	}
	return out, nil
}

func (d *Distributors) Delete(ctx context.Context, id uuid.UUID) error {
	return d.gw.Delete(ctx, "/distributors/"+id.String())
}
