package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/models"
)

type Drivers struct {
	gw *gateway.Client
}

type DriverInput struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Phone         string `json:"phone" validate:"required"`
	LicenseNumber string `json:"licenseNumber" validate:"required"`
	Status        string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

func (d *Drivers) List(ctx context.Context) ([]models.Driver, error) {
	var out []models.Driver
	if err := d.gw.Get(ctx, "/drivers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Drivers) Get(ctx context.Context, id uuid.UUID) (models.Driver, error) {
	var out models.Driver
	if err := d.gw.Get(ctx, "/drivers/"+id.String(), &out); err != nil {
		return models.Driver{}, err
	}
	return out, nil
}

func (d *Drivers) Create(ctx context.Context, in DriverInput) (models.Driver, error) {
	if err := checkPayload(in); err != nil {
		return models.Driver{}, err
	}

	var out models.Driver
	if err := d.gw.Post(ctx, "/drivers", in, &out); err != nil {
		return models.Driver{}, err
	}
	return out, nil
}

func (d *Drivers) Update(ctx context.Context, id uuid.UUID, in DriverInput) (models.Driver, error) {
	if err := checkPayload(in); err != nil {
		return models.Driver{}, err
	}

	var out models.Driver
	if err := d.gw.Put(ctx, "/drivers/"+id.String(), in, &out); err != nil {
		return models.Driver{}, err
	}
	return out, nil
}

func (d *Drivers) Delete(ctx context.Context, id uuid.UUID) error {
	return d.gw.Delete(ctx, "/drivers/"+id.String())
}
