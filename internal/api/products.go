package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fleetory/console/internal/gateway"
	"github.com/fleetory/console/internal/models"
)

type Products struct {
	gw *gateway.Client
}

type ProductInput struct {
	Name        string          `json:"name" validate:"required,min=2,max=100"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description" validate:"max=500"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Stock       int             `json:"stock" validate:"gte=0"`
}

func (p *Products) List(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := p.gw.Get(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *Products) Get(ctx context.Context, id uuid.UUID) (models.Product, error) {
	var out models.Product
	if err := p.gw.Get(ctx, "/products/"+id.String(), &out); err != nil {
		return models.Product{}, err
	}
	return out, nil
}

func (p *Products) Create(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := checkPayload(in); err != nil {
		return models.Product{}, err
	}

	var out models.Product
	if err := p.gw.Post(ctx, "/products", in, &out); err != nil {
		return models.Product{}, err
	}
	return out, nil
}

func (p *Products) Update(ctx context.Context, id uuid.UUID, in ProductInput) (models.Product, error) {
	if err := checkPayload(in); err != nil {
		return models.Product{}, err
	}

	var out models.Product
	if err := p.gw.Put(ctx, "/products/"+id.String(), in, &out); err != nil {
		return models.Product{}, err
	}
	return out, nil
}

func (p *Products) Delete(ctx context.Context, id uuid.UUID) error {
	return p.gw.Delete(ctx, "/products/"+id.String())
}
