package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/product"

	"ignite-shop/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// ProductRepository reads product records from the catalog provider.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (*models.CatalogProduct, error)
}

type StripeProductRepository struct {
	client product.Client
}

func NewStripeProductRepository(backend stripe.Backend, key string) *StripeProductRepository {
	return &StripeProductRepository{
		client: product.Client{B: backend, Key: key},
	}
}

// FindByID retrieves a product with its default price expanded.
func (r *StripeProductRepository) FindByID(ctx context.Context, id string) (*models.CatalogProduct, error) {
	params := &stripe.ProductParams{}
	params.Context = ctx
	params.AddExpand("default_price")

	p, err := r.client.Get(id, params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) && serr.Code == stripe.ErrorCodeResourceMissing {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("retrieve product %s: %w", id, err)
	}

	return toCatalogProduct(p), nil
}

func toCatalogProduct(p *stripe.Product) *models.CatalogProduct {
	out := &models.CatalogProduct{
		ID:     p.ID,
		Name:   p.Name,
		Images: p.Images,
	}
	if p.Description != "" {
		desc := p.Description
		out.Description = &desc
	}
	if p.DefaultPrice != nil {
		out.DefaultPrice = toCatalogPrice(p.DefaultPrice)
	}
	return out
}

func toCatalogPrice(p *stripe.Price) *models.CatalogPrice {
	out := &models.CatalogPrice{
		ID:       p.ID,
		Currency: string(p.Currency),
	}
	// Unexpanded prices carry only an ID; tiered and customer-chosen
	// prices have a null unit_amount.
	if p.Currency != "" && p.BillingScheme != stripe.PriceBillingSchemeTiered && p.CustomUnitAmount == nil {
		amount := p.UnitAmount
		out.UnitAmount = &amount
	}
	return out
}
