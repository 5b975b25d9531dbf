package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ignite-shop/internal/models"
	"ignite-shop/internal/money"
	"ignite-shop/internal/repository"
)

// ErrMalformedProduct reports a catalog record that cannot be turned into a
// complete view-model.
var ErrMalformedProduct = errors.New("malformed catalog product")

// Resolver turns a product identifier into a product view-model.
type Resolver struct {
	repo      repository.ProductRepository
	formatter *money.Formatter
}

func NewResolver(repo repository.ProductRepository, formatter *money.Formatter) *Resolver {
	return &Resolver{repo: repo, formatter: formatter}
}

// Resolve issues one catalog read and builds the view-model from it. There
// are no partial results: any failure fails the whole resolution.
func (r *Resolver) Resolve(ctx context.Context, id string) (models.Product, error) {
	if id == "" {
		return models.Product{}, fmt.Errorf("%w: empty product id", ErrMalformedProduct)
	}

	rec, err := r.repo.FindByID(ctx, id)
	if err != nil {
		return models.Product{}, err
	}

	return r.build(rec)
}

func (r *Resolver) build(rec *models.CatalogProduct) (models.Product, error) {
	if rec == nil || rec.ID == "" || rec.Name == "" {
		return models.Product{}, fmt.Errorf("%w: missing id or name", ErrMalformedProduct)
	}
	if len(rec.Images) == 0 {
		return models.Product{}, fmt.Errorf("%w: %s has no images", ErrMalformedProduct, rec.ID)
	}
	price := rec.DefaultPrice
	if price == nil || price.ID == "" {
		return models.Product{}, fmt.Errorf("%w: %s has no default price", ErrMalformedProduct, rec.ID)
	}
	if price.UnitAmount == nil {
		return models.Product{}, fmt.Errorf("%w: price %s has no unit amount", ErrMalformedProduct, price.ID)
	}
	if price.Currency != "" && !strings.EqualFold(price.Currency, r.formatter.Currency()) {
		return models.Product{}, fmt.Errorf("%w: price %s is in %s, shop sells in %s",
			ErrMalformedProduct, price.ID, strings.ToUpper(price.Currency), r.formatter.Currency())
	}

	var desc *string
	if rec.Description != nil {
		d := *rec.Description
		desc = &d
	}

	return models.Product{
		ID:             rec.ID,
		Name:           rec.Name,
		ImageURL:       rec.Images[0],
		Description:    desc,
		Price:          r.formatter.Format(*price.UnitAmount),
		DefaultPriceID: price.ID,
	}, nil
}
