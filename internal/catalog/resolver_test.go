package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ignite-shop/internal/models"
	"ignite-shop/internal/money"
	"ignite-shop/internal/repository"
)

type fakeRepo struct {
	products map[string]*models.CatalogProduct
	err      error
	calls    int
}

func (f *fakeRepo) FindByID(_ context.Context, id string) (*models.CatalogProduct, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return p, nil
}

func ptr[T any](v T) *T { return &v }

func newResolver(t *testing.T, repo repository.ProductRepository) *Resolver {
	t.Helper()
	f, err := money.NewFormatter("pt-BR", "BRL")
	require.NoError(t, err)
	return NewResolver(repo, f)
}

func validRecord() *models.CatalogProduct {
	return &models.CatalogProduct{
		ID:          "prod_1",
		Name:        "Camiseta Explorer",
		Images:      []string{"https://files.example/first.png", "https://files.example/second.png"},
		Description: ptr("Algodão"),
		DefaultPrice: &models.CatalogPrice{
			ID:         "price_1",
			UnitAmount: ptr(int64(7990)),
			Currency:   "brl",
		},
	}
}

func TestResolve_BuildsViewModel(t *testing.T) {
	repo := &fakeRepo{products: map[string]*models.CatalogProduct{"prod_1": validRecord()}}
	r := newResolver(t, repo)

	p, err := r.Resolve(context.Background(), "prod_1")
	require.NoError(t, err)

	assert.Equal(t, "prod_1", p.ID)
	assert.Equal(t, "Camiseta Explorer", p.Name)
	assert.Equal(t, "https://files.example/first.png", p.ImageURL)
	require.NotNil(t, p.Description)
	assert.Equal(t, "Algodão", *p.Description)
	assert.Equal(t, "R$\u00a079,90", p.Price)
	assert.Equal(t, "price_1", p.DefaultPriceID)
	assert.Equal(t, 1, repo.calls)
}

func TestResolve_NullDescription(t *testing.T) {
	rec := validRecord()
	rec.Description = nil
	r := newResolver(t, &fakeRepo{products: map[string]*models.CatalogProduct{"prod_1": rec}})

	p, err := r.Resolve(context.Background(), "prod_1")
	require.NoError(t, err)
	assert.Nil(t, p.Description)
}

func TestResolve_MalformedRecords(t *testing.T) {
	cases := map[string]func(*models.CatalogProduct){
		"no images":        func(p *models.CatalogProduct) { p.Images = nil },
		"no default price": func(p *models.CatalogProduct) { p.DefaultPrice = nil },
		"no price id":      func(p *models.CatalogProduct) { p.DefaultPrice.ID = "" },
		"no unit amount":   func(p *models.CatalogProduct) { p.DefaultPrice.UnitAmount = nil },
		"no name":          func(p *models.CatalogProduct) { p.Name = "" },
		"other currency":   func(p *models.CatalogProduct) { p.DefaultPrice.Currency = "usd" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			rec := validRecord()
			mutate(rec)
			r := newResolver(t, &fakeRepo{products: map[string]*models.CatalogProduct{"prod_1": rec}})

			_, err := r.Resolve(context.Background(), "prod_1")
			assert.ErrorIs(t, err, ErrMalformedProduct)
		})
	}
}

func TestResolve_PropagatesRepositoryErrors(t *testing.T) {
	r := newResolver(t, &fakeRepo{})
	_, err := r.Resolve(context.Background(), "prod_missing")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)

	boom := errors.New("connection reset")
	r = newResolver(t, &fakeRepo{err: boom})
	_, err = r.Resolve(context.Background(), "prod_1")
	assert.ErrorIs(t, err, boom)
}

func TestResolve_EmptyID(t *testing.T) {
	repo := &fakeRepo{}
	r := newResolver(t, repo)

	_, err := r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, ErrMalformedProduct)
	assert.Zero(t, repo.calls)
}
