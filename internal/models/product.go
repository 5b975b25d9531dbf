package models

// Product is the view-model a product page is rendered from. It is rebuilt
// on every generation pass and never mutated afterwards.
type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	ImageURL       string  `json:"imageUrl"`
	Description    *string `json:"description"`
	Price          string  `json:"price"`
	DefaultPriceID string  `json:"defaultPriceId"`
}

// CatalogProduct is the product record as read from the catalog provider,
// with its default price expanded.
type CatalogProduct struct {
	ID           string
	Name         string
	Images       []string
	Description  *string
	DefaultPrice *CatalogPrice
}

// CatalogPrice is a catalog price record. UnitAmount is nil for prices the
// provider does not express as a single minor-unit amount (tiered or
// customer-chosen prices).
type CatalogPrice struct {
	ID         string
	UnitAmount *int64
	Currency   string
}
