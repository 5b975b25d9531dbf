package models

// CheckoutRequest is the body of POST /checkout.
type CheckoutRequest struct {
	PriceID string `json:"priceId" binding:"required"`
}

// CheckoutResponse carries the hosted checkout session URL.
type CheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}
