package checkout

import (
	"context"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// StripeSessions creates Stripe Checkout sessions in payment mode.
type StripeSessions struct {
	client session.Client
}

func NewStripeSessions(backend stripe.Backend, key string) *StripeSessions {
	return &StripeSessions{client: session.Client{B: backend, Key: key}}
}

func (s *StripeSessions) CreateSession(ctx context.Context, in SessionInput) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(in.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	if in.IdempotencyKey != "" {
		params.SetIdempotencyKey(in.IdempotencyKey)
	}

	sess, err := s.client.New(params)
	if err != nil {
		return "", err
	}
	return sess.URL, nil
}
