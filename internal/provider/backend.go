package provider

import (
	"net/http"

	"github.com/stripe/stripe-go/v82"
)

// NewBackend returns a Stripe API backend. An empty apiURL targets the
// public Stripe API.
func NewBackend(apiURL string, httpClient *http.Client) stripe.Backend {
	if apiURL == "" {
		apiURL = stripe.APIURL
	}
	cfg := &stripe.BackendConfig{
		URL:               stripe.String(apiURL),
		MaxNetworkRetries: stripe.Int64(0),
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	return stripe.GetBackendWithConfig(stripe.APIBackend, cfg)
}
