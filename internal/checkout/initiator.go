package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"ignite-shop/internal/models"
)

// FailureMessage is the alert shown when checkout cannot be started.
const FailureMessage = "Falha ao redirecionar ao checkout!"

const IdempotencyHeader = "Idempotency-Key"

// State of the buy control.
type State int32

const (
	Idle State = iota
	Pending
	Redirecting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Pending:
		return "pending"
	case Redirecting:
		return "redirecting"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

var (
	// ErrCheckoutPending is returned by Buy while a previous call is in
	// flight or already redirecting; no request is sent.
	ErrCheckoutPending = errors.New("checkout already in progress")
	ErrCheckoutFailed  = errors.New("checkout request failed")
)

// Navigator moves the shopper to another page.
type Navigator interface {
	Navigate(url string) error
}

// Notifier shows a blocking message to the shopper.
type Notifier interface {
	Alert(message string)
}

// Initiator drives the buy control: Idle -> Pending -> Redirecting, or back
// to Idle with an alert when the checkout endpoint fails. Failures are not
// retried. Redirecting is terminal, including when Navigate fails.
type Initiator struct {
	endpoint string
	client   *http.Client
	nav      Navigator
	notifier Notifier
	newKey   func() string

	state atomic.Int32
}

// NewInitiator posts to baseURL + "/checkout". A nil client uses
// http.DefaultClient.
func NewInitiator(baseURL string, client *http.Client, nav Navigator, notifier Notifier) *Initiator {
	if client == nil {
		client = http.DefaultClient
	}
	return &Initiator{
		endpoint: strings.TrimRight(baseURL, "/") + "/checkout",
		client:   client,
		nav:      nav,
		notifier: notifier,
		newKey:   uuid.NewString,
	}
}

func (i *Initiator) State() State {
	return State(i.state.Load())
}

// Enabled reports whether the buy control accepts clicks.
func (i *Initiator) Enabled() bool {
	return i.State() == Idle
}

// Buy starts checkout for priceID and navigates to the hosted session.
func (i *Initiator) Buy(ctx context.Context, priceID string) error {
	if !i.state.CompareAndSwap(int32(Idle), int32(Pending)) {
		return ErrCheckoutPending
	}

	url, err := i.request(ctx, priceID)
	if err != nil {
		i.state.Store(int32(Idle))
		i.notifier.Alert(FailureMessage)
		return err
	}

	// The session exists once the endpoint answers, so the control stays
	// disabled even if the location change itself is refused.
	i.state.Store(int32(Redirecting))
	if err := i.nav.Navigate(url); err != nil {
		return fmt.Errorf("navigate to checkout: %w", err)
	}
	return nil
}

func (i *Initiator) request(ctx context.Context, priceID string) (string, error) {
	body, err := json.Marshal(models.CheckoutRequest{PriceID: priceID})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(IdempotencyHeader, i.newKey())

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCheckoutFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: status %d", ErrCheckoutFailed, resp.StatusCode)
	}

	var out models.CheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrCheckoutFailed, err)
	}
	if out.CheckoutURL == "" {
		return "", fmt.Errorf("%w: empty checkoutUrl", ErrCheckoutFailed)
	}
	return out.CheckoutURL, nil
}
