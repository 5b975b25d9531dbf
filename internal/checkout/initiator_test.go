package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ignite-shop/internal/models"
)

type recordingNavigator struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (n *recordingNavigator) Navigate(url string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.urls = append(n.urls, url)
	return n.err
}

func (n *recordingNavigator) URLs() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.urls...)
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Alert(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

func newInitiator(t *testing.T, handler http.HandlerFunc) (*Initiator, *recordingNavigator, *recordingNotifier) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	nav := &recordingNavigator{}
	notifier := &recordingNotifier{}
	return NewInitiator(srv.URL, srv.Client(), nav, notifier), nav, notifier
}

func TestInitiator_SuccessNavigatesToCheckoutURL(t *testing.T) {
	keys := make(chan string, 1)
	in, nav, notifier := newInitiator(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/checkout", r.URL.Path)
		keys <- r.Header.Get(IdempotencyHeader)

		var req models.CheckoutRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "price_1", req.PriceID)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"checkoutUrl": "https://pay.example/session/abc"}`))
	})

	assert.True(t, in.Enabled())
	require.NoError(t, in.Buy(context.Background(), "price_1"))

	assert.Equal(t, []string{"https://pay.example/session/abc"}, nav.URLs())
	assert.Empty(t, notifier.Messages())
	assert.Equal(t, Redirecting, in.State())
	assert.False(t, in.Enabled())
	assert.NotEmpty(t, <-keys)
}

func TestInitiator_DisablesWhilePending(t *testing.T) {
	release := make(chan struct{})
	var requests atomic.Int32
	in, nav, _ := newInitiator(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"checkoutUrl": "https://pay.example/session/abc"}`))
	})

	done := make(chan error, 1)
	go func() { done <- in.Buy(context.Background(), "price_1") }()

	require.Eventually(t, func() bool { return in.State() == Pending }, time.Second, time.Millisecond)
	assert.False(t, in.Enabled())

	// A second click while pending sends nothing.
	assert.ErrorIs(t, in.Buy(context.Background(), "price_1"), ErrCheckoutPending)

	close(release)
	require.NoError(t, <-done)

	assert.Equal(t, int32(1), requests.Load())
	assert.Len(t, nav.URLs(), 1)
}

func TestInitiator_ServerErrorReturnsToIdle(t *testing.T) {
	in, nav, notifier := newInitiator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := in.Buy(context.Background(), "price_1")
	assert.ErrorIs(t, err, ErrCheckoutFailed)

	assert.Equal(t, Idle, in.State())
	assert.True(t, in.Enabled())
	assert.Equal(t, []string{FailureMessage}, notifier.Messages())
	assert.Empty(t, nav.URLs())
}

func TestInitiator_TransportErrorReturnsToIdle(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	nav := &recordingNavigator{}
	notifier := &recordingNotifier{}
	in := NewInitiator(base, nil, nav, notifier)

	err := in.Buy(context.Background(), "price_1")
	assert.ErrorIs(t, err, ErrCheckoutFailed)
	assert.True(t, in.Enabled())
	assert.Equal(t, []string{FailureMessage}, notifier.Messages())
	assert.Empty(t, nav.URLs())
}

func TestInitiator_MalformedResponseReturnsToIdle(t *testing.T) {
	in, nav, notifier := newInitiator(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"url": "https://pay.example/session/abc"}`))
	})

	err := in.Buy(context.Background(), "price_1")
	assert.ErrorIs(t, err, ErrCheckoutFailed)
	assert.True(t, in.Enabled())
	assert.Len(t, notifier.Messages(), 1)
	assert.Empty(t, nav.URLs())
}

func TestInitiator_NavigationFailureStaysRedirecting(t *testing.T) {
	var calls atomic.Int32
	in, nav, notifier := newInitiator(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"checkoutUrl": "https://pay.example/session/abc"}`))
	})
	nav.err = errors.New("blocked")

	err := in.Buy(context.Background(), "price_1")
	assert.ErrorIs(t, err, nav.err)
	assert.Equal(t, Redirecting, in.State())
	assert.False(t, in.Enabled())
	assert.Empty(t, notifier.Messages())

	assert.ErrorIs(t, in.Buy(context.Background(), "price_1"), ErrCheckoutPending)
	assert.Equal(t, int32(1), calls.Load())
}

func TestInitiator_RetryAfterFailureUsesFreshKey(t *testing.T) {
	var keys []string
	var mu sync.Mutex
	var calls atomic.Int32
	in, nav, _ := newInitiator(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		keys = append(keys, r.Header.Get(IdempotencyHeader))
		mu.Unlock()
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"checkoutUrl": "https://pay.example/session/abc"}`))
	})

	require.Error(t, in.Buy(context.Background(), "price_1"))
	require.NoError(t, in.Buy(context.Background(), "price_1"))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
	assert.Equal(t, []string{"https://pay.example/session/abc"}, nav.URLs())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "redirecting", Redirecting.String())
}
