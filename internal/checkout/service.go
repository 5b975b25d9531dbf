package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxIdempotencyKeyLen is the longest key the payments provider accepts.
const maxIdempotencyKeyLen = 255

var (
	ErrMissingPriceID        = errors.New("price id is required")
	ErrInvalidIdempotencyKey = errors.New("idempotency key longer than 255 characters")
)

// SessionInput describes one hosted checkout session.
type SessionInput struct {
	PriceID        string
	SuccessURL     string
	CancelURL      string
	IdempotencyKey string
}

// SessionCreator opens a checkout session at the payments provider and
// returns its hosted URL.
type SessionCreator interface {
	CreateSession(ctx context.Context, in SessionInput) (string, error)
}

// Service turns a price id into a hosted checkout session URL.
type Service struct {
	sessions   SessionCreator
	successURL string
	cancelURL  string
}

// NewService builds the service. Shoppers return to baseURL after paying
// or cancelling.
func NewService(sessions SessionCreator, baseURL string) *Service {
	baseURL = strings.TrimRight(baseURL, "/")
	return &Service{
		sessions:   sessions,
		successURL: baseURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  baseURL + "/",
	}
}

func (s *Service) CreateSession(ctx context.Context, priceID, idempotencyKey string) (string, error) {
	priceID = strings.TrimSpace(priceID)
	if priceID == "" {
		return "", ErrMissingPriceID
	}
	if utf8.RuneCountInString(idempotencyKey) > maxIdempotencyKeyLen {
		return "", ErrInvalidIdempotencyKey
	}

	url, err := s.sessions.CreateSession(ctx, SessionInput{
		PriceID:        priceID,
		SuccessURL:     s.successURL,
		CancelURL:      s.cancelURL,
		IdempotencyKey: idempotencyKey,
	})
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	if url == "" {
		return "", errors.New("create checkout session: provider returned no url")
	}
	return url, nil
}
