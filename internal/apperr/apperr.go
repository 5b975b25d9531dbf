// Package apperr classifies handler failures so the error middleware can
// pick a status code and a message that is safe to send to the shopper.
package apperr

import (
	"errors"
	"net/http"
)

type Kind uint8

const (
	KindInternal Kind = iota
	KindInvalid
	KindUnauthorized
	KindNotFound
	KindUpstream
)

var statusByKind = [...]int{
	KindInternal:     http.StatusInternalServerError,
	KindInvalid:      http.StatusBadRequest,
	KindUnauthorized: http.StatusUnauthorized,
	KindNotFound:     http.StatusNotFound,
	KindUpstream:     http.StatusBadGateway,
}

const genericMessage = "Unexpected error."

// Error carries a Kind, the shopper-facing Msg and the underlying cause,
// which is only ever logged.
type Error struct {
	Kind  Kind
	Msg   string
	cause error
}

func New(kind Kind, msg string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, cause: cause}
}

// Internal hides cause behind the generic message. It returns nil for a nil
// cause.
func Internal(cause error) error {
	if cause == nil {
		return nil
	}
	return New(KindInternal, "", cause)
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = genericMessage
	}
	if e.cause == nil {
		return msg
	}
	return msg + " (" + e.cause.Error() + ")"
}

func (e *Error) Unwrap() error { return e.cause }

// Status maps err to an HTTP status; unclassified errors are 500.
func Status(err error) int {
	var e *Error
	if errors.As(err, &e) && int(e.Kind) < len(statusByKind) {
		return statusByKind[e.Kind]
	}
	return http.StatusInternalServerError
}

// Message is the text shown to the shopper for err.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	return genericMessage
}
