// Package payments wraps the external card checkout provider behind a small
// interface so the order flow can be exercised without network access.
package payments

import (
	"context"
	"errors"
)

// Status is the normalised state of a checkout session.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
)

var (
	// ErrSessionNotFound is returned when the provider has no session with the id.
	ErrSessionNotFound = errors.New("payments: session not found")
	// ErrGatewayUnavailable wraps transport failures and timeouts.
	ErrGatewayUnavailable = errors.New("payments: gateway unavailable")
	// ErrNotConfigured is returned by Disabled.
	ErrNotConfigured = errors.New("payments: gateway not configured")
)

// CheckoutRequest asks the provider for a single-line hosted checkout session.
type CheckoutRequest struct {
	AmountMinor    int64
	Currency       string
	CustomerID     uint
	IdempotencyKey string
}

// Session is never persisted locally; only its id is stored on the order it paid for.
// CustomerID is the customer the session was opened for, 0 when unknown.
type Session struct {
	ID          string `json:"id"`
	Status      Status `json:"status"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	CustomerID  uint   `json:"customer_id,omitempty"`
	URL         string `json:"url,omitempty"`
}

type Gateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (Session, error)
	RetrieveSession(ctx context.Context, id string) (Session, error)
	// PublishableKey is handed to the browser checkout widget.
	PublishableKey() string
}

// Disabled is used when no provider keys are configured; every call fails with
// ErrNotConfigured.
type Disabled struct{}

func (Disabled) CreateCheckoutSession(context.Context, CheckoutRequest) (Session, error) {
	return Session{}, ErrNotConfigured
}

func (Disabled) RetrieveSession(context.Context, string) (Session, error) {
	return Session{}, ErrNotConfigured
}

func (Disabled) PublishableKey() string { return "" }
