package payments

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/client"
	"go.uber.org/zap"
)

type stripeSessionAPI interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeConfig configures the StripeGateway. Sessions overrides the real
// Stripe client and is only set by tests.
type StripeConfig struct {
	SecretKey      string
	PublishableKey string
	Currency       string
	ProductName    string
	SuccessURL     string
	CancelURL      string
	Backends       *stripe.Backends
	Logger         *zap.Logger

	Sessions stripeSessionAPI
}

// StripeGateway implements Gateway with Stripe Checkout.
type StripeGateway struct {
	sessions    stripeSessionAPI
	publishable string
	currency    string
	product     string
	successURL  string
	cancelURL   string
	log         *zap.Logger
}

func NewStripeGateway(cfg StripeConfig) (*StripeGateway, error) {
	key := strings.TrimSpace(cfg.SecretKey)
	if key == "" && cfg.Sessions == nil {
		return nil, errors.New("stripe: secret key is required")
	}

	sessions := cfg.Sessions
	if sessions == nil {
		sessions = client.New(key, cfg.Backends).CheckoutSessions
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &StripeGateway{
		sessions:    sessions,
		publishable: strings.TrimSpace(cfg.PublishableKey),
		currency:    strings.ToLower(defaultString(cfg.Currency, "usd")),
		product:     defaultString(cfg.ProductName, "Order"),
		successURL:  cfg.SuccessURL,
		cancelURL:   cfg.CancelURL,
		log:         log.Named("stripe"),
	}, nil
}

func (g *StripeGateway) PublishableKey() string { return g.publishable }

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (Session, error) {
	if req.AmountMinor <= 0 {
		return Session{}, fmt.Errorf("stripe: amount must be positive, got %d", req.AmountMinor)
	}
	currency := strings.ToLower(defaultString(req.Currency, g.currency))

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			Quantity: stripe.Int64(1),
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(currency),
				UnitAmount: stripe.Int64(req.AmountMinor),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(g.product),
				},
			},
		}},
	}
	params.Context = ctx
	if key := strings.TrimSpace(req.IdempotencyKey); key != "" {
		params.SetIdempotencyKey(key)
	}
	if req.CustomerID != 0 {
		params.AddMetadata("customer_id", strconv.FormatUint(uint64(req.CustomerID), 10))
	}

	sess, err := g.sessions.New(params)
	if err != nil {
		return Session{}, g.classify("create checkout session", err)
	}

	g.log.Info("checkout session created",
		zap.String("session_id", sess.ID),
		zap.Int64("amount_minor", req.AmountMinor),
		zap.String("currency", currency),
	)
	out := toSession(sess)
	if out.AmountMinor == 0 {
		out.AmountMinor = req.AmountMinor
	}
	if out.Currency == "" {
		out.Currency = currency
	}
	return out, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrSessionNotFound
	}
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := g.sessions.Get(id, params)
	if err != nil {
		return Session{}, g.classify("retrieve checkout session", err)
	}
	return toSession(sess), nil
}

// classify separates "no such session" from transport trouble. Anything the
// provider did not answer with a 4xx is treated as unavailable.
func (g *StripeGateway) classify(op string, err error) error {
	var serr *stripe.Error
	if errors.As(err, &serr) {
		if serr.HTTPStatusCode == http.StatusNotFound || serr.Code == stripe.ErrorCodeResourceMissing {
			return fmt.Errorf("stripe: %s: %w", op, ErrSessionNotFound)
		}
		if serr.HTTPStatusCode >= 400 && serr.HTTPStatusCode < 500 {
			return fmt.Errorf("stripe: %s: %s", op, serr.Msg)
		}
	}
	g.log.Warn("stripe call failed", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("stripe: %s: %w: %v", op, ErrGatewayUnavailable, err)
}

func toSession(s *stripe.CheckoutSession) Session {
	out := Session{
		ID:          s.ID,
		AmountMinor: s.AmountTotal,
		Currency:    string(s.Currency),
		URL:         s.URL,
		Status:      StatusPending,
	}
	if v, err := strconv.ParseUint(s.Metadata["customer_id"], 10, 64); err == nil {
		out.CustomerID = uint(v)
	}
	switch {
	case s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		out.Status = StatusPaid
	case s.Status == stripe.CheckoutSessionStatusExpired:
		out.Status = StatusFailed
	}
	return out
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return strings.TrimSpace(v)
}
