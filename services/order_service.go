package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/logger"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/payments"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
	"github.com/omarbeegsi189-star/online-food-order-system/utils"
)

// OrderService places orders, either directly (cash) or after a card checkout
// session has been paid.
type OrderService struct {
	Repo    *repository.OrderRepository
	Gateway payments.Gateway
	Log     *zap.Logger
}

func NewOrderService(repo *repository.OrderRepository, gateway payments.Gateway, log *zap.Logger) *OrderService {
	if gateway == nil {
		gateway = payments.Disabled{}
	}
	return &OrderService{Repo: repo, Gateway: gateway, Log: logger.OrNop(log)}
}

// ----- Checkout -----

// CreateCheckoutSession opens a gateway session for the rounded total. No order
// row exists until ConfirmCheckout.
func (s *OrderService) CreateCheckoutSession(ctx context.Context, customerID uint, total decimal.Decimal) (payments.Session, error) {
	const op = "orders.CreateCheckoutSession"
	total = utils.RoundMoney(total)
	if !total.IsPositive() {
		return payments.Session{}, apperr.Validation(op, "total_amount must be greater than 0")
	}
	if !utils.FitsColumn(total) {
		return payments.Session{}, apperr.Validation(op, "total_amount is too large")
	}

	sess, err := s.Gateway.CreateCheckoutSession(ctx, payments.CheckoutRequest{
		AmountMinor:    utils.MinorUnits(total),
		CustomerID:     customerID,
		IdempotencyKey: ulid.Make().String(),
	})
	if err != nil {
		s.Log.Warn("checkout session failed", zap.Uint("customer_id", customerID), zap.Error(err))
		return payments.Session{}, apperr.Wrap(apperr.KindGatewayUnavailable, op, err)
	}
	return sess, nil
}

type ConfirmRequest struct {
	SessionID string
	Order     repository.NewOrder
}

// ConfirmCheckout creates the order only when the gateway reports the session
// paid, for the confirming customer, for exactly the order total. A session
// pays for one order: confirming it again returns that order's id.
func (s *OrderService) ConfirmCheckout(ctx context.Context, req ConfirmRequest) (uint, error) {
	const op = "orders.ConfirmCheckout"
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		return 0, apperr.Validation(op, "session_id is required")
	}
	if err := ValidateNewOrder(req.Order); err != nil {
		return 0, apperr.Context(op, err)
	}

	if id, ok, err := s.sessionOrder(ctx, op, req); ok || err != nil {
		return id, err
	}

	sess, err := s.Gateway.RetrieveSession(ctx, req.SessionID)
	switch {
	case errors.Is(err, payments.ErrSessionNotFound):
		return 0, apperr.New(apperr.KindPaymentNotCompleted, op, fmt.Sprintf("session %s not found", req.SessionID))
	case err != nil:
		s.Log.Warn("retrieve checkout session failed", zap.String("session_id", req.SessionID), zap.Error(err))
		return 0, apperr.Wrap(apperr.KindGatewayUnavailable, op, err)
	}

	if sess.Status != payments.StatusPaid {
		s.Log.Info("payment not completed", zap.String("session_id", sess.ID), zap.String("status", string(sess.Status)))
		return 0, apperr.New(apperr.KindPaymentNotCompleted, op, fmt.Sprintf("session %s is %s", sess.ID, sess.Status))
	}
	if sess.CustomerID != req.Order.CustomerID {
		s.Log.Warn("checkout session customer mismatch",
			zap.String("session_id", sess.ID),
			zap.Uint("session_customer_id", sess.CustomerID),
			zap.Uint("customer_id", req.Order.CustomerID),
		)
		return 0, apperr.Forbidden(op, fmt.Sprintf("session %s was not opened by customer %d", sess.ID, req.Order.CustomerID))
	}
	if want := utils.MinorUnits(req.Order.TotalAmount); sess.AmountMinor != want {
		s.Log.Warn("paid amount mismatch",
			zap.String("session_id", sess.ID),
			zap.Int64("paid_minor", sess.AmountMinor),
			zap.Int64("order_minor", want),
		)
		return 0, apperr.New(apperr.KindPaymentNotCompleted, op,
			fmt.Sprintf("session %s paid %d but order total is %d", sess.ID, sess.AmountMinor, want))
	}

	in := req.Order
	in.PaymentSessionID = req.SessionID
	id, err := s.Repo.CreateOrder(ctx, in)
	if errors.Is(err, apperr.ErrInvalidState) {
		// a concurrent confirm of the same session won the insert
		if id, ok, lookupErr := s.sessionOrder(ctx, op, req); ok || lookupErr != nil {
			return id, lookupErr
		}
	}
	if err != nil {
		return 0, apperr.Context(op, err)
	}
	s.Log.Info("order placed",
		zap.Uint("order_id", id),
		zap.Uint("customer_id", req.Order.CustomerID),
		zap.String("payment", "card"),
		zap.String("session_id", sess.ID),
	)
	return id, nil
}

// sessionOrder resolves a confirm for a session that already paid for an order.
func (s *OrderService) sessionOrder(ctx context.Context, op string, req ConfirmRequest) (uint, bool, error) {
	prev, ok, err := s.Repo.OrderForSession(ctx, req.SessionID)
	if err != nil {
		return 0, false, apperr.Context(op, err)
	}
	if !ok {
		return 0, false, nil
	}
	if prev.CustomerID != req.Order.CustomerID {
		s.Log.Warn("checkout session reused by another customer",
			zap.String("session_id", req.SessionID),
			zap.Uint("customer_id", req.Order.CustomerID),
		)
		return 0, false, apperr.Forbidden(op, fmt.Sprintf("session %s was not opened by customer %d", req.SessionID, req.Order.CustomerID))
	}
	s.Log.Info("checkout already confirmed", zap.String("session_id", req.SessionID), zap.Uint("order_id", prev.ID))
	return prev.ID, true, nil
}

// PlaceOrder is the cash-on-delivery path.
func (s *OrderService) PlaceOrder(ctx context.Context, in repository.NewOrder) (uint, error) {
	const op = "orders.PlaceOrder"
	if err := ValidateNewOrder(in); err != nil {
		return 0, apperr.Context(op, err)
	}
	id, err := s.Repo.CreateOrder(ctx, in)
	if err != nil {
		return 0, apperr.Context(op, err)
	}
	s.Log.Info("order placed", zap.Uint("order_id", id), zap.Uint("customer_id", in.CustomerID), zap.String("payment", "cash"))
	return id, nil
}

// ValidateNewOrder checks the payload shape and that the line totals add up to
// the order total within a cent.
func ValidateNewOrder(in repository.NewOrder) error {
	const op = "orders.Validate"
	if in.CustomerID == 0 {
		return apperr.Validation(op, "customer_id is required")
	}
	if len(in.Items) == 0 {
		return apperr.Validation(op, "at least one item is required")
	}
	sum := decimal.Zero
	for i, it := range in.Items {
		if it.MenuID == 0 {
			return apperr.Validation(op, fmt.Sprintf("items[%d]: menu_id is required", i))
		}
		if it.Quantity < 1 {
			return apperr.Validation(op, fmt.Sprintf("items[%d]: quantity must be at least 1", i))
		}
		if !utils.RoundMoney(it.UnitPrice).IsPositive() {
			return apperr.Validation(op, fmt.Sprintf("items[%d]: price must be greater than 0", i))
		}
		line := utils.LineTotal(it.UnitPrice, it.Quantity)
		if !utils.FitsColumn(line) {
			return apperr.Validation(op, fmt.Sprintf("items[%d]: line total is too large", i))
		}
		sum = sum.Add(line)
	}
	total := utils.RoundMoney(in.TotalAmount)
	if !total.IsPositive() {
		return apperr.Validation(op, "total_amount must be greater than 0")
	}
	if !utils.FitsColumn(total) {
		return apperr.Validation(op, "total_amount is too large")
	}
	if !utils.WithinCent(sum, total) {
		return apperr.Validation(op, fmt.Sprintf("total_amount %s does not match items total %s", total.StringFixed(2), sum.StringFixed(2)))
	}
	return nil
}

// ----- Reads -----

func (s *OrderService) ListForCustomer(ctx context.Context, customerID uint, page, limit int) ([]repository.OrderView, error) {
	return s.Repo.ListOrders(ctx, repository.OrderFilter{CustomerID: customerID, Page: page, Limit: limit})
}

func (s *OrderService) ListAll(ctx context.Context, status string, page, limit int) ([]repository.OrderView, error) {
	f := repository.OrderFilter{Page: page, Limit: limit}
	if status != "" {
		st, ok := entity.ParseOrderStatus(status)
		if !ok {
			return nil, apperr.Validation("orders.ListAll", fmt.Sprintf("unknown status %q", status))
		}
		f.Status = st
	}
	return s.Repo.ListOrders(ctx, f)
}

// ListForAgent defaults to the orders the agent still has to deliver.
func (s *OrderService) ListForAgent(ctx context.Context, agentID uint, status string, page, limit int) ([]repository.OrderView, error) {
	st := entity.StatusOutForDelivery
	if status != "" {
		var ok bool
		if st, ok = entity.ParseOrderStatus(status); !ok {
			return nil, apperr.Validation("orders.ListForAgent", fmt.Sprintf("unknown status %q", status))
		}
	}
	return s.Repo.ListOrders(ctx, repository.OrderFilter{DeliveryUserID: agentID, Status: st, Page: page, Limit: limit})
}

// StatusForCustomer hides other customers' orders behind NotFound.
func (s *OrderService) StatusForCustomer(ctx context.Context, customerID, orderID uint) (entity.OrderStatus, error) {
	const op = "orders.StatusForCustomer"
	ok, err := s.Repo.OrderOwnedBy(ctx, orderID, customerID)
	if err != nil {
		return "", apperr.Context(op, err)
	}
	if !ok {
		return "", apperr.NotFound(op, fmt.Sprintf("order %d not found", orderID))
	}
	return s.Repo.GetOrderStatus(ctx, orderID)
}
