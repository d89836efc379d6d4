package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/logger"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
)

// Actor is the authenticated caller. Role and ID come from a verified token.
type Actor struct {
	Role entity.Role
	ID   uint
}

type TransitionRequest struct {
	Status         string
	DeliveryUserID *uint
}

// OrderLifecycle owns the order state machine:
//
//	Pending -> Preparing -> Out for Delivery -> Delivered
//	any non-terminal -> Cancelled
//
// The status read and the guarded write share one transaction.
type OrderLifecycle struct {
	DB     *gorm.DB
	Orders *repository.OrderRepository
	Agents *repository.DeliveryUserRepository
	Ledger *repository.DeliveryHistoryRepository
	Log    *zap.Logger
}

func NewOrderLifecycle(
	db *gorm.DB,
	orders *repository.OrderRepository,
	agents *repository.DeliveryUserRepository,
	ledger *repository.DeliveryHistoryRepository,
	log *zap.Logger,
) *OrderLifecycle {
	return &OrderLifecycle{DB: db, Orders: orders, Agents: agents, Ledger: ledger, Log: logger.OrNop(log)}
}

// Transition applies req to the order on behalf of actor and returns the
// updated row.
func (l *OrderLifecycle) Transition(ctx context.Context, actor Actor, orderID uint, req TransitionRequest) (*entity.Order, error) {
	const op = "lifecycle.Transition"

	target, err := checkRequest(actor, req)
	if err != nil {
		return nil, err
	}

	var out *entity.Order
	err = l.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := l.Orders.GetOrder(tx, orderID)
		if err != nil {
			return err
		}

		// Repeating a delivery confirmation is a no-op for the agent who made it.
		if o.Status == entity.StatusDelivered && target == entity.StatusDelivered && assignedTo(o, actor.ID) {
			if _, err := l.Ledger.Record(tx, o.ID, actor.ID); err != nil {
				return err
			}
			out = o
			return nil
		}
		if o.Status.Terminal() {
			return apperr.InvalidState(op, fmt.Sprintf("order %d is %s and cannot change", o.ID, o.Status))
		}

		w := repository.StatusWrite{OrderID: o.ID, From: o.Status, To: target}
		switch target {
		case entity.StatusPreparing:
			if o.Status != entity.StatusPending {
				return apperr.InvalidState(op, fmt.Sprintf("order %d: %s -> %s is not allowed", o.ID, o.Status, target))
			}
		case entity.StatusOutForDelivery:
			ok, err := l.Agents.Exists(tx, *req.DeliveryUserID)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.NotFound(op, fmt.Sprintf("delivery user %d not found", *req.DeliveryUserID))
			}
			w.DeliveryUserID = req.DeliveryUserID
		case entity.StatusDelivered:
			if o.Status != entity.StatusOutForDelivery {
				return apperr.InvalidState(op, fmt.Sprintf("order %d: %s -> %s is not allowed", o.ID, o.Status, target))
			}
			if !assignedTo(o, actor.ID) {
				return apperr.Forbidden(op, fmt.Sprintf("order %d is not assigned to delivery user %d", o.ID, actor.ID))
			}
			w.AssignedTo = &actor.ID
		case entity.StatusCancelled:
			w.ClearDeliveryUser = true
		}

		rows, err := l.Orders.SetOrderStatus(tx, w)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.InvalidState(op, fmt.Sprintf("order %d changed concurrently", o.ID))
		}
		if target == entity.StatusDelivered {
			if _, err := l.Ledger.Record(tx, o.ID, actor.ID); err != nil {
				return err
			}
		}

		out, err = l.Orders.GetOrder(tx, o.ID)
		return err
	})
	if err != nil {
		return nil, apperr.Context(op, err)
	}

	l.Log.Info("order status changed",
		zap.Uint("order_id", out.ID),
		zap.String("status", string(out.Status)),
		zap.String("actor_role", string(actor.Role)),
		zap.Uint("actor_id", actor.ID),
	)
	return out, nil
}

// checkRequest rejects everything that can be decided without reading the order.
func checkRequest(actor Actor, req TransitionRequest) (entity.OrderStatus, error) {
	const op = "lifecycle.Transition"

	target, ok := entity.ParseOrderStatus(req.Status)
	if !ok {
		return "", apperr.Validation(op, fmt.Sprintf("unknown status %q", req.Status))
	}
	if req.DeliveryUserID != nil && target != entity.StatusOutForDelivery {
		return "", apperr.Validation(op, fmt.Sprintf("delivery_user_id is only accepted with status %q", entity.StatusOutForDelivery))
	}

	switch target {
	case entity.StatusPreparing, entity.StatusOutForDelivery, entity.StatusCancelled:
		if !actor.Role.IsAdmin() {
			return "", apperr.Validation(op, fmt.Sprintf("role %q may not set status %q", actor.Role, target))
		}
	case entity.StatusDelivered:
		if actor.Role != entity.RoleDelivery {
			return "", apperr.Validation(op, fmt.Sprintf("role %q may not set status %q", actor.Role, target))
		}
	default:
		return "", apperr.Validation(op, fmt.Sprintf("status %q cannot be set", target))
	}

	if target == entity.StatusOutForDelivery && (req.DeliveryUserID == nil || *req.DeliveryUserID == 0) {
		return "", apperr.Validation(op, "delivery_user_id is required for status \"Out for Delivery\"")
	}
	return target, nil
}

func assignedTo(o *entity.Order, agentID uint) bool {
	return o.DeliveryUserID != nil && *o.DeliveryUserID == agentID
}
