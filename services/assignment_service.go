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

// AssignmentService hands an open order to a delivery agent. Status and agent
// are written by one update.
type AssignmentService struct {
	DB     *gorm.DB
	Orders *repository.OrderRepository
	Agents *repository.DeliveryUserRepository
	Log    *zap.Logger
}

func NewAssignmentService(db *gorm.DB, orders *repository.OrderRepository, agents *repository.DeliveryUserRepository, log *zap.Logger) *AssignmentService {
	return &AssignmentService{DB: db, Orders: orders, Agents: agents, Log: logger.OrNop(log)}
}

func (s *AssignmentService) Assign(ctx context.Context, orderID, deliveryUserID uint) error {
	const op = "assignment.Assign"
	if deliveryUserID == 0 {
		return apperr.Validation(op, "delivery_user_id is required")
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := s.Orders.GetOrder(tx, orderID)
		if err != nil {
			return err
		}
		if o.Status.Terminal() {
			return apperr.InvalidState(op, fmt.Sprintf("order %d is %s and cannot be assigned", o.ID, o.Status))
		}
		ok, err := s.Agents.Exists(tx, deliveryUserID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound(op, fmt.Sprintf("delivery user %d not found", deliveryUserID))
		}

		rows, err := s.Orders.SetOrderStatus(tx, repository.StatusWrite{
			OrderID:        o.ID,
			From:           o.Status,
			To:             entity.StatusOutForDelivery,
			DeliveryUserID: &deliveryUserID,
		})
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.InvalidState(op, fmt.Sprintf("order %d changed concurrently", o.ID))
		}
		return nil
	})
	if err != nil {
		return apperr.Context(op, err)
	}

	s.Log.Info("order assigned", zap.Uint("order_id", orderID), zap.Uint("delivery_user_id", deliveryUserID))
	return nil
}
