package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/logger"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
)

// DeliveryUserService manages the delivery staff directory.
type DeliveryUserService struct {
	Repo   *repository.DeliveryUserRepository
	Ledger *repository.DeliveryHistoryRepository
	Log    *zap.Logger
}

func NewDeliveryUserService(repo *repository.DeliveryUserRepository, ledger *repository.DeliveryHistoryRepository, log *zap.Logger) *DeliveryUserService {
	return &DeliveryUserService{Repo: repo, Ledger: ledger, Log: logger.OrNop(log)}
}

type CreateDeliveryUserInput struct {
	Username string
	Password string
	FullName string
	Phone    string
	Vehicle  string
	Area     string
}

func (s *DeliveryUserService) List(ctx context.Context) ([]entity.DeliveryUser, error) {
	return s.Repo.List(ctx)
}

// Create is reserved for super-admins.
func (s *DeliveryUserService) Create(ctx context.Context, actor Actor, in CreateDeliveryUserInput) (*entity.DeliveryUser, error) {
	const op = "deliveryUsers.Create"
	if actor.Role != entity.RoleSuperAdmin {
		return nil, apperr.Forbidden(op, "only a super-admin can create delivery users")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, apperr.Validation(op, "username is required")
	}
	if len(in.Password) < 6 {
		return nil, apperr.Validation(op, "password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, op, err)
	}
	u := &entity.DeliveryUser{
		Username: username,
		Password: string(hash),
		FullName: strings.TrimSpace(in.FullName),
		Phone:    strings.TrimSpace(in.Phone),
		Vehicle:  strings.TrimSpace(in.Vehicle),
		Area:     strings.TrimSpace(in.Area),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, apperr.Context(op, err)
	}
	s.Log.Info("delivery user created", zap.Uint("delivery_user_id", u.ID), zap.Uint("by", actor.ID))
	return u, nil
}

func (s *DeliveryUserService) Delete(ctx context.Context, actor Actor, id uint) error {
	const op = "deliveryUsers.Delete"
	if !actor.Role.IsAdmin() {
		return apperr.Forbidden(op, "only admins can delete delivery users")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return apperr.Context(op, err)
	}
	s.Log.Info("delivery user deleted", zap.Uint("delivery_user_id", id), zap.Uint("by", actor.ID))
	return nil
}

func (s *DeliveryUserService) History(ctx context.Context, agentID uint, page, limit int) ([]repository.DeliveryHistoryView, error) {
	return s.Ledger.ListForAgent(ctx, agentID, page, limit)
}
