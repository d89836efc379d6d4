package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/logger"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
)

// AdminService manages the admin staff directory.
type AdminService struct {
	Repo *repository.AdminRepository
	Log  *zap.Logger
}

func NewAdminService(repo *repository.AdminRepository, log *zap.Logger) *AdminService {
	return &AdminService{Repo: repo, Log: logger.OrNop(log)}
}

type CreateAdminInput struct {
	Username string
	Password string
	FullName string
	Phone    string
	Role     string
}

func (s *AdminService) List(ctx context.Context) ([]entity.Admin, error) {
	return s.Repo.List(ctx)
}

// Create is reserved for super-admins. Role defaults to admin.
func (s *AdminService) Create(ctx context.Context, actor Actor, in CreateAdminInput) (*entity.Admin, error) {
	const op = "admins.Create"
	if actor.Role != entity.RoleSuperAdmin {
		return nil, apperr.Forbidden(op, "only a super-admin can create admins")
	}
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, apperr.Validation(op, "username is required")
	}
	if len(in.Password) < 6 {
		return nil, apperr.Validation(op, "password must be at least 6 characters")
	}
	role := entity.Role(strings.TrimSpace(in.Role))
	if role == "" {
		role = entity.RoleAdmin
	}
	if !role.IsAdmin() {
		return nil, apperr.Validation(op, fmt.Sprintf("role must be %q or %q", entity.RoleAdmin, entity.RoleSuperAdmin))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindPersistence, op, err)
	}
	a := &entity.Admin{
		Username: username,
		Password: string(hash),
		FullName: strings.TrimSpace(in.FullName),
		Phone:    strings.TrimSpace(in.Phone),
		Role:     role,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return nil, apperr.Context(op, err)
	}
	s.Log.Info("admin created", zap.Uint("admin_id", a.ID), zap.String("role", string(role)), zap.Uint("by", actor.ID))
	return a, nil
}

// Delete refuses self-deletion.
func (s *AdminService) Delete(ctx context.Context, actor Actor, id uint) error {
	const op = "admins.Delete"
	if !actor.Role.IsAdmin() {
		return apperr.Forbidden(op, "only admins can delete admins")
	}
	if id == actor.ID {
		return apperr.InvalidState(op, "admins cannot delete themselves")
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return apperr.Context(op, err)
	}
	s.Log.Info("admin deleted", zap.Uint("admin_id", id), zap.Uint("by", actor.ID))
	return nil
}
