package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
)

type AdminRepository struct{ DB *gorm.DB }

func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{DB: db}
}

func (r *AdminRepository) List(ctx context.Context) ([]entity.Admin, error) {
	out := []entity.Admin{}
	if err := r.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, dbErr("repository.ListAdmins", err)
	}
	return out, nil
}

// Create refuses usernames held by any admin row, deleted ones included.
func (r *AdminRepository) Create(ctx context.Context, a *entity.Admin) error {
	const op = "repository.CreateAdmin"
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Unscoped().Model(&entity.Admin{}).Where("username = ?", a.Username).Count(&n).Error; err != nil {
			return dbErr(op, err)
		}
		if n > 0 {
			return apperr.InvalidState(op, fmt.Sprintf("username %q is taken", a.Username))
		}
		err := tx.Create(a).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.InvalidState(op, fmt.Sprintf("username %q is taken", a.Username))
		}
		return dbErr(op, err)
	})
}

// Delete soft-deletes the admin. The last super-admin stays.
func (r *AdminRepository) Delete(ctx context.Context, id uint) error {
	const op = "repository.DeleteAdmin"
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a entity.Admin
		res := tx.Where("id = ?", id).Limit(1).Find(&a)
		if res.Error != nil {
			return dbErr(op, res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.NotFound(op, fmt.Sprintf("admin %d not found", id))
		}
		if a.Role == entity.RoleSuperAdmin {
			var supers int64
			if err := tx.Model(&entity.Admin{}).Where("role = ?", entity.RoleSuperAdmin).Count(&supers).Error; err != nil {
				return dbErr(op, err)
			}
			if supers <= 1 {
				return apperr.InvalidState(op, "the last super-admin cannot be deleted")
			}
		}
		return dbErr(op, tx.Delete(&entity.Admin{}, id).Error)
	})
}
