package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
)

type DeliveryUserRepository struct{ DB *gorm.DB }

func NewDeliveryUserRepository(db *gorm.DB) *DeliveryUserRepository {
	return &DeliveryUserRepository{DB: db}
}

// Exists runs on tx so the lifecycle can check the agent inside its transaction.
func (r *DeliveryUserRepository) Exists(tx *gorm.DB, id uint) (bool, error) {
	var n int64
	if err := tx.Model(&entity.DeliveryUser{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, dbErr("repository.DeliveryUserExists", err)
	}
	return n > 0, nil
}

func (r *DeliveryUserRepository) List(ctx context.Context) ([]entity.DeliveryUser, error) {
	out := []entity.DeliveryUser{}
	if err := r.DB.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, dbErr("repository.ListDeliveryUsers", err)
	}
	return out, nil
}

func (r *DeliveryUserRepository) Create(ctx context.Context, u *entity.DeliveryUser) error {
	const op = "repository.CreateDeliveryUser"
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Unscoped().Model(&entity.DeliveryUser{}).Where("username = ?", u.Username).Count(&n).Error; err != nil {
			return dbErr(op, err)
		}
		if n > 0 {
			return apperr.InvalidState(op, fmt.Sprintf("username %q is taken", u.Username))
		}
		err := tx.Create(u).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.InvalidState(op, fmt.Sprintf("username %q is taken", u.Username))
		}
		return dbErr(op, err)
	})
}

// Delete soft-deletes the agent unless an order is still out with them.
func (r *DeliveryUserRepository) Delete(ctx context.Context, id uint) error {
	const op = "repository.DeleteDeliveryUser"
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := r.Exists(tx, id)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound(op, fmt.Sprintf("delivery user %d not found", id))
		}
		var active int64
		if err := tx.Model(&entity.Order{}).
			Where("delivery_user_id = ? AND status = ?", id, entity.StatusOutForDelivery).
			Count(&active).Error; err != nil {
			return dbErr(op, err)
		}
		if active > 0 {
			return apperr.InvalidState(op, fmt.Sprintf("delivery user %d has %d order(s) out for delivery", id, active))
		}
		return dbErr(op, tx.Delete(&entity.DeliveryUser{}, id).Error)
	})
}
