package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
)

// MenuRepository only reads; catalog maintenance lives elsewhere.
type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

func (r *MenuRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&entity.Menu{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, dbErr("repository.MenuExists", err)
	}
	return n > 0, nil
}
