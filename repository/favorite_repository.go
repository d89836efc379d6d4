package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
)

// FavoriteRepository treats favorites as a set keyed by (customer, menu).
type FavoriteRepository struct {
	DB *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{DB: db}
}

// Add is a no-op when the pair is already present.
func (r *FavoriteRepository) Add(ctx context.Context, customerID, menuID uint) error {
	fav := entity.Favorite{CustomerID: customerID, MenuID: menuID}
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&fav).Error
	return dbErr("repository.AddFavorite", err)
}

// Remove is a no-op when the pair is absent.
func (r *FavoriteRepository) Remove(ctx context.Context, customerID, menuID uint) error {
	err := r.DB.WithContext(ctx).
		Where("customer_id = ? AND menu_id = ?", customerID, menuID).
		Delete(&entity.Favorite{}).Error
	return dbErr("repository.RemoveFavorite", err)
}

func (r *FavoriteRepository) Exists(ctx context.Context, customerID, menuID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Favorite{}).
		Where("customer_id = ? AND menu_id = ?", customerID, menuID).
		Count(&n).Error
	if err != nil {
		return false, dbErr("repository.FavoriteExists", err)
	}
	return n > 0, nil
}

// List returns the favourite menu rows of a customer.
func (r *FavoriteRepository) List(ctx context.Context, customerID uint) ([]entity.Menu, error) {
	out := []entity.Menu{}
	err := r.DB.WithContext(ctx).
		Joins("JOIN favorites f ON f.menu_id = menu.id").
		Where("f.customer_id = ?", customerID).
		Order("menu.name").
		Find(&out).Error
	if err != nil {
		return nil, dbErr("repository.ListFavorites", err)
	}
	return out, nil
}
