package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint) (*entity.Customer, error) {
	const op = "repository.FindCustomer"
	var c entity.Customer
	res := r.DB.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&c)
	if res.Error != nil {
		return nil, dbErr(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound(op, fmt.Sprintf("customer %d not found", id))
	}
	return &c, nil
}

// Profile holds the editable customer fields. Blank fields are left unchanged.
type Profile struct {
	FullName string
	Phone    string
	Address  string
}

func (p Profile) sets() map[string]any {
	sets := map[string]any{}
	if v := strings.TrimSpace(p.FullName); v != "" {
		sets["full_name"] = v
	}
	if v := strings.TrimSpace(p.Phone); v != "" {
		sets["phone"] = v
	}
	if v := strings.TrimSpace(p.Address); v != "" {
		sets["address"] = v
	}
	return sets
}

// UpdateProfile applies p and returns the stored customer.
func (r *CustomerRepository) UpdateProfile(ctx context.Context, id uint, p Profile) (*entity.Customer, error) {
	const op = "repository.UpdateProfile"
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&entity.Customer{}).Where("id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return apperr.NotFound(op, fmt.Sprintf("customer %d not found", id))
		}
		return updateProfile(tx, id, p)
	})
	if err != nil {
		return nil, dbErr(op, err)
	}
	return r.FindByID(ctx, id)
}

func updateProfile(tx *gorm.DB, customerID uint, p Profile) error {
	sets := p.sets()
	if len(sets) == 0 {
		return nil
	}
	return tx.Model(&entity.Customer{}).Where("id = ?", customerID).Updates(sets).Error
}
