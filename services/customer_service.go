package services

import (
	"context"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
)

// CustomerService reads and edits the signed-in customer's profile.
type CustomerService struct {
	Repo *repository.CustomerRepository
}

func NewCustomerService(repo *repository.CustomerRepository) *CustomerService {
	return &CustomerService{Repo: repo}
}

func (s *CustomerService) Profile(ctx context.Context, customerID uint) (*entity.Customer, error) {
	c, err := s.Repo.FindByID(ctx, customerID)
	return c, apperr.Context("customers.Profile", err)
}

// UpdateProfile only overwrites the fields that are not blank.
func (s *CustomerService) UpdateProfile(ctx context.Context, customerID uint, p repository.Profile) (*entity.Customer, error) {
	c, err := s.Repo.UpdateProfile(ctx, customerID, p)
	return c, apperr.Context("customers.UpdateProfile", err)
}
