package services

import (
	"context"
	"fmt"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
)

type FavoriteService struct {
	Repo  *repository.FavoriteRepository
	Menus *repository.MenuRepository
}

func NewFavoriteService(repo *repository.FavoriteRepository, menus *repository.MenuRepository) *FavoriteService {
	return &FavoriteService{Repo: repo, Menus: menus}
}

func (s *FavoriteService) List(ctx context.Context, customerID uint) ([]entity.Menu, error) {
	return s.Repo.List(ctx, customerID)
}

func (s *FavoriteService) Add(ctx context.Context, customerID, menuID uint) error {
	const op = "favorites.Add"
	if err := s.requireMenu(ctx, op, menuID); err != nil {
		return err
	}
	return apperr.Context(op, s.Repo.Add(ctx, customerID, menuID))
}

func (s *FavoriteService) Remove(ctx context.Context, customerID, menuID uint) error {
	return apperr.Context("favorites.Remove", s.Repo.Remove(ctx, customerID, menuID))
}

// Toggle flips membership and returns whether the item is now a favorite.
func (s *FavoriteService) Toggle(ctx context.Context, customerID, menuID uint) (bool, error) {
	const op = "favorites.Toggle"
	exists, err := s.Repo.Exists(ctx, customerID, menuID)
	if err != nil {
		return false, apperr.Context(op, err)
	}
	if exists {
		return false, apperr.Context(op, s.Repo.Remove(ctx, customerID, menuID))
	}
	if err := s.requireMenu(ctx, op, menuID); err != nil {
		return false, err
	}
	if err := s.Repo.Add(ctx, customerID, menuID); err != nil {
		return false, apperr.Context(op, err)
	}
	return true, nil
}

func (s *FavoriteService) requireMenu(ctx context.Context, op string, menuID uint) error {
	ok, err := s.Menus.Exists(ctx, menuID)
	if err != nil {
		return apperr.Context(op, err)
	}
	if !ok {
		return apperr.Reference(op, fmt.Sprintf("menu item %d does not exist", menuID))
	}
	return nil
}
