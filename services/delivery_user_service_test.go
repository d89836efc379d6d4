package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
)

func TestDeliveryUserCreateIsSuperAdminOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewDeliveryUserService(f.agents, f.ledger, nil)
	in := CreateDeliveryUserInput{Username: " newrider ", Password: "secret99", FullName: "New Rider", Vehicle: "bike"}

	_, err := svc.Create(ctx, Actor{Role: entity.RoleAdmin, ID: 1}, in)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	u, err := svc.Create(ctx, Actor{Role: entity.RoleSuperAdmin, ID: 1}, in)
	require.NoError(t, err)
	assert.Equal(t, "newrider", u.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret99")))

	_, err = svc.Create(ctx, Actor{Role: entity.RoleSuperAdmin, ID: 1}, in)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState), "duplicate username")

	_, err = svc.Create(ctx, Actor{Role: entity.RoleSuperAdmin, ID: 1}, CreateDeliveryUserInput{Username: "x", Password: "123"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestDeliveryUserDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := NewDeliveryUserService(f.agents, f.ledger, nil)
	assign := NewAssignmentService(f.db, f.orders, f.agents, nil)
	l := newLifecycle(f)

	err := svc.Delete(ctx, Actor{Role: entity.RoleDelivery, ID: f.agent.ID}, f.agent.ID)
	assert.True(t, errors.Is(err, apperr.ErrForbidden))

	id := f.placeOrder(t)
	require.NoError(t, assign.Assign(ctx, id, f.agent.ID))
	err = svc.Delete(ctx, Actor{Role: entity.RoleAdmin, ID: 1}, f.agent.ID)
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))

	_, err = l.Transition(ctx, Actor{Role: entity.RoleDelivery, ID: f.agent.ID}, id, TransitionRequest{Status: "Delivered"})
	require.NoError(t, err)

	hist, err := svc.History(ctx, f.agent.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, id, hist[0].OrderID)

	require.NoError(t, svc.Delete(ctx, Actor{Role: entity.RoleAdmin, ID: 1}, f.agent.ID))

	// the ledger keeps its rows after the agent is gone
	hist, err = svc.History(ctx, f.agent.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}
