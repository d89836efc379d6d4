package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/configs"
	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/payments"
	"github.com/omarbeegsi189-star/online-food-order-system/repository"
)

type fixture struct {
	db       *gorm.DB
	orders   *repository.OrderRepository
	agents   *repository.DeliveryUserRepository
	ledger   *repository.DeliveryHistoryRepository
	customer entity.Customer
	bowl     entity.Menu
	agent    entity.DeliveryUser
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := configs.ConnectDB(configs.DBConfig{
		Driver:       "sqlite",
		Source:       filepath.Join(t.TempDir(), "test.db"),
		MaxOpenConns: 1,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, configs.SetupDatabase(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	f := &fixture{
		db:     db,
		orders: repository.NewOrderRepository(db),
		agents: repository.NewDeliveryUserRepository(db),
		ledger: repository.NewDeliveryHistoryRepository(db),
	}
	f.customer = entity.Customer{FullName: "Ana Lima", Email: "ana@example.com"}
	require.NoError(t, db.Create(&f.customer).Error)
	f.bowl = entity.Menu{Name: "Quinoa Bowl", Price: decimal.RequireFromString("8.99")}
	require.NoError(t, db.Create(&f.bowl).Error)
	f.agent = entity.DeliveryUser{Username: "rider", FullName: "Rider"}
	require.NoError(t, db.Create(&f.agent).Error)
	return f
}

// newOrder is the 2 x 8.99 = 17.98 order used across tests.
func (f *fixture) newOrder() repository.NewOrder {
	return repository.NewOrder{
		CustomerID:  f.customer.ID,
		Items:       []repository.NewOrderItem{{MenuID: f.bowl.ID, Quantity: 2, UnitPrice: dec("8.99")}},
		TotalAmount: dec("17.98"),
	}
}

func (f *fixture) placeOrder(t *testing.T) uint {
	t.Helper()
	id, err := f.orders.CreateOrder(context.Background(), f.newOrder())
	require.NoError(t, err)
	return id
}

func (f *fixture) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&entity.Order{}).Count(&n).Error)
	return n
}

func (f *fixture) status(t *testing.T, id uint) entity.OrderStatus {
	t.Helper()
	st, err := f.orders.GetOrderStatus(context.Background(), id)
	require.NoError(t, err)
	return st
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func uintPtr(v uint) *uint { return &v }

type fakeGateway struct {
	sessions map[string]payments.Session
	created  []payments.CheckoutRequest
	err      error
}

func (g *fakeGateway) CreateCheckoutSession(_ context.Context, req payments.CheckoutRequest) (payments.Session, error) {
	if g.err != nil {
		return payments.Session{}, g.err
	}
	g.created = append(g.created, req)
	return payments.Session{ID: "cs_new", Status: payments.StatusPending, AmountMinor: req.AmountMinor, URL: "https://pay.test/cs_new"}, nil
}

func (g *fakeGateway) RetrieveSession(_ context.Context, id string) (payments.Session, error) {
	if g.err != nil {
		return payments.Session{}, g.err
	}
	s, ok := g.sessions[id]
	if !ok {
		return payments.Session{}, payments.ErrSessionNotFound
	}
	return s, nil
}

func (g *fakeGateway) PublishableKey() string { return "pk_test" }
