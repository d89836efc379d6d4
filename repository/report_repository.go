package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
)

// ReportRepository serves the admin dashboard aggregates. Cancelled orders are
// excluded from revenue.
type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type Counts struct {
	Orders        int64 `json:"total_orders"`
	PendingOrders int64 `json:"pending_orders"`
	Customers     int64 `json:"total_customers"`
	MenuItems     int64 `json:"total_menu_items"`
	DeliveryUsers int64 `json:"total_delivery_users"`
}

func (r *ReportRepository) Counts(ctx context.Context) (Counts, error) {
	const op = "repository.Counts"
	db := r.db.WithContext(ctx)
	var c Counts
	steps := []struct {
		q   *gorm.DB
		dst *int64
	}{
		{db.Model(&entity.Order{}), &c.Orders},
		{db.Model(&entity.Order{}).Where("status = ?", entity.StatusPending), &c.PendingOrders},
		{db.Model(&entity.Customer{}), &c.Customers},
		{db.Model(&entity.Menu{}), &c.MenuItems},
		{db.Model(&entity.DeliveryUser{}), &c.DeliveryUsers},
	}
	for _, s := range steps {
		if err := s.q.Count(s.dst).Error; err != nil {
			return Counts{}, dbErr(op, err)
		}
	}
	return c, nil
}

// Revenue sums non-cancelled order totals created in [from, to). Zero times
// leave that side open.
func (r *ReportRepository) Revenue(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&entity.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status <> ?", entity.StatusCancelled)
	if !from.IsZero() {
		q = q.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("created_at < ?", to)
	}
	var total decimal.NullDecimal
	if err := q.Row().Scan(&total); err != nil {
		return decimal.Zero, dbErr("repository.Revenue", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal.Round(2), nil
}

type RecentOrder struct {
	ID           uint               `json:"id"`
	CustomerName string             `json:"customer_name"`
	TotalAmount  decimal.Decimal    `json:"total_amount"`
	Status       entity.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
}

func (r *ReportRepository) RecentOrders(ctx context.Context, limit int) ([]RecentOrder, error) {
	out := []RecentOrder{}
	err := r.db.WithContext(ctx).Table("orders AS o").
		Select("o.id, c.full_name AS customer_name, o.total_amount, o.status, o.created_at").
		Joins("LEFT JOIN customers c ON c.id = o.customer_id").
		Order("o.created_at DESC, o.id DESC").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, dbErr("repository.RecentOrders", err)
	}
	return out, nil
}

type TopItem struct {
	MenuID       uint            `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	TotalQty     int64           `json:"total_qty"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// TopItems ranks menu items by quantity sold across non-cancelled orders.
func (r *ReportRepository) TopItems(ctx context.Context, limit int) ([]TopItem, error) {
	out := []TopItem{}
	err := r.db.WithContext(ctx).Table("order_items AS oi").
		Select("oi.menu_id, m.name, m.category, "+
			"COALESCE(SUM(oi.quantity), 0) AS total_qty, "+
			"COALESCE(SUM(oi.price * oi.quantity), 0) AS total_revenue").
		Joins("JOIN orders o ON o.id = oi.order_id").
		Joins("LEFT JOIN menu m ON m.id = oi.menu_id").
		Where("o.status <> ?", entity.StatusCancelled).
		Group("oi.menu_id, m.name, m.category").
		Order("total_qty DESC, oi.menu_id").
		Limit(limit).
		Scan(&out).Error
	if err != nil {
		return nil, dbErr("repository.TopItems", err)
	}
	for i := range out {
		out[i].TotalRevenue = out[i].TotalRevenue.Round(2)
	}
	return out, nil
}
