package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
)

// DeliveryHistoryRepository is the append-only ledger of completed deliveries.
type DeliveryHistoryRepository struct{ DB *gorm.DB }

func NewDeliveryHistoryRepository(db *gorm.DB) *DeliveryHistoryRepository {
	return &DeliveryHistoryRepository{DB: db}
}

// Record inserts (order, agent) once; repeats are silently ignored. It reports
// whether a new row was written.
func (r *DeliveryHistoryRepository) Record(tx *gorm.DB, orderID, deliveryUserID uint) (bool, error) {
	row := entity.DeliveryHistory{
		OrderID:        orderID,
		DeliveryUserID: deliveryUserID,
		RecordedAt:     time.Now().UTC(),
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Omit(clause.Associations).Create(&row)
	if res.Error != nil {
		return false, dbErr("repository.RecordDelivery", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *DeliveryHistoryRepository) CountForOrder(ctx context.Context, orderID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.DeliveryHistory{}).Where("order_id = ?", orderID).Count(&n).Error
	return n, dbErr("repository.CountDeliveries", err)
}

type DeliveryHistoryView struct {
	OrderID         uint            `json:"order_id"`
	CustomerName    string          `json:"customer_name"`
	CustomerAddress string          `json:"customer_address"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	OrderedAt       time.Time       `json:"ordered_at"`
	RecordedAt      time.Time       `json:"recorded_at"`
}

// ListForAgent returns the agent's ledger, most recent delivery first.
func (r *DeliveryHistoryRepository) ListForAgent(ctx context.Context, deliveryUserID uint, page, limit int) ([]DeliveryHistoryView, error) {
	offset, size := pageOf(page, limit)
	out := []DeliveryHistoryView{}
	err := r.DB.WithContext(ctx).Table("delivery_history AS h").
		Select("h.order_id, c.full_name AS customer_name, c.address AS customer_address, "+
			"o.total_amount, o.created_at AS ordered_at, h.recorded_at").
		Joins("JOIN orders o ON o.id = h.order_id").
		Joins("LEFT JOIN customers c ON c.id = o.customer_id").
		Where("h.delivery_user_id = ?", deliveryUserID).
		Order("h.recorded_at DESC, h.id DESC").
		Limit(size).Offset(offset).
		Scan(&out).Error
	if err != nil {
		return nil, dbErr("repository.ListDeliveryHistory", err)
	}
	return out, nil
}
