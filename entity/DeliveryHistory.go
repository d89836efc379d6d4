package entity

import "time"

// DeliveryHistory is the append-only ledger of completed deliveries.
type DeliveryHistory struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	OrderID        uint         `gorm:"not null;uniqueIndex:idx_delivery_history_order_agent" json:"order_id"`
	Order          Order        `json:"-"`
	DeliveryUserID uint         `gorm:"not null;uniqueIndex:idx_delivery_history_order_agent;index" json:"delivery_user_id"`
	DeliveryUser   DeliveryUser `json:"-"`
	RecordedAt     time.Time    `gorm:"not null" json:"recorded_at"`
}

func (DeliveryHistory) TableName() string { return "delivery_history" }
