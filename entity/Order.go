package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CustomerID  uint            `gorm:"not null;index" json:"customer_id"`
	Customer    Customer        `json:"-"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	Status      OrderStatus     `gorm:"size:32;not null;index" json:"status"`

	// set only while Out for Delivery or Delivered
	DeliveryUserID *uint         `gorm:"index" json:"delivery_user_id"`
	DeliveryUser   *DeliveryUser `json:"-"`

	// card checkout session that paid for the order; nil for cash orders
	PaymentSessionID *string `gorm:"size:255;uniqueIndex" json:"-"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Items []OrderItem `gorm:"constraint:OnDelete:RESTRICT;" json:"items,omitempty"`
}
