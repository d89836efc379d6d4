package entity

import "github.com/shopspring/decimal"

// OrderItem is written once with its order and never updated. Price is the unit
// price at order time.
type OrderItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	OrderID  uint            `gorm:"not null;index" json:"order_id"`
	MenuID   uint            `gorm:"not null;index" json:"menu_id"`
	Menu     Menu            `json:"-"`
	Quantity int             `gorm:"not null;check:quantity > 0" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}
