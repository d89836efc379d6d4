package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Menu rows are maintained by the catalog admin screens; this service only reads them.
type Menu struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:120;not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    string          `gorm:"size:60;index" json:"category"`
	ImageURL    string          `json:"image_url"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

func (Menu) TableName() string { return "menu" }
