package entity

import (
	"gorm.io/gorm"
)

// DeliveryUser is a delivery agent. Soft-deleted so ledger rows keep their reference.
type DeliveryUser struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `json:"-"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Vehicle  string `json:"vehicle"`
	Area     string `json:"area"`
	Status   string `gorm:"size:20;not null;default:active" json:"status"`
}
