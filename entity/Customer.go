package entity

import (
	"gorm.io/gorm"
)

type Customer struct {
	gorm.Model
	FullName string `gorm:"size:120" json:"full_name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Phone    string `gorm:"size:40" json:"phone"`
	Address  string `json:"address"`

	Orders []Order `json:"-"`
}
