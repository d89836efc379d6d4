package entity

import (
	"gorm.io/gorm"
)

type Admin struct {
	gorm.Model
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `json:"-"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Role     Role   `gorm:"size:20;not null" json:"role"` // admin | super-admin
}
