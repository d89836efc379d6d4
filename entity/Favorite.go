package entity

type Favorite struct {
	CustomerID uint     `gorm:"primaryKey;autoIncrement:false" json:"customer_id"`
	Customer   Customer `json:"-"`
	MenuID     uint     `gorm:"primaryKey;autoIncrement:false" json:"menu_id"`
	Menu       Menu     `json:"-"`
}
