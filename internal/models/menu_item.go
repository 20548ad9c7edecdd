package models

import "github.com/shopspring/decimal"

// MenuItem is a product on the menu. Category holds the category name.
type MenuItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Category    string          `gorm:"index" json:"category"`
	ImageURL    string          `json:"image_url"`
}

func (MenuItem) TableName() string { return "menu_items" }
