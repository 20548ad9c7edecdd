package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

var OrderStatuses = []OrderStatus{
	StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled,
}

func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "Credit Card"
	PaymentPayPal         PaymentMethod = "PayPal"
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCreditCard, PaymentPayPal, PaymentCashOnDelivery:
		return true
	}
	return false
}

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          string          `gorm:"index;type:varchar(36)" json:"user_id"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	TotalPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_price"`
	Status          OrderStatus     `gorm:"type:varchar(32);index;not null" json:"status"`
	CustomerName    string          `gorm:"not null" json:"customer_name"`
	CustomerAddress string          `gorm:"not null" json:"customer_address"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(32);not null" json:"payment_method"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a copy of a cart line taken when the order was placed.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	OrderID   uint            `gorm:"index;not null" json:"-"`
	ProductID uint            `gorm:"index;not null" json:"id"`
	Name      string          `gorm:"not null" json:"name"`
	Quantity  uint            `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
}

func (OrderItem) TableName() string { return "order_items" }
