package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodCOD       PaymentMethod = "COD"
	PaymentMethodUPI       PaymentMethod = "UPI"
	PaymentMethodGooglePay PaymentMethod = "GOOGLEPAY"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// ShippingAddressは注文時点のJSONスナップショットで保持（後から変更されない）
type Order struct {
	ID              int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber     string        `gorm:"type:varchar(50);not null;uniqueIndex" json:"order_number"`
	UserID          int64         `gorm:"not null;index" json:"user_id"`
	Subtotal        int64         `gorm:"not null" json:"subtotal"`
	ShippingCost    int64         `gorm:"not null" json:"shipping_cost"`
	Tax             int64         `gorm:"not null" json:"tax"`
	Total           int64         `gorm:"not null" json:"total"`
	Status          OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod   PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus   PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`
	PaymentID       string        `gorm:"type:varchar(255)" json:"-"`
	ShippingAddress string        `gorm:"type:text;not null" json:"shipping_address"`
	CreatedAt       time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusCompleted:
		return true
	}
	return false
}
