package models

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "CONFIRMED" // confirmed by seller
	OrderStatusShipped   OrderStatus = "SHIPPED"   // out for delivery
	OrderStatusDelivered OrderStatus = "DELIVERED" // customer received the item
)

type Order struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	UserID    string      `gorm:"index;not null" json:"user_id"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total     float64     `json:"total"`
	Status    OrderStatus `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
}

// OrderItem freezes the product fields that matter for the order record,
// same shape the cart snapshots carry.
type OrderItem struct {
	ID              uint    `gorm:"primaryKey" json:"-"`
	OrderID         string  `gorm:"index" json:"-"`
	ProductID       string  `json:"product_id"`
	ProductName     string  `json:"product_name"`
	ProductImage    string  `json:"product_image"`
	ProductPrice    float64 `json:"product_price"`
	ProductSellerID string  `json:"product_seller_id"`
	Quantity        int     `json:"quantity"`
}
