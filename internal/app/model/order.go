package model

import "time"

type Order struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CustomerID uint      `gorm:"not null;index" json:"customer_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Customer Customer    `gorm:"foreignKey:CustomerID" json:"customer"`
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. OrderID stays nil for line items created
// on their own until they are assigned to an order.
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OrderID    *uint     `gorm:"index" json:"order_id"`
	ShopItemID uint      `gorm:"not null;index" json:"shop_item_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	ShopItem ShopItem `gorm:"foreignKey:ShopItemID" json:"shop_item"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
