package model

import "time"

// ShopItemCategory groups shop items; linked to them through
// shop_item_category_links.
type ShopItemCategory struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ShopItemCategory) TableName() string {
	return "shop_item_categories"
}
