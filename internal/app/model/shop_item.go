package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShopItemCategoryJoinTable is the relation-only table behind ShopItem.Categories.
const ShopItemCategoryJoinTable = "shop_item_category_links"

func init() {
	// prices are rendered as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

type ShopItem struct {
	ID          uint            `gorm:"primarykey" json:"id"`
	Title       string          `gorm:"not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relationships
	Categories []ShopItemCategory `gorm:"many2many:shop_item_category_links;" json:"categories"`
}

func (ShopItem) TableName() string {
	return "shop_items"
}
