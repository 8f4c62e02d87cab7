package service

import "github.com/shopspring/decimal"

// Create inputs carry every field; Update inputs use nil for "leave as is".

type CustomerInput struct {
	Name    string
	Surname string
	Email   string
}

type CustomerUpdate struct {
	Name    *string
	Surname *string
	Email   *string
}

type CategoryInput struct {
	Title       string
	Description string
}

type CategoryUpdate struct {
	Title       *string
	Description *string
}

type ShopItemInput struct {
	Title       string
	Description string
	Price       decimal.Decimal
	CategoryIDs []uint
}

// ShopItemUpdate replaces the whole category set when CategoryIDs is non-nil;
// a non-nil empty slice clears it.
type ShopItemUpdate struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	CategoryIDs *[]uint
}

type OrderLine struct {
	ShopItemID uint
	Quantity   int
}

type OrderInput struct {
	CustomerID uint
	Items      []OrderLine
}

type OrderItemInput struct {
	OrderID    *uint
	ShopItemID uint
	Quantity   int
}
