package controller

import (
	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/shopspring/decimal"
)

// Response projections. Collections are always encoded as arrays, never null.

type CustomerResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

type CategoryResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ShopItemResponse struct {
	ID          uint               `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	Categories  []CategoryResponse `json:"categories"`
}

type OrderItemResponse struct {
	ID         uint             `json:"id"`
	OrderID    *uint            `json:"order_id"`
	ShopItemID uint             `json:"shop_item_id"`
	Quantity   int              `json:"quantity"`
	ShopItem   ShopItemResponse `json:"shop_item"`
}

type OrderResponse struct {
	ID         uint                `json:"id"`
	CustomerID uint                `json:"customer_id"`
	Customer   CustomerResponse    `json:"customer"`
	Items      []OrderItemResponse `json:"items"`
}

func newCustomerResponse(c *model.Customer) CustomerResponse {
	return CustomerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Surname: c.Surname,
		Email:   c.Email,
	}
}

func newCustomerResponses(customers []model.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, newCustomerResponse(&customers[i]))
	}
	return out
}

func newCategoryResponse(c *model.ShopItemCategory) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
	}
}

func newCategoryResponses(categories []model.ShopItemCategory) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		out = append(out, newCategoryResponse(&categories[i]))
	}
	return out
}

func newShopItemResponse(item *model.ShopItem) ShopItemResponse {
	return ShopItemResponse{
		ID:          item.ID,
		Title:       item.Title,
		Description: item.Description,
		Price:       item.Price,
		Categories:  newCategoryResponses(item.Categories),
	}
}

func newShopItemResponses(items []model.ShopItem) []ShopItemResponse {
	out := make([]ShopItemResponse, 0, len(items))
	for i := range items {
		out = append(out, newShopItemResponse(&items[i]))
	}
	return out
}

func newOrderItemResponse(item *model.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:         item.ID,
		OrderID:    item.OrderID,
		ShopItemID: item.ShopItemID,
		Quantity:   item.Quantity,
		ShopItem:   newShopItemResponse(&item.ShopItem),
	}
}

func newOrderItemResponses(items []model.OrderItem) []OrderItemResponse {
	out := make([]OrderItemResponse, 0, len(items))
	for i := range items {
		out = append(out, newOrderItemResponse(&items[i]))
	}
	return out
}

func newOrderResponse(order *model.Order) OrderResponse {
	return OrderResponse{
		ID:         order.ID,
		CustomerID: order.CustomerID,
		Customer:   newCustomerResponse(&order.Customer),
		Items:      newOrderItemResponses(order.Items),
	}
}

func newOrderResponses(orders []model.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, newOrderResponse(&orders[i]))
	}
	return out
}
