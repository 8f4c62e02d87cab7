package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/service"
)

type OrderItemController struct {
	orderItemService service.OrderItemService
}

func NewOrderItemController(orderItemService service.OrderItemService) *OrderItemController {
	return &OrderItemController{
		orderItemService: orderItemService,
	}
}

type OrderItemRequest struct {
	OrderID    *uint `json:"order_id" binding:"omitnil,gt=0"`
	ShopItemID uint  `json:"shop_item_id" binding:"required"`
	Quantity   int   `json:"quantity" binding:"required,gt=0"`
}

func (r OrderItemRequest) input() service.OrderItemInput {
	return service.OrderItemInput{
		OrderID:    r.OrderID,
		ShopItemID: r.ShopItemID,
		Quantity:   r.Quantity,
	}
}

// GET /order_items
func (ctrl *OrderItemController) ListOrderItems(c *gin.Context) {
	skip, limit, ok := bindPage(c)
	if !ok {
		return
	}

	items, err := ctrl.orderItemService.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondServiceError(c, err, "list order items")
		return
	}

	c.JSON(http.StatusOK, newOrderItemResponses(items))
}

// GET /order_items/:id
func (ctrl *OrderItemController) GetOrderItem(c *gin.Context) {
	id, ok := parseID(c, "id", "order item")
	if !ok {
		return
	}

	item, err := ctrl.orderItemService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get order item")
		return
	}

	c.JSON(http.StatusOK, newOrderItemResponse(item))
}

// POST /order_items
func (ctrl *OrderItemController) CreateOrderItem(c *gin.Context) {
	var req OrderItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.orderItemService.Create(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "create order item")
		return
	}

	c.JSON(http.StatusOK, newOrderItemResponse(item))
}

// PUT /order_items/:id
func (ctrl *OrderItemController) UpdateOrderItem(c *gin.Context) {
	id, ok := parseID(c, "id", "order item")
	if !ok {
		return
	}

	var req OrderItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := ctrl.orderItemService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondServiceError(c, err, "update order item")
		return
	}

	c.JSON(http.StatusOK, newOrderItemResponse(item))
}

// DELETE /order_items/:id
func (ctrl *OrderItemController) DeleteOrderItem(c *gin.Context) {
	id, ok := parseID(c, "id", "order item")
	if !ok {
		return
	}

	item, err := ctrl.orderItemService.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "delete order item")
		return
	}

	c.JSON(http.StatusOK, newOrderItemResponse(item))
}
