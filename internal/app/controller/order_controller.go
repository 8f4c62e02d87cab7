package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/middleware"
)

type OrderController struct {
	orderService service.OrderService
}

func NewOrderController(orderService service.OrderService) *OrderController {
	return &OrderController{
		orderService: orderService,
	}
}

type OrderLineRequest struct {
	ShopItemID uint `json:"shop_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,gt=0"`
}

type OrderRequest struct {
	CustomerID uint               `json:"customer_id" binding:"required"`
	Items      []OrderLineRequest `json:"items" binding:"dive"`
}

func (r OrderRequest) input() service.OrderInput {
	lines := make([]service.OrderLine, 0, len(r.Items))
	for _, item := range r.Items {
		lines = append(lines, service.OrderLine{
			ShopItemID: item.ShopItemID,
			Quantity:   item.Quantity,
		})
	}
	return service.OrderInput{
		CustomerID: r.CustomerID,
		Items:      lines,
	}
}

// ListOrders returns orders with customer and line items
// GET /orders
func (ctrl *OrderController) ListOrders(c *gin.Context) {
	skip, limit, ok := bindPage(c)
	if !ok {
		return
	}

	orders, err := ctrl.orderService.List(c.Request.Context(), skip, limit)
	if err != nil {
		respondServiceError(c, err, "list orders")
		return
	}

	c.JSON(http.StatusOK, newOrderResponses(orders))
}

// GetOrder returns an order by ID
// GET /orders/:id
func (ctrl *OrderController) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	order, err := ctrl.orderService.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "get order")
		return
	}

	c.JSON(http.StatusOK, newOrderResponse(order))
}

// CreateOrder writes the order and all of its lines, or nothing
// POST /orders
func (ctrl *OrderController) CreateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req OrderRequest
	if !bindJSON(c, &req) {
		return
	}

	log.Debug("Creating order", map[string]interface{}{
		"customer_id": req.CustomerID,
		"item_count":  len(req.Items),
	})

	order, err := ctrl.orderService.Create(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err, "create order")
		return
	}

	log.Info("Order created successfully", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
	})
	c.JSON(http.StatusOK, newOrderResponse(order))
}

// UpdateOrder reassigns the customer and replaces every line item
// PUT /orders/:id
func (ctrl *OrderController) UpdateOrder(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	var req OrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := ctrl.orderService.Update(c.Request.Context(), id, req.input())
	if err != nil {
		respondServiceError(c, err, "update order")
		return
	}

	log.Info("Order updated successfully", map[string]interface{}{
		"order_id":   order.ID,
		"item_count": len(order.Items),
	})
	c.JSON(http.StatusOK, newOrderResponse(order))
}

// DeleteOrder removes an order and its line items
// DELETE /orders/:id
func (ctrl *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "id", "order")
	if !ok {
		return
	}

	order, err := ctrl.orderService.Delete(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "delete order")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Order deleted successfully", map[string]interface{}{
		"order_id": id,
	})
	c.JSON(http.StatusOK, newOrderResponse(order))
}
