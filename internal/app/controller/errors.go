package controller

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/internal/app/service"
	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/ikkim/shop-backend/internal/middleware"
)

type errorMapping struct {
	sentinel error
	respond  func(c *gin.Context, code, message string)
	code     string
	message  string
	// label names a referenced row in "<label> <id> not found"
	label string
}

var serviceErrors = []errorMapping{
	{service.ErrCustomerNotFound, apperrors.NotFound, apperrors.CustomerNotFound, "Customer not found", "Customer"},
	{service.ErrCategoryNotFound, apperrors.NotFound, apperrors.CategoryNotFound, "Category not found", "Category"},
	{service.ErrShopItemNotFound, apperrors.NotFound, apperrors.ShopItemNotFound, "Shop item not found", "Shop item"},
	{service.ErrOrderItemNotFound, apperrors.NotFound, apperrors.OrderItemNotFound, "Order item not found", "Order item"},
	{service.ErrOrderNotFound, apperrors.NotFound, apperrors.OrderNotFound, "Order not found", "Order"},
	{service.ErrEmailAlreadyExists, apperrors.BadRequest, apperrors.CustomerEmailExists, "Email already registered", ""},
	{service.ErrShopItemInUse, apperrors.Conflict, apperrors.ShopItemInUse, "Shop item is still part of an order", ""},
	{service.ErrCustomerHasOrders, apperrors.Conflict, apperrors.CustomerHasOrders, "Customer still has orders", ""},
	{service.ErrInvalidPrice, apperrors.BadRequest, apperrors.ValidationInvalidRange, "Price must not be negative", ""},
	{service.ErrInvalidQuantity, apperrors.BadRequest, apperrors.ValidationInvalidRange, "Quantity must be greater than 0", ""},
}

// respondServiceError maps a service error to its HTTP status and body.
// action names the failed operation for logs and fallback messages.
func respondServiceError(c *gin.Context, err error, action string) {
	log := middleware.GetLoggerFromContext(c)

	var refErr *service.ReferenceError
	isRef := errors.As(err, &refErr)

	for _, m := range serviceErrors {
		if !errors.Is(err, m.sentinel) {
			continue
		}
		message := m.message
		if isRef && m.label != "" {
			message = fmt.Sprintf("%s %d not found", m.label, refErr.ID)
		}
		log.Warn("Request rejected", map[string]interface{}{
			"action": action,
			"code":   m.code,
			"reason": err.Error(),
		})
		m.respond(c, m.code, message)
		return
	}

	log.Error("Failed to "+action, err, nil)
	apperrors.RespondWithParsedError(c, err, action)
}
