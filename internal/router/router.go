package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/shop-backend/config"
	"github.com/ikkim/shop-backend/internal/app/controller"
	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/ikkim/shop-backend/internal/middleware"
)

type Router struct {
	customerController  *controller.CustomerController
	categoryController  *controller.CategoryController
	shopItemController  *controller.ShopItemController
	orderItemController *controller.OrderItemController
	orderController     *controller.OrderController
	config              *config.Config
}

func NewRouter(
	customerController *controller.CustomerController,
	categoryController *controller.CategoryController,
	shopItemController *controller.ShopItemController,
	orderItemController *controller.OrderItemController,
	orderController *controller.OrderController,
	cfg *config.Config,
) *Router {
	return &Router{
		customerController:  customerController,
		categoryController:  categoryController,
		shopItemController:  shopItemController,
		orderItemController: orderItemController,
		orderController:     orderController,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(recoverPanic))
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to the Online Shop API",
		})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
		})
	})

	customers := router.Group("/customers")
	{
		customers.GET("", r.customerController.ListCustomers)
		customers.POST("", r.customerController.CreateCustomer)
		customers.GET("/:id", r.customerController.GetCustomer)
		customers.PUT("/:id", r.customerController.UpdateCustomer)
		customers.PATCH("/:id", r.customerController.PatchCustomer)
		customers.DELETE("/:id", r.customerController.DeleteCustomer)
	}

	categories := router.Group("/categories")
	{
		categories.GET("", r.categoryController.ListCategories)
		categories.POST("", r.categoryController.CreateCategory)
		categories.GET("/:id", r.categoryController.GetCategory)
		categories.PUT("/:id", r.categoryController.UpdateCategory)
		categories.PATCH("/:id", r.categoryController.PatchCategory)
		categories.DELETE("/:id", r.categoryController.DeleteCategory)
	}

	// /shop_items is kept as an alias of /items
	for _, prefix := range []string{"/items", "/shop_items"} {
		items := router.Group(prefix)
		items.GET("", r.shopItemController.ListShopItems)
		items.POST("", r.shopItemController.CreateShopItem)
		items.GET("/:id", r.shopItemController.GetShopItem)
		items.PUT("/:id", r.shopItemController.UpdateShopItem)
		items.PATCH("/:id", r.shopItemController.PatchShopItem)
		items.DELETE("/:id", r.shopItemController.DeleteShopItem)
	}

	orderItems := router.Group("/order_items")
	{
		orderItems.GET("", r.orderItemController.ListOrderItems)
		orderItems.POST("", r.orderItemController.CreateOrderItem)
		orderItems.GET("/:id", r.orderItemController.GetOrderItem)
		orderItems.PUT("/:id", r.orderItemController.UpdateOrderItem)
		orderItems.DELETE("/:id", r.orderItemController.DeleteOrderItem)
	}

	orders := router.Group("/orders")
	{
		orders.GET("", r.orderController.ListOrders)
		orders.POST("", r.orderController.CreateOrder)
		orders.GET("/:id", r.orderController.GetOrder)
		orders.PUT("/:id", r.orderController.UpdateOrder)
		orders.DELETE("/:id", r.orderController.DeleteOrder)
	}

	return router
}

// recoverPanic answers a panicking handler with a plain 500 body.
func recoverPanic(c *gin.Context, recovered interface{}) {
	middleware.GetLoggerFromContext(c).Error("Recovered from panic", fmt.Errorf("%v", recovered), map[string]interface{}{
		"path": c.Request.URL.Path,
	})
	apperrors.InternalError(c, "")
}

var corsAllowHeaders = strings.Join([]string{
	"Content-Type",
	"Content-Length",
	"Accept-Encoding",
	"Accept",
	"Origin",
	"Cache-Control",
	"X-Requested-With",
	middleware.RequestIDHeader,
}, ", ")

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed && origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Vary", "Origin")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", corsAllowHeaders)
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
