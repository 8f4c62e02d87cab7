package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikkim/shop-backend/config"
	"github.com/ikkim/shop-backend/internal/app/controller"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/internal/app/service"
	"github.com/ikkim/shop-backend/internal/db"
	"github.com/ikkim/shop-backend/internal/router"
	"github.com/ikkim/shop-backend/internal/seed"
	"github.com/ikkim/shop-backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logger.Initialize(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format == "console",
	})

	logger.Info("Starting Online Shop API", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   cfg.Log.Level,
		"db_driver":   cfg.Database.Driver,
	})

	// Initialize database
	conn, err := db.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(conn); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(conn); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(conn)
	categoryRepo := repository.NewCategoryRepository(conn)
	shopItemRepo := repository.NewShopItemRepository(conn)
	orderItemRepo := repository.NewOrderItemRepository(conn)
	orderRepo := repository.NewOrderRepository(conn)

	// Initialize services
	customerService := service.NewCustomerService(customerRepo, orderRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	shopItemService := service.NewShopItemService(conn, shopItemRepo, categoryRepo)
	orderItemService := service.NewOrderItemService(orderItemRepo, shopItemRepo, orderRepo)
	orderService := service.NewOrderService(conn, orderRepo, orderItemRepo, customerRepo, shopItemRepo)

	// Seed database (optional)
	if cfg.Seed.DemoData {
		if _, err := seed.Demo(context.Background(), seed.Services{
			Customers:  customerService,
			Categories: categoryService,
			Items:      shopItemService,
			Orders:     orderService,
		}); err != nil {
			logger.Warn("Failed to seed database", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	// Initialize controllers
	customerController := controller.NewCustomerController(customerService)
	categoryController := controller.NewCategoryController(categoryService)
	shopItemController := controller.NewShopItemController(shopItemService)
	orderItemController := controller.NewOrderItemController(orderItemService)
	orderController := controller.NewOrderController(orderService)

	// Setup router
	r := router.NewRouter(
		customerController,
		categoryController,
		shopItemController,
		orderItemController,
		orderController,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...", map[string]interface{}{
		"timeout": cfg.Server.ShutdownTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
		return
	}

	logger.Info("Server stopped successfully")
}
