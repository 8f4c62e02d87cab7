package db

import (
	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

// Migrate creates or updates the shop tables and the category join table.
func Migrate(conn *gorm.DB) error {
	logger.Info("Running database migrations...")

	models := model.All()
	if err := conn.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}
