package repository

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderItemRepository interface {
	WithTx(tx *gorm.DB) OrderItemRepository
	Create(ctx context.Context, item *model.OrderItem) error
	CreateBatch(ctx context.Context, items []model.OrderItem) error
	FindByID(ctx context.Context, id uint) (*model.OrderItem, error)
	FindAll(ctx context.Context, page Pagination) ([]model.OrderItem, error)
	Update(ctx context.Context, item *model.OrderItem) error
	Delete(ctx context.Context, id uint) error
	DeleteByOrderID(ctx context.Context, orderID uint) error
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) WithTx(tx *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: tx}
}

func (r *orderItemRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("ShopItem").
		Preload("ShopItem.Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

func (r *orderItemRepository) Create(ctx context.Context, item *model.OrderItem) error {
	logger.Debug("Creating order item in database", map[string]interface{}{
		"order_id":     item.OrderID,
		"shop_item_id": item.ShopItemID,
		"quantity":     item.Quantity,
	})

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		logger.Error("Failed to create order item in database", err, map[string]interface{}{
			"order_id":     item.OrderID,
			"shop_item_id": item.ShopItemID,
		})
		return err
	}

	logger.Debug("Order item created in database", map[string]interface{}{
		"order_item_id": item.ID,
	})
	return nil
}

func (r *orderItemRepository) CreateBatch(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	logger.Debug("Creating order items in database", map[string]interface{}{
		"count": len(items),
	})

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error; err != nil {
		logger.Error("Failed to create order items in database", err, map[string]interface{}{
			"count": len(items),
		})
		return err
	}
	return nil
}

func (r *orderItemRepository) FindByID(ctx context.Context, id uint) (*model.OrderItem, error) {
	var item model.OrderItem
	if err := r.baseQuery(ctx).First(&item, id).Error; err != nil {
		logger.Debug("Order item lookup by ID failed", map[string]interface{}{
			"order_item_id": id,
			"error":         err.Error(),
		})
		return nil, err
	}
	return &item, nil
}

func (r *orderItemRepository) FindAll(ctx context.Context, page Pagination) ([]model.OrderItem, error) {
	page = page.normalized()

	var items []model.OrderItem
	if err := r.baseQuery(ctx).
		Order("id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&items).Error; err != nil {
		logger.Error("Failed to list order items in database", err, map[string]interface{}{
			"offset": page.Offset,
			"limit":  page.Limit,
		})
		return nil, err
	}
	return items, nil
}

func (r *orderItemRepository) Update(ctx context.Context, item *model.OrderItem) error {
	logger.Debug("Updating order item in database", map[string]interface{}{
		"order_item_id": item.ID,
		"order_id":      item.OrderID,
		"shop_item_id":  item.ShopItemID,
		"quantity":      item.Quantity,
	})

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error; err != nil {
		logger.Error("Failed to update order item in database", err, map[string]interface{}{
			"order_item_id": item.ID,
		})
		return err
	}
	return nil
}

func (r *orderItemRepository) Delete(ctx context.Context, id uint) error {
	logger.Debug("Deleting order item from database", map[string]interface{}{
		"order_item_id": id,
	})

	if err := r.db.WithContext(ctx).Delete(&model.OrderItem{}, id).Error; err != nil {
		logger.Error("Failed to delete order item from database", err, map[string]interface{}{
			"order_item_id": id,
		})
		return err
	}
	return nil
}

// DeleteByOrderID removes every line item bound to the order.
func (r *orderItemRepository) DeleteByOrderID(ctx context.Context, orderID uint) error {
	logger.Debug("Deleting order items by order ID", map[string]interface{}{
		"order_id": orderID,
	})

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderItem{}).Error; err != nil {
		logger.Error("Failed to delete order items by order ID", err, map[string]interface{}{
			"order_id": orderID,
		})
		return err
	}
	return nil
}
