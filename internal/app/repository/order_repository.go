package repository

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository interface {
	WithTx(tx *gorm.DB) OrderRepository
	Create(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id uint) (*model.Order, error)
	FindAll(ctx context.Context, page Pagination) ([]model.Order, error)
	Exists(ctx context.Context, id uint) (bool, error)
	UpdateCustomer(ctx context.Context, id uint, customerID uint) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
	CountByCustomerID(ctx context.Context, customerID uint) (int64, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithTx(tx *gorm.DB) OrderRepository {
	return &orderRepository{db: tx}
}

// preloadOrder loads the customer and every line item with its shop item
// and that item's categories.
func (r *orderRepository) preloadOrder(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.ShopItem").
		Preload("Items.ShopItem.Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

// Create inserts the order row only. Line items are written separately
// through OrderItemRepository once the order id is known.
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	logger.Debug("Creating order in database", map[string]interface{}{
		"customer_id": order.CustomerID,
	})

	if err := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"customer_id": order.CustomerID,
		})
		return err
	}

	logger.Debug("Order created in database", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
	})
	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	logger.Debug("Finding order by ID in database", map[string]interface{}{
		"order_id": id,
	})

	var order model.Order
	if err := r.preloadOrder(ctx).First(&order, id).Error; err != nil {
		logger.Debug("Order lookup by ID failed", map[string]interface{}{
			"order_id": id,
			"error":    err.Error(),
		})
		return nil, err
	}

	logger.Debug("Order found by ID in database", map[string]interface{}{
		"order_id":    order.ID,
		"customer_id": order.CustomerID,
		"item_count":  len(order.Items),
	})
	return &order, nil
}

func (r *orderRepository) FindAll(ctx context.Context, page Pagination) ([]model.Order, error) {
	page = page.normalized()

	var orders []model.Order
	if err := r.preloadOrder(ctx).
		Order("id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&orders).Error; err != nil {
		logger.Error("Failed to list orders in database", err, map[string]interface{}{
			"offset": page.Offset,
			"limit":  page.Limit,
		})
		return nil, err
	}

	logger.Debug("Orders listed from database", map[string]interface{}{
		"count": len(orders),
	})
	return orders, nil
}

func (r *orderRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *orderRepository) UpdateCustomer(ctx context.Context, id uint, customerID uint) error {
	logger.Debug("Updating order customer in database", map[string]interface{}{
		"order_id":    id,
		"customer_id": customerID,
	})

	if err := r.db.WithContext(ctx).
		Model(&model.Order{ID: id}).
		Omit(clause.Associations).
		Update("customer_id", customerID).Error; err != nil {
		logger.Error("Failed to update order customer in database", err, map[string]interface{}{
			"order_id":    id,
			"customer_id": customerID,
		})
		return err
	}
	return nil
}

// Delete removes the order's line items before the order itself, inside
// one transaction.
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	logger.Debug("Deleting order from database", map[string]interface{}{
		"order_id": id,
	})

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Order{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete order from database", err, map[string]interface{}{
			"order_id": id,
		})
		return err
	}
	return nil
}

func (r *orderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *orderRepository) CountByCustomerID(ctx context.Context, customerID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count orders by customer ID", err, map[string]interface{}{
			"customer_id": customerID,
		})
		return 0, err
	}
	return count, nil
}
