package repository

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShopItemRepository interface {
	WithTx(tx *gorm.DB) ShopItemRepository
	Create(ctx context.Context, item *model.ShopItem) error
	FindByID(ctx context.Context, id uint) (*model.ShopItem, error)
	FindAll(ctx context.Context, page Pagination) ([]model.ShopItem, error)
	Update(ctx context.Context, item *model.ShopItem) error
	Delete(ctx context.Context, id uint) error
	CountOrderItems(ctx context.Context, id uint) (int64, error)
}

type shopItemRepository struct {
	db *gorm.DB
}

func NewShopItemRepository(db *gorm.DB) ShopItemRepository {
	return &shopItemRepository{db: db}
}

func (r *shopItemRepository) WithTx(tx *gorm.DB) ShopItemRepository {
	return &shopItemRepository{db: tx}
}

func (r *shopItemRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.ShopItem{}).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

// Create inserts the item and links it to item.Categories, which must
// already exist; the categories themselves are never written.
func (r *shopItemRepository) Create(ctx context.Context, item *model.ShopItem) error {
	logger.Debug("Creating shop item in database", map[string]interface{}{
		"title":          item.Title,
		"price":          item.Price.String(),
		"category_count": len(item.Categories),
	})

	if err := r.db.WithContext(ctx).Omit("Categories.*").Create(item).Error; err != nil {
		logger.Error("Failed to create shop item in database", err, map[string]interface{}{
			"title": item.Title,
		})
		return err
	}

	logger.Debug("Shop item created in database", map[string]interface{}{
		"shop_item_id": item.ID,
		"title":        item.Title,
	})
	return nil
}

func (r *shopItemRepository) FindByID(ctx context.Context, id uint) (*model.ShopItem, error) {
	logger.Debug("Finding shop item by ID in database", map[string]interface{}{
		"shop_item_id": id,
	})

	var item model.ShopItem
	if err := r.baseQuery(ctx).First(&item, id).Error; err != nil {
		logger.Debug("Shop item lookup by ID failed", map[string]interface{}{
			"shop_item_id": id,
			"error":        err.Error(),
		})
		return nil, err
	}
	return &item, nil
}

func (r *shopItemRepository) FindAll(ctx context.Context, page Pagination) ([]model.ShopItem, error) {
	page = page.normalized()

	var items []model.ShopItem
	if err := r.baseQuery(ctx).
		Order("id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&items).Error; err != nil {
		logger.Error("Failed to list shop items in database", err, map[string]interface{}{
			"offset": page.Offset,
			"limit":  page.Limit,
		})
		return nil, err
	}

	logger.Debug("Shop items listed from database", map[string]interface{}{
		"count": len(items),
	})
	return items, nil
}

// Update writes the scalar columns and makes item.Categories the complete
// category set: links not in the slice are removed, an empty slice clears all.
func (r *shopItemRepository) Update(ctx context.Context, item *model.ShopItem) error {
	logger.Debug("Updating shop item in database", map[string]interface{}{
		"shop_item_id":   item.ID,
		"title":          item.Title,
		"category_count": len(item.Categories),
	})

	categories := append([]model.ShopItemCategory(nil), item.Categories...)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(item).Error; err != nil {
			return err
		}

		association := tx.Model(item).Association("Categories")
		if len(categories) == 0 {
			return association.Clear()
		}
		return association.Replace(categories)
	})
	if err != nil {
		logger.Error("Failed to update shop item in database", err, map[string]interface{}{
			"shop_item_id": item.ID,
		})
		return err
	}

	item.Categories = categories
	return nil
}

// Delete removes the item's category links and then the item.
func (r *shopItemRepository) Delete(ctx context.Context, id uint) error {
	logger.Debug("Deleting shop item from database", map[string]interface{}{
		"shop_item_id": id,
	})

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM "+model.ShopItemCategoryJoinTable+" WHERE shop_item_id = ?", id,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ShopItem{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete shop item from database", err, map[string]interface{}{
			"shop_item_id": id,
		})
		return err
	}
	return nil
}

// CountOrderItems counts order items that reference the shop item.
func (r *shopItemRepository) CountOrderItems(ctx context.Context, id uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Where("shop_item_id = ?", id).
		Count(&count).Error; err != nil {
		logger.Error("Failed to count order items for shop item", err, map[string]interface{}{
			"shop_item_id": id,
		})
		return 0, err
	}
	return count, nil
}
