package repository

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	WithTx(tx *gorm.DB) CategoryRepository
	Create(ctx context.Context, category *model.ShopItemCategory) error
	FindByID(ctx context.Context, id uint) (*model.ShopItemCategory, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.ShopItemCategory, error)
	FindByTitle(ctx context.Context, title string) (*model.ShopItemCategory, error)
	FindAll(ctx context.Context, page Pagination) ([]model.ShopItemCategory, error)
	Update(ctx context.Context, category *model.ShopItemCategory) error
	Delete(ctx context.Context, id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	return &categoryRepository{db: tx}
}

func (r *categoryRepository) Create(ctx context.Context, category *model.ShopItemCategory) error {
	logger.Debug("Creating category in database", map[string]interface{}{
		"title": category.Title,
	})

	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		logger.Error("Failed to create category in database", err, map[string]interface{}{
			"title": category.Title,
		})
		return err
	}

	logger.Debug("Category created in database", map[string]interface{}{
		"category_id": category.ID,
		"title":       category.Title,
	})
	return nil
}

func (r *categoryRepository) FindByID(ctx context.Context, id uint) (*model.ShopItemCategory, error) {
	var category model.ShopItemCategory
	if err := r.db.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByIDs returns the categories that exist among ids, in id order.
// Missing ids are simply absent from the result.
func (r *categoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.ShopItemCategory, error) {
	categories := []model.ShopItemCategory{}
	if len(ids) == 0 {
		return categories, nil
	}

	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&categories).Error; err != nil {
		logger.Error("Failed to find categories by IDs in database", err, map[string]interface{}{
			"category_ids": ids,
		})
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) FindByTitle(ctx context.Context, title string) (*model.ShopItemCategory, error) {
	var category model.ShopItemCategory
	if err := r.db.WithContext(ctx).Where("title = ?", title).Order("id ASC").First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context, page Pagination) ([]model.ShopItemCategory, error) {
	page = page.normalized()

	var categories []model.ShopItemCategory
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&categories).Error; err != nil {
		logger.Error("Failed to list categories in database", err, map[string]interface{}{
			"offset": page.Offset,
			"limit":  page.Limit,
		})
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *model.ShopItemCategory) error {
	logger.Debug("Updating category in database", map[string]interface{}{
		"category_id": category.ID,
		"title":       category.Title,
	})

	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		logger.Error("Failed to update category in database", err, map[string]interface{}{
			"category_id": category.ID,
		})
		return err
	}
	return nil
}

// Delete unlinks the category from every shop item, then removes it.
func (r *categoryRepository) Delete(ctx context.Context, id uint) error {
	logger.Debug("Deleting category from database", map[string]interface{}{
		"category_id": id,
	})

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM "+model.ShopItemCategoryJoinTable+" WHERE shop_item_category_id = ?", id,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&model.ShopItemCategory{}, id).Error
	})
	if err != nil {
		logger.Error("Failed to delete category from database", err, map[string]interface{}{
			"category_id": id,
		})
		return err
	}
	return nil
}
