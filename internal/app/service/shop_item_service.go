package service

import (
	"context"
	"errors"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// pricePlaces matches the decimal(10,2) column.
const pricePlaces = 2

type ShopItemService interface {
	List(ctx context.Context, skip, limit int) ([]model.ShopItem, error)
	Get(ctx context.Context, id uint) (*model.ShopItem, error)
	Create(ctx context.Context, input ShopItemInput) (*model.ShopItem, error)
	Update(ctx context.Context, id uint, update ShopItemUpdate) (*model.ShopItem, error)
	Delete(ctx context.Context, id uint) (*model.ShopItem, error)
}

type shopItemService struct {
	db           *gorm.DB
	itemRepo     repository.ShopItemRepository
	categoryRepo repository.CategoryRepository
}

func NewShopItemService(db *gorm.DB, itemRepo repository.ShopItemRepository, categoryRepo repository.CategoryRepository) ShopItemService {
	return &shopItemService{
		db:           db,
		itemRepo:     itemRepo,
		categoryRepo: categoryRepo,
	}
}

func (s *shopItemService) List(ctx context.Context, skip, limit int) ([]model.ShopItem, error) {
	items, err := s.itemRepo.FindAll(ctx, pageOf(skip, limit))
	if err != nil {
		logger.Error("Failed to list shop items", err)
		return nil, err
	}
	return items, nil
}

func (s *shopItemService) Get(ctx context.Context, id uint) (*model.ShopItem, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Shop item not found", map[string]interface{}{
				"shop_item_id": id,
			})
		}
		return nil, notFoundAs(err, ErrShopItemNotFound)
	}
	return item, nil
}

func normalizePrice(price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsNegative() {
		return decimal.Decimal{}, ErrInvalidPrice
	}
	return price.Round(pricePlaces), nil
}

// resolveCategories loads every category in ids, collapsing duplicates.
// The first id without a row fails the whole call.
func resolveCategories(ctx context.Context, categoryRepo repository.CategoryRepository, ids []uint) ([]model.ShopItemCategory, error) {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	categories, err := categoryRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(categories) == len(unique) {
		return categories, nil
	}

	found := make(map[uint]struct{}, len(categories))
	for _, category := range categories {
		found[category.ID] = struct{}{}
	}
	for _, id := range unique {
		if _, ok := found[id]; !ok {
			logger.Warn("Category referenced by shop item not found", map[string]interface{}{
				"category_id": id,
			})
			return nil, missingReference(ErrCategoryNotFound, id)
		}
	}
	return categories, nil
}

func (s *shopItemService) Create(ctx context.Context, input ShopItemInput) (*model.ShopItem, error) {
	price, err := normalizePrice(input.Price)
	if err != nil {
		return nil, err
	}

	item := &model.ShopItem{
		Title:       input.Title,
		Description: input.Description,
		Price:       price,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories, err := resolveCategories(ctx, s.categoryRepo.WithTx(tx), input.CategoryIDs)
		if err != nil {
			return err
		}
		item.Categories = categories
		return s.itemRepo.WithTx(tx).Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Shop item created", map[string]interface{}{
		"shop_item_id":   item.ID,
		"title":          item.Title,
		"category_count": len(item.Categories),
	})
	return s.Get(ctx, item.ID)
}

func (s *shopItemService) Update(ctx context.Context, id uint, update ShopItemUpdate) (*model.ShopItem, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		itemRepo := s.itemRepo.WithTx(tx)

		item, err := itemRepo.FindByID(ctx, id)
		if err != nil {
			return notFoundAs(err, ErrShopItemNotFound)
		}

		if update.Title != nil {
			item.Title = *update.Title
		}
		if update.Description != nil {
			item.Description = *update.Description
		}
		if update.Price != nil {
			price, err := normalizePrice(*update.Price)
			if err != nil {
				return err
			}
			item.Price = price
		}
		if update.CategoryIDs != nil {
			categories, err := resolveCategories(ctx, s.categoryRepo.WithTx(tx), *update.CategoryIDs)
			if err != nil {
				return err
			}
			item.Categories = categories
		}

		return itemRepo.Update(ctx, item)
	})
	if err != nil {
		if errors.Is(err, ErrShopItemNotFound) {
			logger.Warn("Shop item not found", map[string]interface{}{
				"shop_item_id": id,
			})
		}
		return nil, err
	}

	logger.Info("Shop item updated", map[string]interface{}{
		"shop_item_id": id,
	})
	return s.Get(ctx, id)
}

// Delete refuses to remove an item that order lines still point at.
func (s *shopItemService) Delete(ctx context.Context, id uint) (*model.ShopItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	lines, err := s.itemRepo.CountOrderItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if lines > 0 {
		logger.Warn("Shop item still referenced by order items", map[string]interface{}{
			"shop_item_id": id,
			"order_items":  lines,
		})
		return nil, ErrShopItemInUse
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	logger.Info("Shop item deleted", map[string]interface{}{
		"shop_item_id": id,
	})
	return item, nil
}
