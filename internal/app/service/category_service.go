package service

import (
	"context"
	"errors"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CategoryService interface {
	List(ctx context.Context, skip, limit int) ([]model.ShopItemCategory, error)
	Get(ctx context.Context, id uint) (*model.ShopItemCategory, error)
	FindByTitle(ctx context.Context, title string) (*model.ShopItemCategory, error)
	Create(ctx context.Context, input CategoryInput) (*model.ShopItemCategory, error)
	Update(ctx context.Context, id uint, update CategoryUpdate) (*model.ShopItemCategory, error)
	Delete(ctx context.Context, id uint) (*model.ShopItemCategory, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) List(ctx context.Context, skip, limit int) ([]model.ShopItemCategory, error) {
	categories, err := s.categoryRepo.FindAll(ctx, pageOf(skip, limit))
	if err != nil {
		logger.Error("Failed to list categories", err)
		return nil, err
	}
	return categories, nil
}

func (s *categoryService) Get(ctx context.Context, id uint) (*model.ShopItemCategory, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Category not found", map[string]interface{}{
				"category_id": id,
			})
		}
		return nil, notFoundAs(err, ErrCategoryNotFound)
	}
	return category, nil
}

// FindByTitle returns the oldest category with the exact title.
func (s *categoryService) FindByTitle(ctx context.Context, title string) (*model.ShopItemCategory, error) {
	category, err := s.categoryRepo.FindByTitle(ctx, title)
	if err != nil {
		return nil, notFoundAs(err, ErrCategoryNotFound)
	}
	return category, nil
}

func (s *categoryService) Create(ctx context.Context, input CategoryInput) (*model.ShopItemCategory, error) {
	category := &model.ShopItemCategory{
		Title:       input.Title,
		Description: input.Description,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	logger.Info("Category created", map[string]interface{}{
		"category_id": category.ID,
		"title":       category.Title,
	})
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, id uint, update CategoryUpdate) (*model.ShopItemCategory, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		category.Title = *update.Title
	}
	if update.Description != nil {
		category.Description = *update.Description
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	logger.Info("Category updated", map[string]interface{}{
		"category_id": category.ID,
	})
	return category, nil
}

// Delete also unlinks the category from every shop item.
func (s *categoryService) Delete(ctx context.Context, id uint) (*model.ShopItemCategory, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	logger.Info("Category deleted", map[string]interface{}{
		"category_id": id,
	})
	return category, nil
}
