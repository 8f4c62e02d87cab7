package service

import (
	"context"
	"errors"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

// OrderItemService manages line items directly, outside of order composition.
type OrderItemService interface {
	List(ctx context.Context, skip, limit int) ([]model.OrderItem, error)
	Get(ctx context.Context, id uint) (*model.OrderItem, error)
	Create(ctx context.Context, input OrderItemInput) (*model.OrderItem, error)
	Update(ctx context.Context, id uint, input OrderItemInput) (*model.OrderItem, error)
	Delete(ctx context.Context, id uint) (*model.OrderItem, error)
}

type orderItemService struct {
	orderItemRepo repository.OrderItemRepository
	itemRepo      repository.ShopItemRepository
	orderRepo     repository.OrderRepository
}

func NewOrderItemService(
	orderItemRepo repository.OrderItemRepository,
	itemRepo repository.ShopItemRepository,
	orderRepo repository.OrderRepository,
) OrderItemService {
	return &orderItemService{
		orderItemRepo: orderItemRepo,
		itemRepo:      itemRepo,
		orderRepo:     orderRepo,
	}
}

func (s *orderItemService) List(ctx context.Context, skip, limit int) ([]model.OrderItem, error) {
	items, err := s.orderItemRepo.FindAll(ctx, pageOf(skip, limit))
	if err != nil {
		logger.Error("Failed to list order items", err)
		return nil, err
	}
	return items, nil
}

func (s *orderItemService) Get(ctx context.Context, id uint) (*model.OrderItem, error) {
	item, err := s.orderItemRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order item not found", map[string]interface{}{
				"order_item_id": id,
			})
		}
		return nil, notFoundAs(err, ErrOrderItemNotFound)
	}
	return item, nil
}

func (s *orderItemService) validate(ctx context.Context, input OrderItemInput) error {
	if input.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	if _, err := s.itemRepo.FindByID(ctx, input.ShopItemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return missingReference(ErrShopItemNotFound, input.ShopItemID)
		}
		return err
	}

	if input.OrderID != nil {
		exists, err := s.orderRepo.Exists(ctx, *input.OrderID)
		if err != nil {
			return err
		}
		if !exists {
			return missingReference(ErrOrderNotFound, *input.OrderID)
		}
	}
	return nil
}

func (s *orderItemService) Create(ctx context.Context, input OrderItemInput) (*model.OrderItem, error) {
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	item := &model.OrderItem{
		OrderID:    input.OrderID,
		ShopItemID: input.ShopItemID,
		Quantity:   input.Quantity,
	}
	if err := s.orderItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	logger.Info("Order item created", map[string]interface{}{
		"order_item_id": item.ID,
		"shop_item_id":  item.ShopItemID,
	})
	return s.Get(ctx, item.ID)
}

func (s *orderItemService) Update(ctx context.Context, id uint, input OrderItemInput) (*model.OrderItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	item.OrderID = input.OrderID
	item.ShopItemID = input.ShopItemID
	item.Quantity = input.Quantity
	if err := s.orderItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	logger.Info("Order item updated", map[string]interface{}{
		"order_item_id": id,
	})
	return s.Get(ctx, id)
}

func (s *orderItemService) Delete(ctx context.Context, id uint) (*model.OrderItem, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.orderItemRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	logger.Info("Order item deleted", map[string]interface{}{
		"order_item_id": id,
	})
	return item, nil
}
