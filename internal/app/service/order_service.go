package service

import (
	"context"
	"errors"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderService interface {
	List(ctx context.Context, skip, limit int) ([]model.Order, error)
	Get(ctx context.Context, id uint) (*model.Order, error)
	Create(ctx context.Context, input OrderInput) (*model.Order, error)
	Update(ctx context.Context, id uint, input OrderInput) (*model.Order, error)
	Delete(ctx context.Context, id uint) (*model.Order, error)
}

type orderService struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	customerRepo  repository.CustomerRepository
	itemRepo      repository.ShopItemRepository
}

func NewOrderService(
	db *gorm.DB,
	orderRepo repository.OrderRepository,
	orderItemRepo repository.OrderItemRepository,
	customerRepo repository.CustomerRepository,
	itemRepo repository.ShopItemRepository,
) OrderService {
	return &orderService{
		db:            db,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		customerRepo:  customerRepo,
		itemRepo:      itemRepo,
	}
}

func (s *orderService) List(ctx context.Context, skip, limit int) ([]model.Order, error) {
	orders, err := s.orderRepo.FindAll(ctx, pageOf(skip, limit))
	if err != nil {
		logger.Error("Failed to list orders", err)
		return nil, err
	}
	return orders, nil
}

func (s *orderService) Get(ctx context.Context, id uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Order not found", map[string]interface{}{
				"order_id": id,
			})
		}
		return nil, notFoundAs(err, ErrOrderNotFound)
	}
	return order, nil
}

// checkReferences verifies the customer and then every line's shop item,
// in input order, using repositories bound to tx.
func (s *orderService) checkReferences(ctx context.Context, tx *gorm.DB, input OrderInput) error {
	if _, err := s.customerRepo.WithTx(tx).FindByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Customer referenced by order not found", map[string]interface{}{
				"customer_id": input.CustomerID,
			})
		}
		return notFoundAs(err, ErrCustomerNotFound)
	}

	itemRepo := s.itemRepo.WithTx(tx)
	for _, line := range input.Items {
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if _, err := itemRepo.FindByID(ctx, line.ShopItemID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Warn("Shop item referenced by order not found", map[string]interface{}{
					"shop_item_id": line.ShopItemID,
				})
				return missingReference(ErrShopItemNotFound, line.ShopItemID)
			}
			return err
		}
	}
	return nil
}

func linesFor(orderID uint, lines []OrderLine) []model.OrderItem {
	items := make([]model.OrderItem, 0, len(lines))
	for _, line := range lines {
		id := orderID
		items = append(items, model.OrderItem{
			OrderID:    &id,
			ShopItemID: line.ShopItemID,
			Quantity:   line.Quantity,
		})
	}
	return items
}

// Create writes the order and its line items atomically, then returns it
// with customer, items, shop items and categories loaded.
func (s *orderService) Create(ctx context.Context, input OrderInput) (*model.Order, error) {
	var orderID uint

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(ctx, tx, input); err != nil {
			return err
		}

		order := &model.Order{CustomerID: input.CustomerID}
		if err := s.orderRepo.WithTx(tx).Create(ctx, order); err != nil {
			return err
		}
		orderID = order.ID

		return s.orderItemRepo.WithTx(tx).CreateBatch(ctx, linesFor(order.ID, input.Items))
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order created", map[string]interface{}{
		"order_id":    orderID,
		"customer_id": input.CustomerID,
		"item_count":  len(input.Items),
	})
	return s.Get(ctx, orderID)
}

// Update points the order at input.CustomerID and replaces all of its line
// items. Checks run customer first, then items, then the order itself.
func (s *orderService) Update(ctx context.Context, id uint, input OrderInput) (*model.Order, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkReferences(ctx, tx, input); err != nil {
			return err
		}

		orderRepo := s.orderRepo.WithTx(tx)
		exists, err := orderRepo.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			logger.Warn("Order not found", map[string]interface{}{
				"order_id": id,
			})
			return ErrOrderNotFound
		}

		if err := orderRepo.UpdateCustomer(ctx, id, input.CustomerID); err != nil {
			return err
		}

		orderItemRepo := s.orderItemRepo.WithTx(tx)
		if err := orderItemRepo.DeleteByOrderID(ctx, id); err != nil {
			return err
		}
		return orderItemRepo.CreateBatch(ctx, linesFor(id, input.Items))
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Order updated", map[string]interface{}{
		"order_id":    id,
		"customer_id": input.CustomerID,
		"item_count":  len(input.Items),
	})
	return s.Get(ctx, id)
}

func (s *orderService) Delete(ctx context.Context, id uint) (*model.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	logger.Info("Order deleted", map[string]interface{}{
		"order_id": id,
	})
	return order, nil
}
