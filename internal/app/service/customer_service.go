package service

import (
	"context"
	"errors"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/internal/app/repository"
	apperrors "github.com/ikkim/shop-backend/internal/errors"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CustomerService interface {
	List(ctx context.Context, skip, limit int) ([]model.Customer, error)
	Get(ctx context.Context, id uint) (*model.Customer, error)
	Create(ctx context.Context, input CustomerInput) (*model.Customer, error)
	Update(ctx context.Context, id uint, update CustomerUpdate) (*model.Customer, error)
	Delete(ctx context.Context, id uint) (*model.Customer, error)
	Count(ctx context.Context) (int64, error)
}

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

func (s *customerService) List(ctx context.Context, skip, limit int) ([]model.Customer, error) {
	customers, err := s.customerRepo.FindAll(ctx, pageOf(skip, limit))
	if err != nil {
		logger.Error("Failed to list customers", err)
		return nil, err
	}
	return customers, nil
}

func (s *customerService) Get(ctx context.Context, id uint) (*model.Customer, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Customer not found", map[string]interface{}{
				"customer_id": id,
			})
		}
		return nil, notFoundAs(err, ErrCustomerNotFound)
	}
	return customer, nil
}

func (s *customerService) Count(ctx context.Context) (int64, error) {
	return s.customerRepo.Count(ctx)
}

// ensureEmailFree rejects email when a customer other than selfID owns it.
// The unique index still decides races; see translateWriteError.
func (s *customerService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.customerRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		logger.Warn("Email already registered", map[string]interface{}{
			"email":       email,
			"customer_id": existing.ID,
		})
		return ErrEmailAlreadyExists
	}
	return nil
}

func translateWriteError(err error) error {
	if apperrors.IsUniqueViolation(err) {
		return ErrEmailAlreadyExists
	}
	return err
}

func (s *customerService) Create(ctx context.Context, input CustomerInput) (*model.Customer, error) {
	if err := s.ensureEmailFree(ctx, input.Email, 0); err != nil {
		return nil, err
	}

	customer := &model.Customer{
		Name:    input.Name,
		Surname: input.Surname,
		Email:   input.Email,
	}
	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, translateWriteError(err)
	}

	logger.Info("Customer created", map[string]interface{}{
		"customer_id": customer.ID,
		"email":       customer.Email,
	})
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, id uint, update CustomerUpdate) (*model.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Email != nil && *update.Email != customer.Email {
		if err := s.ensureEmailFree(ctx, *update.Email, customer.ID); err != nil {
			return nil, err
		}
		customer.Email = *update.Email
	}
	if update.Name != nil {
		customer.Name = *update.Name
	}
	if update.Surname != nil {
		customer.Surname = *update.Surname
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, translateWriteError(err)
	}

	logger.Info("Customer updated", map[string]interface{}{
		"customer_id": customer.ID,
	})
	return customer, nil
}

// Delete refuses to remove a customer that still owns orders.
func (s *customerService) Delete(ctx context.Context, id uint) (*model.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.CountByCustomerID(ctx, id)
	if err != nil {
		return nil, err
	}
	if orders > 0 {
		logger.Warn("Customer still has orders", map[string]interface{}{
			"customer_id": id,
			"orders":      orders,
		})
		return nil, ErrCustomerHasOrders
	}

	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return nil, err
	}

	logger.Info("Customer deleted", map[string]interface{}{
		"customer_id": id,
	})
	return customer, nil
}
