package repository

import (
	"context"

	"github.com/ikkim/shop-backend/internal/app/model"
	"github.com/ikkim/shop-backend/pkg/logger"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	WithTx(tx *gorm.DB) CustomerRepository
	Create(ctx context.Context, customer *model.Customer) error
	FindByID(ctx context.Context, id uint) (*model.Customer, error)
	FindByEmail(ctx context.Context, email string) (*model.Customer, error)
	FindAll(ctx context.Context, page Pagination) ([]model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type customerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) WithTx(tx *gorm.DB) CustomerRepository {
	return &customerRepository{db: tx}
}

func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	logger.Debug("Creating customer in database", map[string]interface{}{
		"email": customer.Email,
	})

	if err := r.db.WithContext(ctx).Create(customer).Error; err != nil {
		logger.Error("Failed to create customer in database", err, map[string]interface{}{
			"email": customer.Email,
		})
		return err
	}

	logger.Debug("Customer created in database", map[string]interface{}{
		"customer_id": customer.ID,
		"email":       customer.Email,
	})
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*model.Customer, error) {
	logger.Debug("Finding customer by ID in database", map[string]interface{}{
		"customer_id": id,
	})

	var customer model.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		logger.Debug("Customer lookup by ID failed", map[string]interface{}{
			"customer_id": id,
			"error":       err.Error(),
		})
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*model.Customer, error) {
	var customer model.Customer
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&customer).Error; err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *customerRepository) FindAll(ctx context.Context, page Pagination) ([]model.Customer, error) {
	page = page.normalized()

	var customers []model.Customer
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&customers).Error; err != nil {
		logger.Error("Failed to list customers in database", err, map[string]interface{}{
			"offset": page.Offset,
			"limit":  page.Limit,
		})
		return nil, err
	}

	logger.Debug("Customers listed from database", map[string]interface{}{
		"count": len(customers),
	})
	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	logger.Debug("Updating customer in database", map[string]interface{}{
		"customer_id": customer.ID,
	})

	if err := r.db.WithContext(ctx).Save(customer).Error; err != nil {
		logger.Error("Failed to update customer in database", err, map[string]interface{}{
			"customer_id": customer.ID,
		})
		return err
	}
	return nil
}

func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	logger.Debug("Deleting customer from database", map[string]interface{}{
		"customer_id": id,
	})

	if err := r.db.WithContext(ctx).Delete(&model.Customer{}, id).Error; err != nil {
		logger.Error("Failed to delete customer from database", err, map[string]interface{}{
			"customer_id": id,
		})
		return err
	}
	return nil
}

func (r *customerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Customer{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
