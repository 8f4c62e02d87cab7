package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/shop-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrCustomerNotFound   = errors.New("customer not found")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrShopItemNotFound   = errors.New("shop item not found")
	ErrOrderItemNotFound  = errors.New("order item not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrShopItemInUse      = errors.New("shop item is referenced by order items")
	ErrCustomerHasOrders  = errors.New("customer has orders")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidQuantity    = errors.New("quantity must be positive")
)

// ReferenceError reports a referenced entity that does not exist.
// errors.Is matches the wrapped sentinel; ID names the missing row.
type ReferenceError struct {
	Err error
	ID  uint
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: id %d", e.Err.Error(), e.ID)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

func missingReference(sentinel error, id uint) error {
	return &ReferenceError{Err: sentinel, ID: id}
}

// notFoundAs maps gorm.ErrRecordNotFound to sentinel and passes other errors through.
func notFoundAs(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func pageOf(skip, limit int) repository.Pagination {
	return repository.Pagination{Offset: skip, Limit: limit}
}
