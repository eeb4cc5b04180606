package store

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound      = errors.New("product not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidQuantity      = errors.New("quantity must be at least 1")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrCartEmpty            = errors.New("cart is empty")
	ErrOptimisticLockFailed = errors.New("optimistic lock failed")
)

// StockError rejects an add-to-cart that would push the (product, size)
// entry past the product's stock. Remaining is how many more units the
// entry can still take.
type StockError struct {
	ProductID string
	Title     string
	Requested int
	Remaining int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("cannot add %d of %s: only %d left in stock", e.Requested, e.Title, e.Remaining)
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
