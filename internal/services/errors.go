package services

import (
	"errors"
	"fmt"
)

// Errors shared across services.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// ErrInsufficientStock is the sentinel matched by errors.Is against
// *InsufficientStockError values.
var ErrInsufficientStock = errors.New("insufficient stock")

// InsufficientStockError reports a stock shortfall, carrying the quantity that
// was actually available so callers can surface it.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
