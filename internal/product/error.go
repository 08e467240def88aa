package product

import (
	"errors"
	"fmt"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrRequiredFieldsMissing = errors.New("required fields missing")
	ErrInvalidNumber         = errors.New("invalid numeric field")
)

// NotFoundError reports a line item naming a product that does not exist.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrProductNotFound }

type InsufficientStockError struct {
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for product: %s (requested %d, available %d)",
		e.Name, e.Requested, e.Available,
	)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
