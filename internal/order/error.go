package order

import (
	"errors"
	"strings"
)

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNumberConflict = errors.New("order number already taken")
	ErrValidation          = errors.New("invalid order")
)

// ValidationError lists the request fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid or missing fields: " + strings.Join(e.Fields, ", ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
