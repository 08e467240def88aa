package product

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusNotAvailable is set once an order drains a product's stock.
const StatusNotAvailable = "Not available"

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	Category      string          `json:"category"`
	Status        string          `json:"status"`
	Images        string          `json:"images"`
	Stock         int             `json:"stock"`
	Discount      decimal.Decimal `json:"discount"`
	DiscountPrice decimal.Decimal `json:"discount_price"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type CreateProductInput struct {
	Name          string
	Description   string
	Price         string
	Quantity      string
	Category      string
	Status        string
	Stock         string
	Discount      string
	DiscountPrice string
	Images        string
}

// UpdateProductInput carries raw form values; empty strings keep the
// stored value.
type UpdateProductInput struct {
	Name          string
	Description   string
	Price         string
	Quantity      string
	Category      string
	Status        string
	Stock         string
	Discount      string
	DiscountPrice string
	Images        string
}

// Patch lists the columns an update touches; nil fields are not written.
type Patch struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	Quantity      *int
	Category      *string
	Status        *string
	Images        *string
	Stock         *int
	Discount      *decimal.Decimal
	DiscountPrice *decimal.Decimal
}

// StockLevel is the slice of a product row the stock ledger works with.
type StockLevel struct {
	ID     int64
	Name   string
	Stock  int
	Status string
}

// StockLine is one quantity to take out of a named product.
type StockLine struct {
	Name     string
	Quantity int
}
