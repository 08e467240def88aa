package order

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"storeadmin-be/internal/product"

	"github.com/shopspring/decimal"
)

const StatusPending = "pending"

type Order struct {
	ID           int64           `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerName string          `json:"customer_name"`
	Email        string          `json:"email"`
	PhoneNumber  string          `json:"phone_number"`
	Address      string          `json:"address"`
	Status       string          `json:"status"`
	Items        LineItems       `json:"items"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type LineItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// LineItems is stored in the orders.items JSON column.
type LineItems []LineItem

func (li LineItems) Value() (driver.Value, error) {
	if li == nil {
		li = LineItems{}
	}
	return json.Marshal(li)
}

func (li *LineItems) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*li = nil
		return nil
	case []byte:
		return json.Unmarshal(v, li)
	case string:
		return json.Unmarshal([]byte(v), li)
	default:
		return fmt.Errorf("order: cannot scan %T into LineItems", src)
	}
}

// Total is the sum of quantity times unit price.
func (li LineItems) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range li {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

func (li LineItems) StockLines() []product.StockLine {
	lines := make([]product.StockLine, 0, len(li))
	for _, it := range li {
		lines = append(lines, product.StockLine{Name: it.Name, Quantity: it.Quantity})
	}
	return lines
}

func (li LineItems) invalidFields() []string {
	var fields []string
	for i, it := range li {
		if strings.TrimSpace(it.Name) == "" {
			fields = append(fields, fmt.Sprintf("items[%d].name", i))
		}
		if it.Quantity <= 0 {
			fields = append(fields, fmt.Sprintf("items[%d].quantity", i))
		}
		if it.Price.IsNegative() || !wholeCents(it.Price) {
			fields = append(fields, fmt.Sprintf("items[%d].price", i))
		}
	}
	return fields
}

// wholeCents reports whether d survives storage in a NUMERIC(12,2) column
// unchanged.
func wholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(2))
}

type CreateOrderInput struct {
	CustomerName string    `json:"customer_name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number"`
	Address      string    `json:"address"`
	Status       string    `json:"status"`
	Items        LineItems `json:"items"`
}

// Validate reports every missing or malformed field at once.
func (in CreateOrderInput) Validate() error {
	var fields []string
	if strings.TrimSpace(in.CustomerName) == "" {
		fields = append(fields, "customer_name")
	}
	if strings.TrimSpace(in.Email) == "" {
		fields = append(fields, "email")
	}
	if len(in.Items) == 0 {
		fields = append(fields, "items")
	}
	fields = append(fields, in.Items.invalidFields()...)

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// UpdateOrderInput is a partial update. Nil or empty strings and a nil
// Items slice leave the stored value untouched.
type UpdateOrderInput struct {
	CustomerName *string          `json:"customer_name"`
	Email        *string          `json:"email"`
	PhoneNumber  *string          `json:"phone_number"`
	Address      *string          `json:"address"`
	Status       *string          `json:"status"`
	Items        LineItems        `json:"items"`
	TotalAmount  *decimal.Decimal `json:"total_amount"`
}

func (in UpdateOrderInput) Validate() error {
	fields := in.Items.invalidFields()
	if in.TotalAmount != nil && (in.TotalAmount.IsNegative() || !wholeCents(*in.TotalAmount)) {
		fields = append(fields, "total_amount")
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

type Filter struct {
	CustomerName string
	PhoneNumber  string
	Status       string
	OrderNumber  string
}

type CreateResult struct {
	OrderID     int64           `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}
