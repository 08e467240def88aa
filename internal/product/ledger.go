package product

import (
	"context"
	"fmt"
)

// StockStore is the transactional view of the products table the ledger
// needs. Implementations must lock the returned row until the surrounding
// transaction ends.
type StockStore interface {
	// FindStockForUpdate returns nil when no product has the exact name.
	FindStockForUpdate(ctx context.Context, name string) (*StockLevel, error)
	SetStock(ctx context.Context, id int64, stock int, status string) error
}

// AdjustStock takes every line out of inventory, in the order given. It stops
// at the first line that names an unknown product or asks for more than is
// on hand; the caller's transaction is expected to discard earlier writes.
func AdjustStock(ctx context.Context, store StockStore, lines []StockLine) error {
	for _, line := range lines {
		level, err := store.FindStockForUpdate(ctx, line.Name)
		if err != nil {
			return fmt.Errorf("lookup product %q: %w", line.Name, err)
		}
		if level == nil {
			return &NotFoundError{Name: line.Name}
		}

		newStock := level.Stock - line.Quantity
		if newStock < 0 {
			return &InsufficientStockError{
				Name:      line.Name,
				Requested: line.Quantity,
				Available: level.Stock,
			}
		}

		status := level.Status
		if newStock == 0 {
			status = StatusNotAvailable
		}

		if err := store.SetStock(ctx, level.ID, newStock, status); err != nil {
			return fmt.Errorf("update stock for %q: %w", line.Name, err)
		}
	}

	return nil
}
