package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storeadmin-be/internal/db"
	"storeadmin-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, p Product) (Product, error)
	Update(ctx context.Context, id int64, patch Patch) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(conn *sql.DB) Repository {
	return &repository{db: conn}
}

const productColumns = `
	id, name, description, price, quantity, category, status,
	images, stock, discount, discount_price, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }, p *Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.Category, &p.Status,
		&p.Images, &p.Stock, &p.Discount, &p.DiscountPrice, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *repository) GetAll(ctx context.Context) ([]Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "GetAll"),
	)

	rows, err := r.db.QueryContext(ctx, "SELECT"+productColumns+" FROM products ORDER BY id")
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	products := []Product{}
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	err := scanProduct(
		r.db.QueryRowContext(ctx, "SELECT"+productColumns+" FROM products WHERE id = $1", id),
		&p,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p Product) (Product, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			name, description, price, quantity, category, status,
			images, stock, discount, discount_price
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at
	`,
		p.Name, p.Description, p.Price, p.Quantity, p.Category, p.Status,
		p.Images, p.Stock, p.Discount, p.DiscountPrice,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert product",
			zap.String("name", p.Name),
			zap.Error(err),
		)
	}
	return p, err
}

// Update writes only the columns set in patch so concurrent stock
// movements from the order ledger are left alone.
func (r *repository) Update(ctx context.Context, id int64, patch Patch) (*Product, error) {
	sets := []string{}
	args := []any{}

	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	for _, f := range []struct {
		column string
		value  *string
	}{
		{"name", patch.Name},
		{"description", patch.Description},
		{"category", patch.Category},
		{"status", patch.Status},
		{"images", patch.Images},
	} {
		if f.value != nil {
			add(f.column, *f.value)
		}
	}
	for _, f := range []struct {
		column string
		value  *decimal.Decimal
	}{
		{"price", patch.Price},
		{"discount", patch.Discount},
		{"discount_price", patch.DiscountPrice},
	} {
		if f.value != nil {
			add(f.column, *f.value)
		}
	}
	if patch.Quantity != nil {
		add("quantity", *patch.Quantity)
	}
	if patch.Stock != nil {
		add("stock", *patch.Stock)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d RETURNING"+productColumns,
		strings.Join(sets, ", "), len(args),
	)

	var p Product
	err := scanProduct(r.db.QueryRowContext(ctx, query, args...), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update product",
			zap.Int64("product_id", id),
			zap.Error(err),
		)
		return nil, err
	}
	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrProductNotFound
	}
	return nil
}

type stockRepository struct {
	q db.Querier
}

// NewStockRepository binds the ledger's store to q, normally an open *sql.Tx.
func NewStockRepository(q db.Querier) StockStore {
	return &stockRepository{q: q}
}

// FindStockForUpdate resolves duplicate names to the lowest id.
func (r *stockRepository) FindStockForUpdate(ctx context.Context, name string) (*StockLevel, error) {
	var s StockLevel
	err := r.q.QueryRowContext(ctx, `
		SELECT id, name, stock, status
		FROM products
		WHERE name = $1
		ORDER BY id
		LIMIT 1
		FOR UPDATE
	`, name).Scan(&s.ID, &s.Name, &s.Stock, &s.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *stockRepository) SetStock(ctx context.Context, id int64, stock int, status string) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE products
		SET stock = $1, status = $2, updated_at = NOW()
		WHERE id = $3
	`, stock, status, id)
	return err
}
