package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storeadmin-be/internal/db"
	"storeadmin-be/internal/logger"
	"storeadmin-be/internal/product"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// numberingLockKey identifies the transaction-scoped advisory lock that
// serialises order number allocation.
const numberingLockKey int64 = 0x6f72646572

const uniqueViolation = "23505"

// Tx is the view of storage an order creation runs against. Every call on it
// belongs to the same database transaction.
type Tx interface {
	product.StockStore

	// LockNumbering blocks until no other transaction is allocating an
	// order number.
	LockNumbering(ctx context.Context) error
	// LastOrderNumber returns the number of the order with the highest id,
	// or "" when there are none.
	LastOrderNumber(ctx context.Context) (string, error)
	Insert(ctx context.Context, o *Order) error
}

type Repository interface {
	// WithinTx runs fn in a transaction that commits only if fn returns nil.
	WithinTx(ctx context.Context, fn func(tx Tx) error) error
	List(ctx context.Context, f Filter) ([]Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	Update(ctx context.Context, id int64, in UpdateOrderInput) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(conn *sql.DB) Repository {
	return &repository{db: conn}
}

const orderColumns = `
	id, order_number, customer_name, email, phone_number, address,
	status, items, total_amount, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }, o *Order) error {
	return row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerName, &o.Email, &o.PhoneNumber, &o.Address,
		&o.Status, &o.Items, &o.TotalAmount, &o.CreatedAt, &o.UpdatedAt,
	)
}

func (r *repository) WithinTx(ctx context.Context, fn func(tx Tx) error) error {
	return db.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&txRepository{
			StockStore: product.NewStockRepository(tx),
			q:          tx,
		})
	})
}

func (r *repository) List(ctx context.Context, f Filter) ([]Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListOrders"),
	)

	query := "SELECT" + orderColumns + " FROM orders WHERE 1=1"
	args := []any{}
	argIndex := 1

	if f.CustomerName != "" {
		query += fmt.Sprintf(" AND customer_name ILIKE $%d", argIndex)
		args = append(args, "%"+f.CustomerName+"%")
		argIndex++
	}
	if f.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, f.Status)
		argIndex++
	}
	if f.PhoneNumber != "" {
		query += fmt.Sprintf(" AND phone_number ILIKE $%d", argIndex)
		args = append(args, "%"+f.PhoneNumber+"%")
		argIndex++
	}
	if f.OrderNumber != "" {
		query += fmt.Sprintf(" AND order_number = $%d", argIndex)
		args = append(args, f.OrderNumber)
	}

	query += " ORDER BY id"

	log.Debug("executing list orders query", zap.String("query", query), zap.Any("args", args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	orders := []Order{}
	for rows.Next() {
		var o Order
		if err := scanOrder(rows, &o); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		log.Error("rows iteration error", zap.Error(err))
		return nil, err
	}

	return orders, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	var o Order
	err := scanOrder(
		r.db.QueryRowContext(ctx, "SELECT"+orderColumns+" FROM orders WHERE id = $1", id),
		&o,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Update writes only the supplied fields. The items column is left alone
// unless new items are given, so its stored bytes survive untouched.
func (r *repository) Update(ctx context.Context, id int64, in UpdateOrderInput) error {
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
		{"customer_name", in.CustomerName},
		{"email", in.Email},
		{"phone_number", in.PhoneNumber},
		{"address", in.Address},
		{"status", in.Status},
	} {
		if f.value != nil && *f.value != "" {
			add(f.column, *f.value)
		}
	}
	if in.Items != nil {
		add("items", in.Items)
	}
	if in.TotalAmount != nil {
		add("total_amount", *in.TotalAmount)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE orders SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args),
	)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to update order",
			zap.Int64("order_id", id),
			zap.Error(err),
		)
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrOrderNotFound
	}
	return nil
}

type txRepository struct {
	product.StockStore
	q db.Querier
}

func (t *txRepository) LockNumbering(ctx context.Context) error {
	_, err := t.q.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, numberingLockKey)
	return err
}

func (t *txRepository) LastOrderNumber(ctx context.Context) (string, error) {
	var last sql.NullString
	err := t.q.QueryRowContext(ctx, `
		SELECT order_number
		FROM orders
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return last.String, nil
}

func (t *txRepository) Insert(ctx context.Context, o *Order) error {
	err := t.q.QueryRowContext(ctx, `
		INSERT INTO orders (
			order_number, customer_name, email, phone_number,
			address, status, items, total_amount
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING id, created_at, updated_at
	`,
		o.OrderNumber, o.CustomerName, o.Email, o.PhoneNumber,
		o.Address, o.Status, o.Items, o.TotalAmount,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrOrderNumberConflict, o.OrderNumber)
	}
	return err
}
