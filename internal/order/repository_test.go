package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"storeadmin-be/internal/product"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderRowColumns = []string{
	"id", "order_number", "customer_name", "email", "phone_number", "address",
	"status", "items", "total_amount", "created_at", "updated_at",
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("AllFilters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE 1=1 AND customer_name ILIKE \$1 AND status = \$2 AND phone_number ILIKE \$3 AND order_number = \$4 ORDER BY id`).
			WithArgs("%ann%", "pending", "%555%", "ORD-000001").
			WillReturnRows(sqlmock.NewRows(orderRowColumns).AddRow(
				1, "ORD-000001", "Ann", "ann@example.com", "555-1000", "1 Main St",
				"pending", []byte(`[{"name":"Mug","quantity":1,"price":"3"}]`), "3.00", now, now,
			))

		orders, err := repo.List(ctx, Filter{
			CustomerName: "ann", Status: "pending", PhoneNumber: "555", OrderNumber: "ORD-000001",
		})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "ORD-000001", orders[0].OrderNumber)
		require.Len(t, orders[0].Items, 1)
		assert.Equal(t, "Mug", orders[0].Items[0].Name)
	})

	t.Run("NoFilters", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders WHERE 1=1 ORDER BY id`).
			WillReturnRows(sqlmock.NewRows(orderRowColumns))

		orders, err := repo.List(ctx, Filter{})
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM orders`).WillReturnError(errors.New("db error"))

		_, err := repo.List(ctx, Filter{})
		assert.Error(t, err)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnError(sql.ErrNoRows)

	_, err = repo.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("OmittedItemsAreNotWritten", func(t *testing.T) {
		status := "shipped"
		blank := ""
		mock.ExpectExec(`UPDATE orders SET status = \$1, updated_at = NOW\(\) WHERE id = \$2`).
			WithArgs("shipped", int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, 3, UpdateOrderInput{Status: &status, Email: &blank})
		assert.NoError(t, err)
	})

	t.Run("ItemsAndTotal", func(t *testing.T) {
		total := decimal.NewFromInt(9)
		mock.ExpectExec(`UPDATE orders SET items = \$1, total_amount = \$2, updated_at = NOW\(\) WHERE id = \$3`).
			WithArgs([]byte(`[{"name":"Mug","quantity":3,"price":"3"}]`), sqlmock.AnyArg(), int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, 3, UpdateOrderInput{
			Items:       LineItems{{Name: "Mug", Quantity: 3, Price: decimal.NewFromInt(3)}},
			TotalAmount: &total,
		})
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE orders SET updated_at = NOW\(\) WHERE id = \$1`).
			WithArgs(int64(99)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Update(ctx, 99, UpdateOrderInput{}), ErrOrderNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	assert.NoError(t, repo.Delete(ctx, 1))

	mock.ExpectExec(`DELETE FROM orders WHERE id = \$1`).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(ctx, 2), ErrOrderNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_WithinTx(t *testing.T) {
	ctx := context.Background()

	t.Run("FullCreationCommits", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		now := time.Now()
		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock\(\$1\)`).
			WithArgs(numberingLockKey).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT order_number FROM orders ORDER BY id DESC LIMIT 1`).
			WillReturnRows(sqlmock.NewRows([]string{"order_number"}).AddRow("ORD-000007"))
		mock.ExpectQuery(`FROM products WHERE name = \$1 ORDER BY id LIMIT 1 FOR UPDATE`).
			WithArgs("Mug").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock", "status"}).AddRow(5, "Mug", 2, "Available"))
		mock.ExpectExec(`UPDATE products SET stock = \$1, status = \$2`).
			WithArgs(0, "Not available", int64(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO orders`).
			WithArgs("ORD-000008", "Ann", "ann@example.com", "", "", StatusPending, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(8, now, now))
		mock.ExpectCommit()

		svc := NewService(NewRepository(db), nil, nil, nil)
		res, err := svc.Create(ctx, CreateOrderInput{
			CustomerName: "Ann",
			Email:        "ann@example.com",
			Items:        LineItems{{Name: "Mug", Quantity: 2, Price: decimal.RequireFromString("4.25")}},
		})
		require.NoError(t, err)
		assert.Equal(t, int64(8), res.OrderID)
		assert.Equal(t, "ORD-000008", res.OrderNumber)
		assert.True(t, decimal.RequireFromString("8.5").Equal(res.TotalAmount))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("InsufficientStockRollsBack", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT order_number FROM orders`).
			WillReturnRows(sqlmock.NewRows([]string{"order_number"}))
		mock.ExpectQuery(`FROM products WHERE name = \$1`).
			WithArgs("Mug").
			WillReturnRows(sqlmock.NewRows([]string{"id", "name", "stock", "status"}).AddRow(5, "Mug", 2, "Available"))
		mock.ExpectRollback()

		svc := NewService(NewRepository(db), nil, nil, nil)
		_, err = svc.Create(ctx, CreateOrderInput{
			CustomerName: "Ann",
			Email:        "ann@example.com",
			Items:        LineItems{{Name: "Mug", Quantity: 5, Price: decimal.NewFromInt(1)}},
		})
		assert.ErrorIs(t, err, product.ErrInsufficientStock)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UniqueViolationMapsToConflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO orders`).WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err = repo.WithinTx(ctx, func(tx Tx) error {
			return tx.Insert(ctx, &Order{OrderNumber: "ORD-000001", Items: LineItems{}})
		})
		assert.ErrorIs(t, err, ErrOrderNumberConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
