package company

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"storeadmin-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	GetAll(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, in Input) (int64, error)
	Update(ctx context.Context, id int64, in Input) error
	// CurrentLogo returns the logo file name of the first company that has
	// one, or "".
	CurrentLogo(ctx context.Context) (string, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const companyColumns = `
	id, name, phone1, phone2, logo, city, state, address, gst_number,
	description, gpay_number, gpay_upi, gmail, country, created_at, updated_at`

func (r *repository) GetAll(ctx context.Context) ([]Company, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT"+companyColumns+" FROM company ORDER BY id")
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to query companies", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	companies := []Company{}
	for rows.Next() {
		var c Company
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Phone1, &c.Phone2, &c.Logo, &c.City, &c.State, &c.Address, &c.GSTNumber,
			&c.Description, &c.GPayNumber, &c.GPayUPI, &c.Gmail, &c.Country, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

func (r *repository) Create(ctx context.Context, in Input) (int64, error) {
	names := []string{}
	marks := []string{}
	args := []any{}
	for _, c := range in.columns() {
		if c.value == nil {
			continue
		}
		args = append(args, *c.value)
		names = append(names, c.name)
		marks = append(marks, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf(
		"INSERT INTO company (%s) VALUES (%s) RETURNING id",
		strings.Join(names, ", "), strings.Join(marks, ", "),
	)

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert company", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, in Input) error {
	sets := []string{}
	args := []any{}
	for _, c := range in.columns() {
		if c.value == nil {
			continue
		}
		args = append(args, *c.value)
		sets = append(sets, fmt.Sprintf("%s = $%d", c.name, len(args)))
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE company SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args),
	)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *repository) CurrentLogo(ctx context.Context) (string, error) {
	var logo string
	err := r.db.QueryRowContext(ctx, `
		SELECT logo FROM company
		WHERE logo <> ''
		ORDER BY id
		LIMIT 1
	`).Scan(&logo)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return logo, err
}
