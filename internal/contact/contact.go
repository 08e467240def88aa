package contact

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"storeadmin-be/internal/logger"

	"go.uber.org/zap"
)

var ErrAllFieldsRequired = errors.New("all fields are required")

type Contact struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phone_number"`
	Email       string    `json:"email"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

type Filter struct {
	Name  string
	Email string
}

type Repository interface {
	List(ctx context.Context, f Filter) ([]Contact, error)
	Create(ctx context.Context, c Contact) (Contact, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, f Filter) ([]Contact, error) {
	query := "SELECT id, name, phone_number, email, message, created_at FROM contacts WHERE 1=1"
	args := []any{}

	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if f.Email != "" {
		args = append(args, "%"+f.Email+"%")
		query += fmt.Sprintf(" AND email ILIKE $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to query contacts", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	contacts := []Contact{}
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.Email, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Contact) (Contact, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO contacts (name, phone_number, email, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, c.Name, c.PhoneNumber, c.Email, c.Message).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert contact", zap.Error(err))
	}
	return c, err
}

type Service interface {
	List(ctx context.Context, f Filter) ([]Contact, error)
	Create(ctx context.Context, c Contact) (Contact, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, f Filter) ([]Contact, error) {
	return s.repo.List(ctx, f)
}

func (s *service) Create(ctx context.Context, c Contact) (Contact, error) {
	for _, v := range []string{c.Name, c.PhoneNumber, c.Email, c.Message} {
		if strings.TrimSpace(v) == "" {
			return Contact{}, ErrAllFieldsRequired
		}
	}
	return s.repo.Create(ctx, c)
}
