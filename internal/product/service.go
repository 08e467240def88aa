package product

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"storeadmin-be/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FileRemover deletes a previously uploaded file by its public path.
type FileRemover interface {
	Remove(publicPath string) error
}

type Service interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, input CreateProductInput) (Product, error)
	Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo  Repository
	files FileRemover
}

func NewService(repo Repository, files FileRemover) Service {
	return &service{repo: repo, files: files}
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateProduct"),
	)

	if blank(input.Name) || blank(input.Price) || blank(input.Quantity) ||
		blank(input.Category) || blank(input.Status) {
		return Product{}, ErrRequiredFieldsMissing
	}

	price, err := parseDecimal("price", input.Price)
	if err != nil {
		return Product{}, err
	}
	quantity, err := parseInt("quantity", input.Quantity)
	if err != nil {
		return Product{}, err
	}

	p := Product{
		Name:          strings.TrimSpace(input.Name),
		Description:   input.Description,
		Price:         price,
		Quantity:      quantity,
		Category:      input.Category,
		Status:        input.Status,
		Images:        input.Images,
		Stock:         quantity,
		Discount:      decimal.Zero,
		DiscountPrice: price,
	}

	if !blank(input.Stock) {
		if p.Stock, err = parseInt("stock", input.Stock); err != nil {
			return Product{}, err
		}
	}
	if !blank(input.Discount) {
		if p.Discount, err = parseDecimal("discount", input.Discount); err != nil {
			return Product{}, err
		}
	}
	if !blank(input.DiscountPrice) {
		if p.DiscountPrice, err = parseDecimal("discount_price", input.DiscountPrice); err != nil {
			return Product{}, err
		}
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		log.Error("failed to create product", zap.Error(err))
		return Product{}, err
	}

	log.Info("product created", zap.Int64("product_id", created.ID))
	return created, nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateProductInput) (*Product, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var patch Patch
	patch.Name = optString(input.Name)
	patch.Description = optString(input.Description)
	patch.Category = optString(input.Category)
	patch.Status = optString(input.Status)
	patch.Images = optString(input.Images)

	if patch.Price, err = optDecimal("price", input.Price); err != nil {
		return nil, err
	}
	if patch.Quantity, err = optInt("quantity", input.Quantity); err != nil {
		return nil, err
	}
	if patch.Stock, err = optInt("stock", input.Stock); err != nil {
		return nil, err
	}
	if patch.Discount, err = optDecimal("discount", input.Discount); err != nil {
		return nil, err
	}
	if patch.DiscountPrice, err = optDecimal("discount_price", input.DiscountPrice); err != nil {
		return nil, err
	}

	p, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	previousImage := current.Images
	if previousImage != "" && previousImage != p.Images && s.files != nil {
		if err := s.files.Remove(previousImage); err != nil {
			logger.FromCtx(ctx).Warn("failed to remove replaced product image",
				zap.String("image", previousImage), zap.Error(err))
		}
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.Int64("product_id", id),
	)

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if p.Images != "" && s.files != nil {
		if err := s.files.Remove(p.Images); err != nil {
			log.Warn("failed to remove product image", zap.String("image", p.Images), zap.Error(err))
		}
	}

	return s.repo.Delete(ctx, id)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func optString(v string) *string {
	if blank(v) {
		return nil
	}
	return &v
}

func optDecimal(field, v string) (*decimal.Decimal, error) {
	if blank(v) {
		return nil, nil
	}
	d, err := parseDecimal(field, v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optInt(field, v string) (*int, error) {
	if blank(v) {
		return nil, nil
	}
	n, err := parseInt(field, v)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func parseDecimal(field, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil || d.IsNegative() || !d.Equal(d.Round(2)) {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrInvalidNumber, field)
	}
	return d, nil
}

func parseInt(field, v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s", ErrInvalidNumber, field)
	}
	return n, nil
}
