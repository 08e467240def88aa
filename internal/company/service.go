package company

import (
	"context"
	"strings"

	"storeadmin-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]Company, error)
	Create(ctx context.Context, in Input) (int64, error)
	Update(ctx context.Context, id int64, in Input) error
	CurrentLogo(ctx context.Context) (string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Company, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Create(ctx context.Context, in Input) (int64, error) {
	for _, v := range []*string{in.Name, in.Phone1, in.City, in.State, in.Address} {
		if v == nil || strings.TrimSpace(*v) == "" {
			return 0, ErrRequiredFieldsMissing
		}
	}

	id, err := s.repo.Create(ctx, in)
	if err != nil {
		return 0, err
	}

	logger.FromCtx(ctx).Info("company created", zap.Int64("company_id", id))
	return id, nil
}

func (s *service) Update(ctx context.Context, id int64, in Input) error {
	return s.repo.Update(ctx, id, in)
}

func (s *service) CurrentLogo(ctx context.Context) (string, error) {
	return s.repo.CurrentLogo(ctx)
}
