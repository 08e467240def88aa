package user

import (
	"context"
	"errors"
	"strings"

	"storeadmin-be/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context) ([]User, error)
	// Create stores the user and returns the token issued for them.
	Create(ctx context.Context, in CreateUserInput) (string, User, error)
	Update(ctx context.Context, id int64, in UpdateUserInput) error
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo   Repository
	secret string
}

func NewService(repo Repository, jwtSecret string) Service {
	return &service{repo: repo, secret: jwtSecret}
}

func (s *service) List(ctx context.Context) ([]User, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) Create(ctx context.Context, in CreateUserInput) (string, User, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateUser"),
	)

	email := strings.TrimSpace(in.Email)
	if in.Name == "" || email == "" || in.Role == "" || in.Password == "" || in.ConfirmPassword == "" {
		return "", User{}, ErrAllFieldsRequired
	}
	if in.Password != in.ConfirmPassword {
		return "", User{}, ErrPasswordMismatch
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return "", User{}, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		log.Error("failed to look up user", zap.Error(err))
		return "", User{}, err
	}

	hashed, err := HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(s.secret, email, in.Role)
	if err != nil {
		log.Error("failed to generate jwt", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, User{
		Name:     in.Name,
		Email:    email,
		Role:     in.Role,
		Password: hashed,
		Token:    token,
	})
	if err != nil {
		return "", User{}, err
	}

	log.Info("user created", zap.Int64("user_id", u.ID), zap.String("email", email))
	return token, u, nil
}

func (s *service) Update(ctx context.Context, id int64, in UpdateUserInput) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if in.Name != "" {
		u.Name = in.Name
	}
	if email := strings.TrimSpace(in.Email); email != "" {
		u.Email = email
	}
	if in.Role != "" {
		u.Role = in.Role
	}
	if in.Password != "" {
		if u.Password, err = HashPassword(in.Password); err != nil {
			return err
		}
	}

	return s.repo.Update(ctx, *u)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
