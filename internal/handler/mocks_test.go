package handler

import (
	"context"
	"mime/multipart"

	"storeadmin-be/internal/cache"
	"storeadmin-be/internal/company"
	"storeadmin-be/internal/contact"
	"storeadmin-be/internal/order"
	"storeadmin-be/internal/product"
	"storeadmin-be/internal/upload"
	"storeadmin-be/internal/user"

	"github.com/stretchr/testify/mock"
)

// --- Order ---

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, in order.CreateOrderInput) (*order.CreateResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.CreateResult), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, f order.Filter) ([]order.Order, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, id int64, in order.UpdateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOrderService) Wait() {}

type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) Get(ctx context.Context, key string) (*cache.StoredResponse, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cache.StoredResponse), args.Error(1)
}

func (m *MockIdempotencyStore) Save(ctx context.Context, key string, resp cache.StoredResponse) error {
	return m.Called(ctx, key, resp).Error(0)
}

// --- Product ---

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context) ([]product.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, in product.CreateProductInput) (product.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(product.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id int64, in product.UpdateProductInput) (*product.Product, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(fh *multipart.FileHeader, subdir, prefix string) (upload.Stored, error) {
	args := m.Called(fh, subdir, prefix)
	return args.Get(0).(upload.Stored), args.Error(1)
}

func (m *MockFileStore) Remove(publicPath string) error {
	return m.Called(publicPath).Error(0)
}

// --- User ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]user.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]user.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, in user.CreateUserInput) (string, user.User, error) {
	args := m.Called(ctx, in)
	return args.String(0), args.Get(1).(user.User), args.Error(2)
}

func (m *MockUserService) Update(ctx context.Context, id int64, in user.UpdateUserInput) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

// --- Company ---

type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) List(ctx context.Context) ([]company.Company, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]company.Company), args.Error(1)
}

func (m *MockCompanyService) Create(ctx context.Context, in company.Input) (int64, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCompanyService) Update(ctx context.Context, id int64, in company.Input) error {
	return m.Called(ctx, id, in).Error(0)
}

func (m *MockCompanyService) CurrentLogo(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// --- Contact ---

type MockContactService struct {
	mock.Mock
}

func (m *MockContactService) List(ctx context.Context, f contact.Filter) ([]contact.Contact, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]contact.Contact), args.Error(1)
}

func (m *MockContactService) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(contact.Contact), args.Error(1)
}
