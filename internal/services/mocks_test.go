package service_test

import (
	"context"
	"sync"
	"time"

	"github.com/example/storefront/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) GetCart(ctx context.Context, userID uuid.UUID) ([]models.LineItem, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.LineItem), args.Error(1)
}

func (m *MockCartRepository) ReplaceCart(ctx context.Context, userID uuid.UUID, items []models.LineItem) error {
	args := m.Called(ctx, userID, items)

	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)

	return args.Error(0)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.User), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)

	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	args := m.Called(ctx, userID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.Order), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) GetProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)

	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)

	return args.Error(0)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, page, size int) ([]*models.Product, int, error) {
	args := m.Called(ctx, page, size)

	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}

	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

type MockGuestCartStore struct {
	mock.Mock
}

func (m *MockGuestCartStore) Get(ctx context.Context, guestID string) ([]models.LineItem, error) {
	args := m.Called(ctx, guestID)

	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]models.LineItem), args.Error(1)
}

func (m *MockGuestCartStore) Put(ctx context.Context, guestID string, items []models.LineItem) error {
	args := m.Called(ctx, guestID, items)

	return args.Error(0)
}

func (m *MockGuestCartStore) Delete(ctx context.Context, guestID string) error {
	args := m.Called(ctx, guestID)

	return args.Error(0)
}

type MockRateLimitRepository struct {
	mock.Mock
}

func (m *MockRateLimitRepository) CheckLoginRateLimit(ctx context.Context, username string) (bool, int, int, error) {
	args := m.Called(ctx, username)

	return args.Bool(0), args.Int(1), args.Int(2), args.Error(3)
}

// fakeCartRepository is a stateful in-memory cart store whose reads pause
// before returning, widening the read-modify-write window so an unserialized
// merge would reliably lose one of two concurrent updates.
type fakeCartRepository struct {
	mu    sync.Mutex
	carts map[uuid.UUID][]models.LineItem
}

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{carts: make(map[uuid.UUID][]models.LineItem)}
}

func (f *fakeCartRepository) GetCart(ctx context.Context, userID uuid.UUID) ([]models.LineItem, error) {
	f.mu.Lock()
	items := make([]models.LineItem, len(f.carts[userID]))
	copy(items, f.carts[userID])
	f.mu.Unlock()

	time.Sleep(10 * time.Millisecond)

	return items, nil
}

func (f *fakeCartRepository) ReplaceCart(ctx context.Context, userID uuid.UUID, items []models.LineItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := make([]models.LineItem, len(items))
	copy(stored, items)
	f.carts[userID] = stored

	return nil
}
