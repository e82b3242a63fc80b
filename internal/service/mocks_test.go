package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"bhara-backend/internal/domain"
	"bhara-backend/internal/engine"
	"bhara-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) Update(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockProductRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.Product, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]domain.Product), args.Error(1)
}
func (m *MockProductRepo) ListByStatus(ctx context.Context, status domain.ProductStatus, limit, offset int32) ([]domain.Product, int32, error) {
	args := m.Called(ctx, status, limit, offset)
	return args.Get(0).([]domain.Product), args.Get(1).(int32), args.Error(2)
}
func (m *MockProductRepo) IncrementViews(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockProductRepo) SetAverageRating(ctx context.Context, id uuid.UUID, rating int32) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

// MockRentalRepo
type MockRentalRepo struct {
	mock.Mock
}

func (m *MockRentalRepo) Create(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Rental, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) Update(ctx context.Context, rental *domain.Rental) error {
	args := m.Called(ctx, rental)
	return args.Error(0)
}
func (m *MockRentalRepo) ListByRenter(ctx context.Context, renterID uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, renterID, status)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, status domain.RentalStatus) ([]domain.Rental, error) {
	args := m.Called(ctx, ownerID, status)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListBlockingBookings(ctx context.Context, productID uuid.UUID) ([]engine.BookingWindow, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]engine.BookingWindow), args.Error(1)
}
func (m *MockRentalRepo) ListDueToStart(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Rental), args.Error(1)
}
func (m *MockRentalRepo) ListDueToComplete(ctx context.Context, now time.Time) ([]domain.Rental, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.Rental), args.Error(1)
}

// MockReviewRepo
type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}
func (m *MockReviewRepo) Exists(ctx context.Context, reviewerID, rentalID uuid.UUID, reviewType domain.ReviewType) (bool, error) {
	args := m.Called(ctx, reviewerID, rentalID, reviewType)
	return args.Bool(0), args.Error(1)
}
func (m *MockReviewRepo) ListByRental(ctx context.Context, rentalID uuid.UUID) ([]domain.Review, error) {
	args := m.Called(ctx, rentalID)
	return args.Get(0).([]domain.Review), args.Error(1)
}
func (m *MockReviewRepo) AverageForProduct(ctx context.Context, productID uuid.UUID) (int32, bool, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int32), args.Bool(1), args.Error(2)
}
func (m *MockReviewRepo) AverageForUser(ctx context.Context, userID uuid.UUID) (int32, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Bool(1), args.Error(2)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) SetAverageRating(ctx context.Context, id uuid.UUID, rating int32) error {
	args := m.Called(ctx, id, rating)
	return args.Error(0)
}

// fakeTx hands fn the given repos directly, recording each lock so tests
// can assert the guarded section really ran under the product lock.
type fakeTx struct {
	products repository.ProductRepository
	rentals  repository.RentalRepository
	locked   []uuid.UUID
}

func (f *fakeTx) WithProductLock(ctx context.Context, productID uuid.UUID, fn func(tx repository.TxRepos) error) error {
	f.locked = append(f.locked, productID)
	return fn(repository.TxRepos{Products: f.products, Rentals: f.rentals})
}

// memCache is an in-memory cache.Cache without expiry, enough to observe
// what the services read, write and invalidate.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[key]
	return data, ok, nil
}

func (c *memCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Delete(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func (c *memCache) DeleteByPattern(ctx context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

func (c *memCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}
