package usecase_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/bnb-finder/internal/domain"
)

// MockReferenceRepository is a mock of ReferenceRepository
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) ListNeighborhoods(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockReferenceRepository) ListPrices(ctx context.Context) ([]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}

// MockListingRepository is a mock of ListingRepository
type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) FetchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, keys ...string) error {
	args := m.Called(ctx, keys)
	return args.Error(0)
}

func (m *MockCacheRepository) GetNeighborhoods(ctx context.Context) ([]string, time.Time, error) {
	args := m.Called(ctx)
	refreshedAt, _ := args.Get(1).(time.Time)
	if args.Get(0) == nil {
		return nil, refreshedAt, args.Error(2)
	}
	return args.Get(0).([]string), refreshedAt, args.Error(2)
}

func (m *MockCacheRepository) SetNeighborhoods(ctx context.Context, names []string, refreshedAt time.Time, ttl time.Duration) error {
	args := m.Called(ctx, names, refreshedAt, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) GetPriceCategories(ctx context.Context) ([]domain.PriceCategory, time.Time, error) {
	args := m.Called(ctx)
	refreshedAt, _ := args.Get(1).(time.Time)
	if args.Get(0) == nil {
		return nil, refreshedAt, args.Error(2)
	}
	return args.Get(0).([]domain.PriceCategory), refreshedAt, args.Error(2)
}

func (m *MockCacheRepository) SetPriceCategories(ctx context.Context, categories []domain.PriceCategory, refreshedAt time.Time, ttl time.Duration) error {
	args := m.Called(ctx, categories, refreshedAt, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) InvalidateReference(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func prices(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

// fakeClock - управляемые часы для проверки TTL
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
