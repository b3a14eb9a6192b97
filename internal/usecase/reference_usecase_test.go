package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bnb-finder/internal/domain"
	apperrors "github.com/bnb-finder/internal/pkg/errors"
	"github.com/bnb-finder/internal/usecase"
)

func newReferenceUC(repo *MockReferenceRepository, cache *MockCacheRepository, ttl time.Duration, clock *fakeClock) *usecase.ReferenceUseCase {
	var uc *usecase.ReferenceUseCase
	if cache == nil {
		uc = usecase.NewReferenceUseCase(repo, nil, zap.NewNop(), ttl)
	} else {
		uc = usecase.NewReferenceUseCase(repo, cache, zap.NewNop(), ttl)
	}
	if clock != nil {
		uc.WithClock(clock.Now)
	}
	return uc
}

func TestReferenceUseCase_ListNeighborhoods(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReferenceRepository)
	repo.On("ListNeighborhoods", ctx).Return([]string{"Chelsea", "SoHo", "Tribeca"}, nil).Once()

	uc := newReferenceUC(repo, nil, time.Hour, nil)

	names, err := uc.ListNeighborhoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Chelsea", "SoHo", "Tribeca"}, names)
	repo.AssertExpectations(t)
}

func TestReferenceUseCase_CachedWithinTTL(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := new(MockReferenceRepository)
	repo.On("ListNeighborhoods", ctx).Return([]string{"SoHo"}, nil)
	repo.On("ListPrices", ctx).Return(prices(50, 100, 150, 200, 250), nil)

	uc := newReferenceUC(repo, nil, time.Hour, clock)

	for i := 0; i < 3; i++ {
		_, err := uc.ListNeighborhoods(ctx)
		require.NoError(t, err)
		_, err = uc.PriceCategories(ctx)
		require.NoError(t, err)
		clock.Advance(10 * time.Minute)
	}

	repo.AssertNumberOfCalls(t, "ListNeighborhoods", 1)
	repo.AssertNumberOfCalls(t, "ListPrices", 1)

	// TTL истек - справочники перечитываются
	clock.Advance(time.Hour)
	_, err := uc.ListNeighborhoods(ctx)
	require.NoError(t, err)
	_, err = uc.PriceCategories(ctx)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "ListNeighborhoods", 2)
	repo.AssertNumberOfCalls(t, "ListPrices", 2)
}

func TestReferenceUseCase_ConcurrentCallersQueryOnce(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReferenceRepository)
	repo.On("ListNeighborhoods", ctx).
		After(20*time.Millisecond).
		Return([]string{"SoHo"}, nil)

	uc := newReferenceUC(repo, nil, time.Hour, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			names, err := uc.ListNeighborhoods(ctx)
			assert.NoError(t, err)
			assert.Equal(t, []string{"SoHo"}, names)
		}()
	}
	wg.Wait()

	repo.AssertNumberOfCalls(t, "ListNeighborhoods", 1)
}

func TestReferenceUseCase_PriceCategories(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReferenceRepository)
	repo.On("ListPrices", ctx).Return(prices(50, 100, 150, 200, 250), nil)

	uc := newReferenceUC(repo, nil, time.Hour, nil)

	categories, err := uc.PriceCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, domain.PriceCategoryCount)

	assert.Equal(t, "Below $100", categories[0].Label)
	assert.Equal(t, "$100 to $150", categories[1].Label)
	assert.Equal(t, "$150 to $200", categories[2].Label)
	assert.Equal(t, "Above $200", categories[3].Label)
	assert.Equal(t, "251", categories[3].Range.High.String())
}

func TestReferenceUseCase_PriceCategories_NoPrices(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReferenceRepository)
	repo.On("ListPrices", ctx).Return(prices(), nil)

	uc := newReferenceUC(repo, nil, time.Hour, nil)

	_, err := uc.PriceCategories(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrDataUnavailable))

	// Ошибка не кешируется
	_, _ = uc.PriceCategories(ctx)
	repo.AssertNumberOfCalls(t, "ListPrices", 2)
}

func TestReferenceUseCase_StoreErrorPropagates(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReferenceRepository)
	queryErr := apperrors.ErrQueryFailed.Wrap(errors.New("connection refused"))
	repo.On("ListNeighborhoods", ctx).Return(nil, queryErr)

	uc := newReferenceUC(repo, nil, time.Hour, nil)

	_, err := uc.ListNeighborhoods(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrQueryFailed))
}

func TestReferenceUseCase_CategoryByIndex(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReferenceRepository)
	repo.On("ListPrices", ctx).Return(prices(50, 100, 150, 200, 250), nil)

	uc := newReferenceUC(repo, nil, time.Hour, nil)

	category, err := uc.CategoryByIndex(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "$100 to $150", category.Label)

	_, err = uc.CategoryByIndex(ctx, 4)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCategory))

	_, err = uc.CategoryByIndex(ctx, -1)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidCategory))
}

func TestReferenceUseCase_SharedCacheHit(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := new(MockReferenceRepository)
	cache := new(MockCacheRepository)
	cache.On("GetNeighborhoods", ctx).Return([]string{"SoHo"}, clock.Now().Add(-10*time.Minute), nil)

	uc := newReferenceUC(repo, cache, time.Hour, clock)

	names, err := uc.ListNeighborhoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"SoHo"}, names)
	repo.AssertNotCalled(t, "ListNeighborhoods", mock.Anything)

	neighborhoodsAt, _ := uc.LastRefreshed()
	assert.Equal(t, clock.Now().Add(-10*time.Minute), neighborhoodsAt)
}

func TestReferenceUseCase_SharedCacheEntryAgesFromOriginalLoad(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := new(MockReferenceRepository)
	cache := new(MockCacheRepository)

	// В Redis лежит снапшот, посчитанный другим процессом 59 минут назад
	cache.On("GetNeighborhoods", ctx).Return([]string{"Stale"}, clock.Now().Add(-59*time.Minute), nil).Once()
	cache.On("GetNeighborhoods", ctx).Return(nil, time.Time{}, nil)
	cache.On("SetNeighborhoods", ctx, []string{"Fresh"}, mock.AnythingOfType("time.Time"), time.Hour).Return(nil)
	repo.On("ListNeighborhoods", ctx).Return([]string{"Fresh"}, nil)

	uc := newReferenceUC(repo, cache, time.Hour, clock)

	names, err := uc.ListNeighborhoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stale"}, names)
	repo.AssertNotCalled(t, "ListNeighborhoods", mock.Anything)

	clock.Advance(59 * time.Minute)

	names, err = uc.ListNeighborhoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fresh"}, names)
	repo.AssertNumberOfCalls(t, "ListNeighborhoods", 1)
}

func TestReferenceUseCase_SharedCacheExpiredEntryIgnored(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := new(MockReferenceRepository)
	cache := new(MockCacheRepository)

	repo.On("ListPrices", ctx).Return(prices(50, 100, 150, 200, 250), nil)
	stale, err := domain.BuildPriceCategories(prices(1, 2, 3, 4))
	require.NoError(t, err)
	cache.On("GetPriceCategories", ctx).Return(stale, clock.Now().Add(-2*time.Hour), nil)
	cache.On("SetPriceCategories", ctx, mock.AnythingOfType("[]domain.PriceCategory"), clock.Now(), time.Hour).Return(nil)

	uc := newReferenceUC(repo, cache, time.Hour, clock)

	categories, err := uc.PriceCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Below $100", categories[0].Label)
	repo.AssertNumberOfCalls(t, "ListPrices", 1)
	cache.AssertExpectations(t)
}

func TestReferenceUseCase_SharedCacheEntryWithoutTimestampIgnored(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReferenceRepository)
	cache := new(MockCacheRepository)

	cache.On("GetNeighborhoods", ctx).Return([]string{"Unknown age"}, time.Time{}, nil)
	cache.On("SetNeighborhoods", ctx, []string{"SoHo"}, mock.AnythingOfType("time.Time"), time.Hour).Return(nil)
	repo.On("ListNeighborhoods", ctx).Return([]string{"SoHo"}, nil)

	uc := newReferenceUC(repo, cache, time.Hour, nil)

	names, err := uc.ListNeighborhoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"SoHo"}, names)
}

func TestReferenceUseCase_SharedCacheMissWritesBack(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	repo := new(MockReferenceRepository)
	cache := new(MockCacheRepository)

	repo.On("ListPrices", ctx).Return(prices(50, 100, 150, 200, 250), nil)
	cache.On("GetPriceCategories", ctx).Return(nil, time.Time{}, nil)
	cache.On("SetPriceCategories", ctx, mock.AnythingOfType("[]domain.PriceCategory"), clock.Now(), time.Hour).Return(nil)

	uc := newReferenceUC(repo, cache, time.Hour, clock)

	categories, err := uc.PriceCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, domain.PriceCategoryCount)
	cache.AssertExpectations(t)
}

func TestReferenceUseCase_SharedCacheFailureIgnored(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReferenceRepository)
	cache := new(MockCacheRepository)

	repo.On("ListNeighborhoods", ctx).Return([]string{"SoHo"}, nil)
	cache.On("GetNeighborhoods", ctx).Return(nil, time.Time{}, errors.New("redis down"))
	cache.On("SetNeighborhoods", ctx, []string{"SoHo"}, mock.AnythingOfType("time.Time"), time.Hour).Return(errors.New("redis down"))

	uc := newReferenceUC(repo, cache, time.Hour, nil)

	names, err := uc.ListNeighborhoods(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"SoHo"}, names)
}

func TestReferenceUseCase_Invalidate(t *testing.T) {
	ctx := context.Background()
	repo := new(MockReferenceRepository)
	cache := new(MockCacheRepository)

	repo.On("ListNeighborhoods", ctx).Return([]string{"SoHo"}, nil)
	cache.On("GetNeighborhoods", ctx).Return(nil, time.Time{}, nil)
	cache.On("SetNeighborhoods", ctx, []string{"SoHo"}, mock.AnythingOfType("time.Time"), time.Hour).Return(nil)
	cache.On("InvalidateReference", ctx).Return(nil).Once()

	uc := newReferenceUC(repo, cache, time.Hour, nil)

	_, err := uc.ListNeighborhoods(ctx)
	require.NoError(t, err)

	require.NoError(t, uc.Invalidate(ctx))

	neighborhoodsAt, _ := uc.LastRefreshed()
	assert.True(t, neighborhoodsAt.IsZero())

	_, err = uc.ListNeighborhoods(ctx)
	require.NoError(t, err)

	repo.AssertNumberOfCalls(t, "ListNeighborhoods", 2)
	cache.AssertExpectations(t)
}

func TestReferenceUseCase_InvalidateCacheError(t *testing.T) {
	ctx := context.Background()
	cache := new(MockCacheRepository)
	cache.On("InvalidateReference", ctx).Return(errors.New("redis down"))

	uc := newReferenceUC(new(MockReferenceRepository), cache, time.Hour, nil)

	err := uc.Invalidate(ctx)
	assert.True(t, errors.Is(err, apperrors.ErrCacheError))
}
