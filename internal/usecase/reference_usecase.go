package usecase

import (
	"context"
	stderrors "errors"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/bnb-finder/internal/domain"
	"github.com/bnb-finder/internal/domain/repository"
	"github.com/bnb-finder/internal/pkg/errors"
	"github.com/bnb-finder/internal/pkg/ttlcache"
)

// ReferenceUseCase - справочные данные дашборда: районы и ценовые категории.
// Оба значения - снапшоты, пересчитываемые не чаще раза за cacheTTL.
type ReferenceUseCase struct {
	referenceRepo repository.ReferenceRepository
	cacheRepo     repository.CacheRepository // nil, если Redis выключен
	logger        *zap.Logger
	cacheTTL      time.Duration
	now           func() time.Time

	neighborhoods *ttlcache.Cache[[]string]
	categories    *ttlcache.Cache[[]domain.PriceCategory]
}

// NewReferenceUseCase - создание нового ReferenceUseCase
func NewReferenceUseCase(
	referenceRepo repository.ReferenceRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *ReferenceUseCase {
	return &ReferenceUseCase{
		referenceRepo: referenceRepo,
		cacheRepo:     cacheRepo,
		logger:        logger,
		cacheTTL:      cacheTTL,
		now:           time.Now,
		neighborhoods: ttlcache.New[[]string](cacheTTL),
		categories:    ttlcache.New[[]domain.PriceCategory](cacheTTL),
	}
}

// WithClock подменяет часы обоих снапшотов (для тестов)
func (uc *ReferenceUseCase) WithClock(now func() time.Time) *ReferenceUseCase {
	uc.now = now
	uc.neighborhoods.WithClock(now)
	uc.categories.WithClock(now)
	return uc
}

// ListNeighborhoods - уникальные имена районов по возрастанию
func (uc *ReferenceUseCase) ListNeighborhoods(ctx context.Context) ([]string, error) {
	names, hit, err := uc.neighborhoods.GetOrRefreshTimed(ctx, uc.loadNeighborhoods)
	if err != nil {
		return nil, err
	}

	if hit {
		uc.logger.Debug("Neighborhoods served from snapshot", zap.Int("count", len(names)))
	}

	return slices.Clone(names), nil
}

// PriceCategories - четыре ценовые категории по квартилям цен.
// ErrDataUnavailable, если в таблице нет ни одной цены.
func (uc *ReferenceUseCase) PriceCategories(ctx context.Context) ([]domain.PriceCategory, error) {
	categories, hit, err := uc.categories.GetOrRefreshTimed(ctx, uc.loadPriceCategories)
	if err != nil {
		return nil, err
	}

	if hit {
		uc.logger.Debug("Price categories served from snapshot")
	}

	return slices.Clone(categories), nil
}

// CategoryByIndex возвращает категорию по ее номеру (0..3)
func (uc *ReferenceUseCase) CategoryByIndex(ctx context.Context, index int) (domain.PriceCategory, error) {
	categories, err := uc.PriceCategories(ctx)
	if err != nil {
		return domain.PriceCategory{}, err
	}

	if index < 0 || index >= len(categories) {
		return domain.PriceCategory{}, errors.ErrInvalidCategory.WithDetails(map[string]interface{}{
			"category": index,
			"max":      len(categories) - 1,
		})
	}

	return categories[index], nil
}

// Invalidate сбрасывает снапшоты и общий кеш; следующие вызовы перечитают БД
func (uc *ReferenceUseCase) Invalidate(ctx context.Context) error {
	uc.neighborhoods.Invalidate()
	uc.categories.Invalidate()

	if uc.cacheRepo != nil {
		if err := uc.cacheRepo.InvalidateReference(ctx); err != nil {
			uc.logger.Warn("Failed to invalidate shared reference cache", zap.Error(err))
			return errors.ErrCacheError.Wrap(err)
		}
	}

	uc.logger.Info("Reference data invalidated")
	return nil
}

// LastRefreshed - время последнего пересчета справочников
func (uc *ReferenceUseCase) LastRefreshed() (neighborhoods, categories time.Time) {
	return uc.neighborhoods.LastRefreshed(), uc.categories.LastRefreshed()
}

// loadNeighborhoods возвращает районы и время их загрузки из БД.
// Запись из Redis принимается, только если она моложе cacheTTL.
func (uc *ReferenceUseCase) loadNeighborhoods(ctx context.Context) ([]string, time.Time, error) {
	// 1. Общий кеш (Redis)
	if uc.cacheRepo != nil {
		cached, refreshedAt, err := uc.cacheRepo.GetNeighborhoods(ctx)
		if err != nil {
			uc.logger.Warn("Failed to get neighborhoods from cache", zap.Error(err))
		} else if cached != nil && uc.sharedEntryFresh(refreshedAt) {
			uc.logger.Debug("Neighborhoods fetched from shared cache", zap.Time("refreshed_at", refreshedAt))
			return cached, refreshedAt, nil
		}
	}

	// 2. БД
	names, err := uc.referenceRepo.ListNeighborhoods(ctx)
	if err != nil {
		uc.logger.Error("Failed to load neighborhoods", zap.Error(err))
		return nil, time.Time{}, err
	}
	refreshedAt := uc.now()

	uc.logger.Info("Neighborhoods loaded", zap.Int("count", len(names)))

	// 3. Кешируем
	if uc.cacheRepo != nil && uc.cacheTTL > 0 {
		if err := uc.cacheRepo.SetNeighborhoods(ctx, names, refreshedAt, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache neighborhoods", zap.Error(err))
		}
	}

	return names, refreshedAt, nil
}

func (uc *ReferenceUseCase) loadPriceCategories(ctx context.Context) ([]domain.PriceCategory, time.Time, error) {
	if uc.cacheRepo != nil {
		cached, refreshedAt, err := uc.cacheRepo.GetPriceCategories(ctx)
		if err != nil {
			uc.logger.Warn("Failed to get price categories from cache", zap.Error(err))
		} else if len(cached) == domain.PriceCategoryCount && uc.sharedEntryFresh(refreshedAt) {
			uc.logger.Debug("Price categories fetched from shared cache", zap.Time("refreshed_at", refreshedAt))
			return cached, refreshedAt, nil
		}
	}

	prices, err := uc.referenceRepo.ListPrices(ctx)
	if err != nil {
		uc.logger.Error("Failed to load prices", zap.Error(err))
		return nil, time.Time{}, err
	}

	categories, err := domain.BuildPriceCategories(prices)
	if stderrors.Is(err, domain.ErrNoPrices) {
		uc.logger.Warn("No prices available for price categories")
		return nil, time.Time{}, errors.ErrDataUnavailable.Wrap(err)
	}
	if err != nil {
		return nil, time.Time{}, err
	}
	refreshedAt := uc.now()

	uc.logger.Info("Price categories computed",
		zap.Int("prices", len(prices)),
		zap.Strings("labels", categoryLabels(categories)),
	)

	if uc.cacheRepo != nil && uc.cacheTTL > 0 {
		if err := uc.cacheRepo.SetPriceCategories(ctx, categories, refreshedAt, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache price categories", zap.Error(err))
		}
	}

	return categories, refreshedAt, nil
}

// sharedEntryFresh - запись общего кеша с известным временем расчета и моложе cacheTTL
func (uc *ReferenceUseCase) sharedEntryFresh(refreshedAt time.Time) bool {
	if refreshedAt.IsZero() || uc.cacheTTL <= 0 {
		return false
	}
	return uc.now().Sub(refreshedAt) < uc.cacheTTL
}

func categoryLabels(categories []domain.PriceCategory) []string {
	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = c.Label
	}
	return labels
}
