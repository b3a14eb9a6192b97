package repository

import (
	"context"
	"time"

	"github.com/bnb-finder/internal/domain"
)

// CacheRepository определяет методы для работы с общим кешем справочников
type CacheRepository interface {
	// Get получает значение из кеша по ключу (nil, nil при промахе)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значения из кеша
	Delete(ctx context.Context, keys ...string) error

	// GetNeighborhoods получает список районов из кеша и время их загрузки из БД
	// (nil, zero, nil при промахе)
	GetNeighborhoods(ctx context.Context) ([]string, time.Time, error)

	// SetNeighborhoods сохраняет список районов вместе со временем загрузки
	SetNeighborhoods(ctx context.Context, names []string, refreshedAt time.Time, ttl time.Duration) error

	// GetPriceCategories получает ценовые категории из кеша и время их расчета
	GetPriceCategories(ctx context.Context) ([]domain.PriceCategory, time.Time, error)

	// SetPriceCategories сохраняет ценовые категории вместе со временем расчета
	SetPriceCategories(ctx context.Context, categories []domain.PriceCategory, refreshedAt time.Time, ttl time.Duration) error

	// InvalidateReference удаляет оба справочника
	InvalidateReference(ctx context.Context) error
}
