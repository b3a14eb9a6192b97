package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bnb-finder/internal/domain"
	"github.com/bnb-finder/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyNeighborhoods   = "reference:neighborhoods"
	keyPriceCategories = "reference:price_categories"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	err := r.client.Del(ctx, keys...).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.Strings("keys", keys), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.Strings("keys", keys))
	return nil
}

// referenceEntry - значение справочника вместе со временем его расчета из БД
type referenceEntry[T any] struct {
	Value       T         `json:"value"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// GetNeighborhoods получает список районов из кеша и время их загрузки из БД
func (r *cacheRepository) GetNeighborhoods(ctx context.Context) ([]string, time.Time, error) {
	var entry referenceEntry[[]string]
	found, err := r.getJSON(ctx, keyNeighborhoods, &entry)
	if err != nil || !found {
		return nil, time.Time{}, err
	}
	return entry.Value, entry.RefreshedAt, nil
}

// SetNeighborhoods сохраняет список районов в кеше
func (r *cacheRepository) SetNeighborhoods(ctx context.Context, names []string, refreshedAt time.Time, ttl time.Duration) error {
	return r.setJSON(ctx, keyNeighborhoods, referenceEntry[[]string]{Value: names, RefreshedAt: refreshedAt}, ttl)
}

// GetPriceCategories получает ценовые категории из кеша и время их расчета
func (r *cacheRepository) GetPriceCategories(ctx context.Context) ([]domain.PriceCategory, time.Time, error) {
	var entry referenceEntry[[]domain.PriceCategory]
	found, err := r.getJSON(ctx, keyPriceCategories, &entry)
	if err != nil || !found {
		return nil, time.Time{}, err
	}
	return entry.Value, entry.RefreshedAt, nil
}

// SetPriceCategories сохраняет ценовые категории в кеше
func (r *cacheRepository) SetPriceCategories(ctx context.Context, categories []domain.PriceCategory, refreshedAt time.Time, ttl time.Duration) error {
	return r.setJSON(ctx, keyPriceCategories, referenceEntry[[]domain.PriceCategory]{Value: categories, RefreshedAt: refreshedAt}, ttl)
}

func (r *cacheRepository) InvalidateReference(ctx context.Context) error {
	return r.Delete(ctx, keyNeighborhoods, keyPriceCategories)
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil // Cache miss
	}

	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}

	return r.Set(ctx, key, data, ttl)
}
