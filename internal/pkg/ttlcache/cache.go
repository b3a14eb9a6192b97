// Package ttlcache хранит один снапшот значения и перечитывает его не чаще раза за интервал.
package ttlcache

import (
	"context"
	"sync"
	"time"
)

// Loader загружает свежее значение
type Loader[T any] func(ctx context.Context) (T, error)

// TimedLoader загружает значение и сообщает, когда оно было рассчитано
// (значение могло прийти из внешнего кеша). Zero time означает "только что".
type TimedLoader[T any] func(ctx context.Context) (T, time.Time, error)

// Cache - снапшот значения с временем обновления и TTL.
// Мьютекс удерживается на время загрузки: конкурентные вызовы внутри одного интервала
// дожидаются первого и получают его результат без повторного запроса.
type Cache[T any] struct {
	mu            sync.Mutex
	value         T
	lastRefreshed time.Time
	ttl           time.Duration
	valid         bool
	now           func() time.Time
}

// New создает пустой кеш. ttl <= 0 отключает кеширование (каждый вызов загружает заново).
func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl: ttl,
		now: time.Now,
	}
}

// WithClock подменяет источник времени (для тестов)
func (c *Cache[T]) WithClock(now func() time.Time) *Cache[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
	return c
}

// GetOrRefresh возвращает закешированное значение, если оно не старше ttl,
// иначе вызывает loader. Ошибки loader не кешируются. hit=true, если loader не вызывался.
func (c *Cache[T]) GetOrRefresh(ctx context.Context, loader Loader[T]) (value T, hit bool, err error) {
	return c.GetOrRefreshTimed(ctx, func(ctx context.Context) (T, time.Time, error) {
		v, err := loader(ctx)
		return v, time.Time{}, err
	})
}

// GetOrRefreshTimed - как GetOrRefresh, но возраст снапшота отсчитывается от времени,
// которое вернул loader. Значение, рассчитанное час назад, не живет еще один ttl.
func (c *Cache[T]) GetOrRefreshTimed(ctx context.Context, loader TimedLoader[T]) (value T, hit bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fresh() {
		return c.value, true, nil
	}

	v, refreshedAt, err := loader(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	now := c.now()
	if refreshedAt.IsZero() || refreshedAt.After(now) {
		refreshedAt = now
	}

	c.value = v
	c.lastRefreshed = refreshedAt
	c.valid = true
	return v, false, nil
}

// LastRefreshed возвращает время последней успешной загрузки (zero, если не загружалось)
func (c *Cache[T]) LastRefreshed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastRefreshed
}

// Invalidate сбрасывает снапшот; следующий GetOrRefresh обратится к loader
func (c *Cache[T]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	var zero T
	c.value = zero
	c.valid = false
	c.lastRefreshed = time.Time{}
}

func (c *Cache[T]) fresh() bool {
	if !c.valid || c.ttl <= 0 {
		return false
	}
	return c.now().Sub(c.lastRefreshed) < c.ttl
}
