package repository

import (
	"context"

	"github.com/bnb-finder/internal/domain"
)

// ListingRepository определяет методы поиска объявлений
type ListingRepository interface {
	// FetchListings возвращает объявления, одновременно удовлетворяющие вхождению в район,
	// ценовому интервалу [low, high) и (опционально) близости к метро.
	// Пустое имя района дает пустой результат без запроса к БД.
	FetchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error)
}
