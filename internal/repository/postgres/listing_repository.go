package postgres

import (
	"context"
	"time"

	"github.com/bnb-finder/internal/domain"
	"github.com/bnb-finder/internal/domain/repository"
	pkgerrors "github.com/bnb-finder/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type listingRepository struct {
	db           *sqlx.DB
	logger       *zap.Logger
	tables       Tables
	subwayRadius float64
}

// NewListingRepository создает репозиторий объявлений. radiusMeters <= 0 - радиус по умолчанию (400 м).
func NewListingRepository(db *DB, radiusMeters float64) repository.ListingRepository {
	if radiusMeters <= 0 {
		radiusMeters = DefaultSubwayRadiusMeters
	}
	return &listingRepository{
		db:           db.DB,
		logger:       db.logger,
		tables:       db.tables,
		subwayRadius: radiusMeters,
	}
}

// FetchListings выполняет один запрос и материализует весь результат
func (r *listingRepository) FetchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	// Пустое имя не совпадает ни с одним районом
	if filter.Neighborhood == "" {
		return []domain.Listing{}, nil
	}

	query, args := BuildListingQuery(r.tables, filter, r.subwayRadius)

	start := time.Now()
	listings := []domain.Listing{}
	err := r.db.SelectContext(ctx, &listings, query, args...)
	observeQuery(queryFetchListings, start, len(listings), err)
	if err != nil {
		r.logger.Error("failed to fetch listings",
			zap.String("neighborhood", filter.Neighborhood),
			zap.Stringer("price_range", filter.PriceRange),
			zap.Bool("near_subway", filter.NearSubway),
			zap.Error(err),
		)
		return nil, pkgerrors.ErrQueryFailed.Wrap(err)
	}

	r.logger.Debug("listings fetched",
		zap.String("neighborhood", filter.Neighborhood),
		zap.Int("count", len(listings)),
		zap.Duration("took", time.Since(start)),
	)

	return listings, nil
}
