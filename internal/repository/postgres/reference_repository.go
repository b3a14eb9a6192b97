package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/bnb-finder/internal/domain/repository"
	pkgerrors "github.com/bnb-finder/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type referenceRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
	tables Tables
}

// NewReferenceRepository создает репозиторий справочных данных (районы, цены)
func NewReferenceRepository(db *DB) repository.ReferenceRepository {
	return &referenceRepository{
		db:     db.DB,
		logger: db.logger,
		tables: db.tables,
	}
}

// ListNeighborhoods возвращает уникальные имена районов в побайтовом (COLLATE "C") порядке
func (r *referenceRepository) ListNeighborhoods(ctx context.Context) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT name COLLATE "C" AS name
		FROM %s
		WHERE name IS NOT NULL
		ORDER BY 1
	`, r.tables.Neighborhoods)

	start := time.Now()
	names := []string{}
	err := r.db.SelectContext(ctx, &names, query)
	observeQuery(queryListNeighborhoods, start, len(names), err)
	if err != nil {
		r.logger.Error("failed to list neighborhoods", zap.Error(err))
		return nil, pkgerrors.ErrQueryFailed.Wrap(err)
	}

	return names, nil
}

// ListPrices возвращает все NOT NULL цены объявлений
func (r *referenceRepository) ListPrices(ctx context.Context) ([]decimal.Decimal, error) {
	query := fmt.Sprintf(`
		SELECT price::numeric AS price
		FROM %s
		WHERE price IS NOT NULL
	`, r.tables.Listings)

	start := time.Now()
	prices := []decimal.Decimal{}
	err := r.db.SelectContext(ctx, &prices, query)
	observeQuery(queryListPrices, start, len(prices), err)
	if err != nil {
		r.logger.Error("failed to list prices", zap.Error(err))
		return nil, pkgerrors.ErrQueryFailed.Wrap(err)
	}

	return prices, nil
}
