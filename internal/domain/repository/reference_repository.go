package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ReferenceRepository определяет справочные запросы по всей таблице
type ReferenceRepository interface {
	// ListNeighborhoods возвращает уникальные имена районов по возрастанию
	ListNeighborhoods(ctx context.Context) ([]string, error)

	// ListPrices возвращает все ненулевые (NOT NULL) цены объявлений
	ListPrices(ctx context.Context) ([]decimal.Decimal, error)
}
