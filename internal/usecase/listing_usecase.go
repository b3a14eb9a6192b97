package usecase

import (
	"context"
	stderrors "errors"
	"time"

	"go.uber.org/zap"

	"github.com/bnb-finder/internal/domain"
	"github.com/bnb-finder/internal/domain/repository"
	"github.com/bnb-finder/internal/pkg/errors"
	"github.com/bnb-finder/internal/usecase/dto"
)

// ListingUseCase - поиск объявлений по фильтру
type ListingUseCase struct {
	listingRepo repository.ListingRepository
	logger      *zap.Logger
}

// NewListingUseCase - создание нового ListingUseCase
func NewListingUseCase(listingRepo repository.ListingRepository, logger *zap.Logger) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		logger:      logger,
	}
}

// FetchListings выполняет один запрос к БД. Пустой результат - успех, а не ошибка;
// ошибки БД (ErrQueryFailed) пробрасываются без изменений.
func (uc *ListingUseCase) FetchListings(ctx context.Context, filter domain.ListingFilter) ([]domain.Listing, error) {
	if err := filter.PriceRange.Validate(); err != nil {
		return nil, errors.ErrInvalidPriceRange.WithDetails(map[string]interface{}{
			"range": filter.PriceRange.String(),
		})
	}

	start := time.Now()
	listings, err := uc.listingRepo.FetchListings(ctx, filter)
	if err != nil {
		uc.logger.Error("Failed to fetch listings",
			zap.String("neighborhood", filter.Neighborhood),
			zap.Error(err),
		)
		return nil, err
	}

	uc.logger.Info("Listings fetched",
		zap.String("neighborhood", filter.Neighborhood),
		zap.Stringer("price_range", filter.PriceRange),
		zap.Bool("near_subway", filter.NearSubway),
		zap.Int("count", len(listings)),
		zap.Duration("took", time.Since(start)),
	)

	return listings, nil
}

// Search - JSON поиск с явным интервалом цен; район обязателен
func (uc *ListingUseCase) Search(ctx context.Context, req dto.ListingSearchRequest) (*dto.ListingsResponse, error) {
	filter := domain.NewListingFilter(
		req.Neighborhood,
		domain.NewPriceRange(req.PriceMin, req.PriceMax),
		req.NearSubway,
	)

	if err := filter.Validate(); err != nil {
		return nil, toAppError(err)
	}

	listings, err := uc.FetchListings(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ListingsResponse{
		Neighborhood: filter.Neighborhood,
		PriceMin:     filter.PriceRange.Low,
		PriceMax:     filter.PriceRange.High,
		NearSubway:   filter.NearSubway,
		Listings:     listings,
		Total:        len(listings),
	}, nil
}

// toAppError переводит доменные ошибки валидации в ошибки API
func toAppError(err error) error {
	switch {
	case stderrors.Is(err, domain.ErrNeighborhoodRequired):
		return errors.ErrValidationFailed
	case stderrors.Is(err, domain.ErrInvalidPriceRange):
		return errors.ErrInvalidPriceRange
	default:
		return err
	}
}
