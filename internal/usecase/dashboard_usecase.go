package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/bnb-finder/internal/domain"
	"github.com/bnb-finder/internal/pkg/errors"
	"github.com/bnb-finder/internal/usecase/dto"
)

const (
	MessageIdle       = "Please select filters and click 'Search Listings'."
	MessageNoFilter   = "Please select a neighborhood to search."
	MessageNoListings = "No listings found with selected filters."
)

// DashboardUseCase собирает состояние дашборда: справочники, выбранный фильтр и результат поиска
type DashboardUseCase struct {
	referenceUC  *ReferenceUseCase
	listingUC    *ListingUseCase
	logger       *zap.Logger
	subwayRadius float64
}

// NewDashboardUseCase - создание нового DashboardUseCase
func NewDashboardUseCase(
	referenceUC *ReferenceUseCase,
	listingUC *ListingUseCase,
	logger *zap.Logger,
	subwayRadius float64,
) *DashboardUseCase {
	return &DashboardUseCase{
		referenceUC:  referenceUC,
		listingUC:    listingUC,
		logger:       logger,
		subwayRadius: subwayRadius,
	}
}

// ResolveFilter превращает выбор пользователя (район, номер категории, метро) в ListingFilter.
// Район не проверяется: пустой район - забота Begin/Validate.
func (uc *DashboardUseCase) ResolveFilter(ctx context.Context, req dto.DashboardSearchRequest) (domain.ListingFilter, error) {
	category, err := uc.referenceUC.CategoryByIndex(ctx, req.Category)
	if err != nil {
		return domain.ListingFilter{}, err
	}

	return domain.NewListingFilter(req.Neighborhood, category.Range, req.NearSubway), nil
}

// Search строит представление дашборда. Ошибки не возвращаются наружу:
// они становятся состоянием Error с баннером.
func (uc *DashboardUseCase) Search(ctx context.Context, req dto.DashboardSearchRequest) *dto.DashboardView {
	view := &dto.DashboardView{
		Status:   domain.SearchIdle,
		Selected: req,
		Markers:  []dto.MapMarker{},
		Radius:   uc.subwayRadius,
	}

	neighborhoods, err := uc.referenceUC.ListNeighborhoods(ctx)
	if err != nil {
		return uc.errorView(view, err)
	}
	view.Neighborhoods = neighborhoods

	categories, err := uc.referenceUC.PriceCategories(ctx)
	if err != nil {
		return uc.errorView(view, err)
	}
	view.Categories = dto.ConvertPriceCategories(categories)

	// 1. Кнопка поиска не нажата - только селекторы
	if !req.Search {
		view.Message = MessageIdle
		return view
	}

	filter, err := uc.ResolveFilter(ctx, req)
	if err != nil {
		return uc.errorView(view, err)
	}

	// 2. Валидация: без района в БД не ходим
	state := domain.NewSearchState()
	if err := state.Begin(filter); err != nil {
		view.Status = state.Status
		view.Message = MessageNoFilter
		return view
	}

	// 3. Один запрос к БД
	start := time.Now()
	listings, err := uc.listingUC.FetchListings(ctx, filter)
	view.TookMSec = float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		_ = state.Fail(err)
		return uc.errorView(view, err)
	}
	_ = state.Complete(listings)

	view.Status = state.Status
	view.Total = len(state.Listings)

	view.Title = fmt.Sprintf("Found %d Listings in %s", len(state.Listings), filter.Neighborhood)
	if state.Status == domain.SearchEmpty {
		view.Message = MessageNoListings
		return view
	}

	if lat, lon, ok := state.Center(); ok {
		view.Center = &dto.MapCenter{Lat: lat, Lon: lon}
	}

	view.Markers = make([]dto.MapMarker, 0, len(state.Listings))
	for _, l := range state.Listings {
		view.Markers = append(view.Markers, dto.NewMapMarker(l))
	}

	return view
}

func (uc *DashboardUseCase) errorView(view *dto.DashboardView, err error) *dto.DashboardView {
	uc.logger.Error("Dashboard search failed",
		zap.String("neighborhood", view.Selected.Neighborhood),
		zap.Int("category", view.Selected.Category),
		zap.Error(err),
	)

	view.Status = domain.SearchError
	if appErr, ok := errors.AsAppError(err); ok {
		view.Error = fmt.Sprintf("Error fetching data: %s", appErr.Message)
	} else {
		view.Error = "Error fetching data."
	}
	return view
}
