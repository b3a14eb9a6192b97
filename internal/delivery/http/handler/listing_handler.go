package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bnb-finder/internal/pkg/errors"
	"github.com/bnb-finder/internal/pkg/utils"
	"github.com/bnb-finder/internal/pkg/validator"
	"github.com/bnb-finder/internal/usecase"
	"github.com/bnb-finder/internal/usecase/dto"
)

// ListingHandler - поиск объявлений
type ListingHandler struct {
	listingUC   *usecase.ListingUseCase
	dashboardUC *usecase.DashboardUseCase
	logger      *zap.Logger
}

// NewListingHandler - создание нового ListingHandler
func NewListingHandler(listingUC *usecase.ListingUseCase, dashboardUC *usecase.DashboardUseCase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{
		listingUC:   listingUC,
		dashboardUC: dashboardUC,
		logger:      logger,
	}
}

// List godoc
// @Summary Поиск объявлений по ценовой категории
// @Description Объявления внутри района в выбранной ценовой категории, опционально не дальше заданного радиуса от станции метро
// @Tags Listings
// @Produce json
// @Param neighborhood query string true "Район"
// @Param category query int false "Номер ценовой категории (0..3)" default(0)
// @Param near_subway query bool false "Только рядом с метро"
// @Success 200 {object} utils.SuccessResponse{data=dto.ListingsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/listings [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
	var req dto.DashboardSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"query": err.Error(),
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	filter, err := h.dashboardUC.ResolveFilter(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return h.search(c, dto.ListingSearchRequest{
		Neighborhood: filter.Neighborhood,
		PriceMin:     filter.PriceRange.Low,
		PriceMax:     filter.PriceRange.High,
		NearSubway:   filter.NearSubway,
	})
}

// Search godoc
// @Summary Поиск объявлений по интервалу цен
// @Description Объявления внутри района с ценой в [price_min, price_max)
// @Tags Listings
// @Accept json
// @Produce json
// @Param request body dto.ListingSearchRequest true "Фильтр"
// @Success 200 {object} utils.SuccessResponse{data=dto.ListingsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/listings/search [post]
func (h *ListingHandler) Search(c *fiber.Ctx) error {
	var req dto.ListingSearchRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"body": "invalid request body",
		}))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	return h.search(c, req)
}

func (h *ListingHandler) search(c *fiber.Ctx, req dto.ListingSearchRequest) error {
	start := time.Now()

	result, err := h.listingUC.Search(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total:    result.Total,
		TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
	})
}
