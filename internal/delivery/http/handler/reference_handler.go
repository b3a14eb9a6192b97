package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bnb-finder/internal/pkg/utils"
	"github.com/bnb-finder/internal/usecase"
	"github.com/bnb-finder/internal/usecase/dto"
)

// ReferenceHandler - обработчик справочников (районы и ценовые категории)
type ReferenceHandler struct {
	referenceUC *usecase.ReferenceUseCase
	logger      *zap.Logger
}

// NewReferenceHandler - создание нового ReferenceHandler
func NewReferenceHandler(referenceUC *usecase.ReferenceUseCase, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		referenceUC: referenceUC,
		logger:      logger,
	}
}

// ListNeighborhoods godoc
// @Summary Список районов
// @Description Уникальные названия районов в порядке возрастания
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.NeighborhoodsResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/neighborhoods [get]
func (h *ReferenceHandler) ListNeighborhoods(c *fiber.Ctx) error {
	names, err := h.referenceUC.ListNeighborhoods(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	refreshedAt, _ := h.referenceUC.LastRefreshed()
	return utils.SendSuccess(c, dto.NeighborhoodsResponse{
		Neighborhoods: names,
		Total:         len(names),
		RefreshedAt:   refreshedAt,
	}, &utils.Meta{Total: len(names)})
}

// PriceCategories godoc
// @Summary Ценовые категории
// @Description Четыре ценовые категории по квартилям цен; интервалы полуоткрытые [low, high)
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.PriceCategoriesResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/price-categories [get]
func (h *ReferenceHandler) PriceCategories(c *fiber.Ctx) error {
	categories, err := h.referenceUC.PriceCategories(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	items := dto.ConvertPriceCategories(categories)
	_, refreshedAt := h.referenceUC.LastRefreshed()
	return utils.SendSuccess(c, dto.PriceCategoriesResponse{Categories: items, RefreshedAt: refreshedAt}, &utils.Meta{Total: len(items)})
}

// Refresh godoc
// @Summary Сброс справочников
// @Description Сбрасывает закешированные районы и категории; следующий запрос перечитает БД
// @Tags Reference
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/reference/refresh [post]
func (h *ReferenceHandler) Refresh(c *fiber.Ctx) error {
	if err := h.referenceUC.Invalidate(c.UserContext()); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, fiber.Map{"invalidated": true}, nil)
}
