package handler

import (
	"bytes"
	"html/template"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/bnb-finder/internal/config"
	"github.com/bnb-finder/internal/pkg/utils"
	"github.com/bnb-finder/internal/pkg/validator"
	"github.com/bnb-finder/internal/usecase"
	"github.com/bnb-finder/internal/usecase/dto"
)

const dashboardTemplate = "index.html"

// DashboardPage - данные для шаблона дашборда
type DashboardPage struct {
	View *dto.DashboardView
	Map  config.MapConfig
}

// DashboardHandler - HTML дашборд с фильтрами и картой
type DashboardHandler struct {
	dashboardUC *usecase.DashboardUseCase
	templates   *template.Template
	mapCfg      config.MapConfig
	logger      *zap.Logger
}

// LoadDashboardTemplates загружает шаблоны из <dir>/dashboard
func LoadDashboardTemplates(dir string) (*template.Template, error) {
	return template.ParseGlob(filepath.Join(dir, "dashboard", "*.html"))
}

// NewDashboardHandler - создание нового DashboardHandler
func NewDashboardHandler(
	dashboardUC *usecase.DashboardUseCase,
	templates *template.Template,
	mapCfg config.MapConfig,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		dashboardUC: dashboardUC,
		templates:   templates,
		mapCfg:      mapCfg,
		logger:      logger,
	}
}

// Render отрисовывает дашборд. Без параметра search=true показываются только фильтры.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	req := h.parseRequest(c)
	view := h.dashboardUC.Search(c.UserContext(), req)

	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, dashboardTemplate, DashboardPage{View: view, Map: h.mapCfg}); err != nil {
		h.logger.Error("Failed to render dashboard", zap.Error(err))
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard")
	}

	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// View godoc
// @Summary Состояние дашборда
// @Description Возвращает то же состояние, что отрисовывает HTML дашборд: справочники, статус поиска, маркеры и центр карты
// @Tags Dashboard
// @Produce json
// @Param neighborhood query string false "Район"
// @Param category query int false "Номер ценовой категории (0..3)" default(0)
// @Param near_subway query bool false "Только в радиусе от станции метро"
// @Param search query bool false "Выполнить поиск"
// @Success 200 {object} utils.SuccessResponse{data=dto.DashboardView}
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) View(c *fiber.Ctx) error {
	req := h.parseRequest(c)
	view := h.dashboardUC.Search(c.UserContext(), req)

	return utils.SendSuccess(c, view, &utils.Meta{
		Total:    view.Total,
		TimeMSec: view.TookMSec,
	})
}

// parseRequest читает выбор пользователя; некорректные параметры сбрасываются к значениям по умолчанию
func (h *DashboardHandler) parseRequest(c *fiber.Ctx) dto.DashboardSearchRequest {
	var req dto.DashboardSearchRequest
	if err := c.QueryParser(&req); err != nil {
		// битая категория не должна сбрасывать остальной выбор
		h.logger.Warn("Invalid dashboard query", zap.Error(err))
		req = dto.DashboardSearchRequest{
			Neighborhood: c.Query("neighborhood"),
			NearSubway:   c.QueryBool("near_subway"),
			Search:       c.QueryBool("search"),
		}
	}

	if err := validator.Validate(&req); err != nil {
		h.logger.Warn("Invalid dashboard selection", zap.Error(err))
		req.Category = 0
	}

	return req
}
