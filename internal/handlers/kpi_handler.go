package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"kpi-service/internal/services"
	"kpi-service/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type KPIHandler struct {
	Engine *services.Engine
}

func NewKPIHandler(engine *services.Engine) *KPIHandler {
	return &KPIHandler{Engine: engine}
}

func (h *KPIHandler) Register(app *fiber.App) {
	kpiGr := app.Group("/kpi/api/v1")

	kpiGr.Get("/production", h.section(services.SectionProduction))
	kpiGr.Get("/energy", h.section(services.SectionEnergy))
	kpiGr.Get("/steam", h.section(services.SectionSteam))
	kpiGr.Get("/availability", h.section(services.SectionAvailability))
	kpiGr.Get("/quality", h.section(services.SectionQuality))
	kpiGr.Get("/recipe-adherence", h.section(services.SectionRecipe))
	kpiGr.Get("/silos", h.section(services.SectionSilos))
	kpiGr.Get("/reliability", h.section(services.SectionReliability))
	kpiGr.Get("/packaging", h.section(services.SectionPackaging))

	kpiGr.Get("/overview", h.GetOverview)
}

// section builds the handler for one calculator's endpoint.
func (h *KPIHandler) section(name string) fiber.Handler {
	return func(c fiber.Ctx) error {
		window, err := services.ResolveWindow(c.Query("start"), c.Query("end"))
		if err != nil {
			slog.Error("rejected kpi window", "section", name, "error", err)
			return c.Status(http.StatusBadRequest).JSON(
				utils.CreateErrorResponse("INVALID_WINDOW", err.Error()))
		}

		data, err := h.Engine.RunSection(c.Context(), name, window)
		if err != nil {
			return writeSectionError(c, name, err)
		}
		return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(data))
	}
}

func (h *KPIHandler) GetOverview(c fiber.Ctx) error {
	window, err := services.ResolveWindow(c.Query("start"), c.Query("end"))
	if err != nil {
		slog.Error("rejected kpi window", "error", err)
		return c.Status(http.StatusBadRequest).JSON(
			utils.CreateErrorResponse("INVALID_WINDOW", err.Error()))
	}

	overview := h.Engine.Run(c.Context(), window)
	return c.Status(http.StatusOK).JSON(utils.CreateSuccessResponse(overview))
}

func writeSectionError(c fiber.Ctx, name string, err error) error {
	slog.Error("kpi section failed", "section", name, "error", err)

	switch {
	case errors.Is(err, services.ErrDataSourceTimeout):
		return c.Status(http.StatusGatewayTimeout).JSON(
			utils.CreateErrorResponse("DATA_SOURCE_TIMEOUT", err.Error()))
	case errors.Is(err, services.ErrDataSourceUnavailable):
		return c.Status(http.StatusServiceUnavailable).JSON(
			utils.CreateErrorResponse("DATA_SOURCE_UNAVAILABLE", err.Error()))
	default:
		return c.Status(http.StatusInternalServerError).JSON(
			utils.CreateErrorResponse("INTERNAL_SERVER_ERROR", "Failed to compute KPI section"))
	}
}
