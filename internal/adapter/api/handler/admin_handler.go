package handler

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/usecase"
	"dukkan/pkg/response"
)

// AdminHandler serves the dashboard numbers and the business advisor.
type AdminHandler struct {
	statsUseCase   *usecase.StatsUseCase
	advisorUseCase *usecase.AdvisorUseCase
}

func NewAdminHandler(statsUseCase *usecase.StatsUseCase, advisorUseCase *usecase.AdvisorUseCase) *AdminHandler {
	return &AdminHandler{
		statsUseCase:   statsUseCase,
		advisorUseCase: advisorUseCase,
	}
}

func (h *AdminHandler) GetDashboardStats(c echo.Context) error {
	stats, err := h.statsUseCase.Dashboard(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

// Advise answers POST /api/ai/:kind.
func (h *AdminHandler) Advise(c echo.Context) error {
	var req usecase.AdvisorInput
	if err := bindAndValidate(c, &req); err != nil {
		return response.Error(c, err)
	}

	answer, err := h.advisorUseCase.Ask(c.Request().Context(), c.Param("kind"), req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, answer)
}
