package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"khabarkhana/internal/errors"
	"khabarkhana/internal/service"
)

// AdminHandler handles the admin reporting endpoints.
type AdminHandler struct {
	statsService service.StatsService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(statsService service.StatsService) *AdminHandler {
	return &AdminHandler{statsService: statsService}
}

// Stats godoc
// @Summary Admin dashboard statistics
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DashboardStats
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.statsService.Dashboard(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, stats)
}
