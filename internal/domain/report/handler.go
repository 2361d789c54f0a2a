package report

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler serves the dashboard JSON API.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the dashboard routes on the given group. The
// group is expected to sit behind the session middleware.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/dashboard/filters", h.GetFilters)
}

// GetDashboard returns the full dashboard view for the selected filters.
// Both query parameters are optional; defaults are resolved from the data.
func (h *Handler) GetDashboard(c echo.Context) error {
	year := c.QueryParam("year")
	group := c.QueryParam("disease_group")

	d, err := h.svc.Dashboard(c.Request().Context(), year, group)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("dashboard query failed: %v", err))
	}
	return c.JSON(http.StatusOK, d)
}

// GetFilters returns just the filter options, for populating controls.
func (h *Handler) GetFilters(c echo.Context) error {
	year := c.QueryParam("year")
	group := c.QueryParam("disease_group")

	f, err := h.svc.Filters(c.Request().Context(), year, group)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("filter query failed: %v", err))
	}
	return c.JSON(http.StatusOK, f)
}
