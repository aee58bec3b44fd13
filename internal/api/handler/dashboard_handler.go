package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/core/ports"
)

type DashboardHandler struct {
	dashboardService ports.DashboardService
}

func NewDashboardHandler(dashboardService ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns the admin dashboard view. Admin only.
func (h *DashboardHandler) Overview(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	filter := ports.SummaryFilter{
		ProjectID: c.QueryParam("project_id"),
		Category:  c.QueryParam("category"),
	}
	if y := c.QueryParam("year"); y != "" {
		if filter.Year, err = strconv.Atoi(y); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "year must be numeric")
		}
	}
	if m := c.QueryParam("month"); m != "" {
		if filter.Month, err = strconv.Atoi(m); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "month must be numeric")
		}
	}

	view, err := h.dashboardService.Overview(c.Request().Context(), actor, filter)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, view)
}
