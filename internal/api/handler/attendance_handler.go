package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/core/ports"
)

type AttendanceHandler struct {
	attendanceService ports.AttendanceService
}

func NewAttendanceHandler(attendanceService ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

type punchRequest struct {
	Type string `json:"type" validate:"required"`
}

// Punch records one clock event for the caller.
func (h *AttendanceHandler) Punch(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req punchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status, err := h.attendanceService.Punch(c.Request().Context(), actor, domain.PunchType(req.Type))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, status)
}

// Status reports the caller's clock state for the current day.
func (h *AttendanceHandler) Status(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	status, err := h.attendanceService.Status(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, status)
}
