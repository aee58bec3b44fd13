package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/core/ports"
)

type ReportHandler struct {
	reportService ports.ReportService
}

func NewReportHandler(reportService ports.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

type createReportRequest struct {
	ReportDate string   `json:"report_date"`
	Content    string   `json:"content" validate:"required"`
	ProjectID  string   `json:"project_id"`
	Photos     [][]byte `json:"photos"`
}

// Create submits one daily report. The content is reformatted server-side
// before it reaches the sheet.
func (h *ReportHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req createReportRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	report, err := h.reportService.Submit(c.Request().Context(), actor, ports.CreateReportInput{
		ReportDate: req.ReportDate,
		Content:    req.Content,
		ProjectID:  req.ProjectID,
		Photos:     req.Photos,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, report)
}
