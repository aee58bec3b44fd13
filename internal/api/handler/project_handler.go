package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/core/ports"
)

type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	CustomerName     string   `json:"customer_name" validate:"required"`
	CustomerNameKana string   `json:"customer_name_kana"`
	PostalCode       string   `json:"postal_code"`
	Address          string   `json:"address" validate:"required"`
	Phone            string   `json:"phone" validate:"required"`
	Email            string   `json:"email" validate:"omitempty,email"`
	WorkDescription  string   `json:"work_description"`
	WorkTypes        []string `json:"work_types"`
	EstimatedAmount  int      `json:"estimated_amount"`
	AcquisitionRoute string   `json:"acquisition_route"`
	InquiryDate      string   `json:"inquiry_date"`
	AssignedTo       string   `json:"assigned_to"`
	Notes            string   `json:"notes"`
}

// Create registers a new project from the intake form.
func (h *ProjectHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.Create(c.Request().Context(), actor, ports.CreateProjectInput{
		CustomerName:     req.CustomerName,
		CustomerNameKana: req.CustomerNameKana,
		PostalCode:       req.PostalCode,
		Address:          req.Address,
		Phone:            req.Phone,
		Email:            req.Email,
		WorkDescription:  req.WorkDescription,
		WorkTypes:        req.WorkTypes,
		EstimatedAmount:  req.EstimatedAmount,
		AcquisitionRoute: req.AcquisitionRoute,
		InquiryDate:      req.InquiryDate,
		AssignedTo:       req.AssignedTo,
		Notes:            req.Notes,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, project)
}

// Options returns the project picker entries.
func (h *ProjectHandler) Options(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	options, err := h.projectService.Options(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"projects": options})
}

// Employees returns active staff for the assignment picker.
func (h *ProjectHandler) Employees(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	employees, err := h.projectService.Employees(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"employees": employees})
}

// CompanySettings passes the settings sheet through.
func (h *ProjectHandler) CompanySettings(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	settings, err := h.projectService.CompanySettings(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, settings)
}
