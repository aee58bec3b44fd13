package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/core/ports"
)

type PhotoHandler struct {
	photoService ports.PhotoService
}

func NewPhotoHandler(photoService ports.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

type uploadPhotosRequest struct {
	ProjectID   string   `json:"project_id" validate:"required"`
	Category    string   `json:"type" validate:"required"`
	PhotoDate   string   `json:"photo_date"`
	Description string   `json:"description"`
	Images      [][]byte `json:"images" validate:"required,min=1"`
}

// Upload registers a batch of site photos for one project.
func (h *PhotoHandler) Upload(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req uploadPhotosRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	photos, err := h.photoService.Upload(c.Request().Context(), actor, ports.UploadPhotosInput{
		ProjectID:   req.ProjectID,
		Category:    req.Category,
		PhotoDate:   req.PhotoDate,
		Description: req.Description,
		Images:      req.Images,
	})
	if err != nil {
		// A mid-batch failure still registered earlier photos; report both.
		if len(photos) > 0 {
			return c.JSON(http.StatusMultiStatus, map[string]any{
				"photos": photos,
				"error":  err.Error(),
			})
		}
		return err
	}

	return c.JSON(http.StatusCreated, map[string]any{"photos": photos})
}
