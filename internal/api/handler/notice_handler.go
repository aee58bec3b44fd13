package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/core/ports"
)

type NoticeHandler struct {
	noticeService ports.NoticeService
}

func NewNoticeHandler(noticeService ports.NoticeService) *NoticeHandler {
	return &NoticeHandler{noticeService: noticeService}
}

type createNoticeRequest struct {
	Title    string `json:"title" validate:"required"`
	Body     string `json:"body" validate:"required"`
	Category string `json:"category"`
	Pinned   bool   `json:"is_pinned"`
}

// Create posts a company-wide announcement. Admin only.
func (h *NoticeHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req createNoticeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	notice, err := h.noticeService.Create(c.Request().Context(), actor, ports.CreateNoticeInput{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Pinned:   req.Pinned,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, notice)
}

// List returns the most recent notices.
func (h *NoticeHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		if limit, err = strconv.Atoi(l); err != nil || limit < 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a non-negative integer")
		}
	}

	notices, err := h.noticeService.List(c.Request().Context(), actor, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"notices": notices})
}
