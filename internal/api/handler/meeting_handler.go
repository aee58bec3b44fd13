package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/core/ports"
)

type MeetingHandler struct {
	meetingService ports.MeetingService
}

func NewMeetingHandler(meetingService ports.MeetingService) *MeetingHandler {
	return &MeetingHandler{meetingService: meetingService}
}

type createMeetingRequest struct {
	ProjectID   string `json:"project_id" validate:"required"`
	MeetingDate string `json:"meeting_date"`
	MeetingType string `json:"meeting_type" validate:"required"`
	Attendees   string `json:"attendees"`
	Content     string `json:"content" validate:"required"`
	NextAction  string `json:"next_action"`
}

type formatTextRequest struct {
	Text       string `json:"text" validate:"required"`
	FormatType string `json:"format_type"`
}

// Create records one customer meeting.
func (h *MeetingHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req createMeetingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	meeting, err := h.meetingService.Create(c.Request().Context(), actor, ports.CreateMeetingInput{
		ProjectID:   req.ProjectID,
		MeetingDate: req.MeetingDate,
		MeetingType: req.MeetingType,
		Attendees:   req.Attendees,
		Content:     req.Content,
		NextAction:  req.NextAction,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, meeting)
}

// List returns the meetings for one project, newest first.
func (h *MeetingHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	projectID := c.QueryParam("project_id")
	if projectID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "project_id is required")
	}

	meetings, err := h.meetingService.List(c.Request().Context(), actor, projectID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]any{"meetings": meetings})
}

// Format reshapes dictated notes into readable text.
func (h *MeetingHandler) Format(c echo.Context) error {
	var req formatTextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	formatted, err := h.meetingService.Format(c.Request().Context(), req.Text, req.FormatType)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]string{"formatted_text": formatted})
}
