package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lapin-reform/siteops/internal/capture"
	"github.com/lapin-reform/siteops/internal/core/domain"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain and upstream errors to deterministic HTTP codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Upstream endpoint errors keep their taxonomy: the endpoint rejected
	// the submission (422), the endpoint could not be reached (502), or no
	// endpoint is deployed at all (503).
	var appErr *sheet.AppError
	if errors.As(err, &appErr) {
		return http.StatusUnprocessableEntity, appErr.Message
	}
	var transportErr *sheet.TransportError
	if errors.As(err, &transportErr) {
		log.Warn().Err(err).Str("path", c.Path()).Msg("upstream transport failure")
		return http.StatusBadGateway, "spreadsheet endpoint unreachable"
	}
	if errors.Is(err, sheet.ErrNotConfigured) {
		return http.StatusServiceUnavailable, "spreadsheet endpoint not configured"
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrRetiredAccount):
		return http.StatusForbidden, "account is retired"
	case errors.Is(err, domain.ErrInvalidPasscode):
		return http.StatusUnauthorized, "invalid passcode"
	case errors.Is(err, domain.ErrDuplicateSubmission):
		return http.StatusConflict, "duplicate submission"
	case errors.Is(err, domain.ErrInvalidPunch), errors.Is(err, domain.ErrUnknownPunch):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Input rejected before any network call. The message is the user-facing
	// explanation, so it travels as-is.
	switch {
	case errors.Is(err, capture.ErrNotAnImage),
		errors.Is(err, capture.ErrImageTooLarge),
		errors.Is(err, domain.ErrNoImages),
		errors.Is(err, domain.ErrUnknownPhotoCategory),
		errors.Is(err, domain.ErrTooManyPhotos):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
