package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type loginRequest struct {
	IDToken     string `json:"id_token"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

type elevateRequest struct {
	Passcode string `json:"passcode" validate:"required"`
}

type actorResponse struct {
	UserID  string `json:"user_id"`
	Name    string `json:"name"`
	Role    string `json:"role"`
	Retired bool   `json:"retired"`
}

type authResponse struct {
	Token string        `json:"token"`
	User  actorResponse `json:"user"`
}

func toActorResponse(a ports.Actor) actorResponse {
	return actorResponse{UserID: a.UserID, Name: a.Name, Role: a.Role, Retired: a.Retired}
}

// Login resolves the platform identity and issues a local session token.
// It never fails on upstream trouble: an unverifiable login degrades to the
// demo identity, so the response is always 200 with a usable session.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		IDToken:     req.IDToken,
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: toActorResponse(result.Actor)})
}

// Elevate re-issues the caller's session with the admin role after a
// passcode check.
func (h *AuthHandler) Elevate(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var req elevateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Elevate(c.Request().Context(), actor, req.Passcode)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{Token: result.Token, User: toActorResponse(result.Actor)})
}

// Me echoes the identity carried by the presented token.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toActorResponse(actor))
}
