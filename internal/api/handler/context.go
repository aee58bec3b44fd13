package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/core/ports"
)

// actorFrom extracts the identity injected by the Auth middleware. A missing
// user_id means the middleware did not run on this route; fail fast with 401
// before any service call.
func actorFrom(c echo.Context) (ports.Actor, error) {
	userID, _ := c.Get("user_id").(string)
	if userID == "" {
		return ports.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	name, _ := c.Get("name").(string)
	role, _ := c.Get("role").(string)
	retired, _ := c.Get("retired").(bool)

	return ports.Actor{UserID: userID, Name: name, Role: role, Retired: retired}, nil
}
