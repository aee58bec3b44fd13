package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/lapin-reform/siteops/internal/session"
	"github.com/lapin-reform/siteops/internal/sheet"
)

// Auth validates the local JWT, injects the resolved identity into the echo
// context, and attaches the user's persisted sheet-session token to the
// request context so every downstream call is authenticated upstream too.
func Auth(jwtSecret string, sessions session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			userID, _ := claims["sub"].(string)
			retired, _ := claims["retired"].(bool)
			c.Set("user_id", userID)
			c.Set("name", claims["name"])
			c.Set("role", claims["role"])
			c.Set("retired", retired)

			if sessions != nil && userID != "" {
				if tok, err := sessions.Get(c.Request().Context(), userID); err == nil && tok != "" {
					req := c.Request()
					c.SetRequest(req.WithContext(sheet.WithToken(req.Context(), tok)))
				}
			}

			return next(c)
		}
	}
}
