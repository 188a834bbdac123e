package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/auth-service/internal/api/handler"
	"github.com/wanderly/auth-service/internal/core/ports"
)

// Auth validates the bearer token (cookie first, then Authorization header)
// and injects the claims into context. Handlers behind it still resolve the
// record from the store; the claims only say who the token was issued to.
func Auth(tokens ports.TokenProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := handler.ExtractToken(c)
			if raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Access token required")
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set("user_id", claims.UserID)
			c.Set("email", claims.Email)

			return next(c)
		}
	}
}
