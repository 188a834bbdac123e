package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxUserID extracts the user id injected by the Auth middleware and
// fast-fails before any service call: a zero id means the middleware never
// ran on this route, which is a wiring bug surfaced as 401 rather than a
// panic deeper down.
func ctxUserID(c echo.Context) (int64, error) {
	id, _ := c.Get("user_id").(int64)
	if id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
