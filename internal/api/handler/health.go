package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wanderly/auth-service/internal/core/ports"
)

// HealthHandler handles GET /health — liveness probe plus the current record
// count. No auth required.
type HealthHandler struct {
	repo ports.UserRepository
}

func NewHealthHandler(repo ports.UserRepository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

type healthResponse struct {
	Status    string    `json:"status"`
	Users     int       `json:"users"`
	Timestamp time.Time `json:"timestamp"`
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "ok",
		Users:     h.repo.Count(c.Request().Context()),
		Timestamp: time.Now().UTC(),
	})
}
