package handler

import (
	"context"
	"net/http"
	"time"

	"funntour/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const readinessTimeout = 2 * time.Second

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	db *gorm.DB
}

// NewHealthHandler is the constructor for HealthHandler
func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Live handles GET /health
func (h *HealthHandler) Live(c echo.Context) error {
	return response.OK(c, map[string]string{"status": "ok"})
}

// Ready handles GET /health/ready by pinging the primary database.
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		return response.Error(c, http.StatusServiceUnavailable, "DATABASE_UNAVAILABLE", "Banco de dados indisponível", nil)
	}

	return response.OK(c, map[string]string{"status": "ready"})
}
