package handlers

import (
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"farmfresh/internal/caching"
)

// HealthHandlers reports connectivity of the storefront's dependencies.
type HealthHandlers struct {
	db        *pgxpool.Pool
	snapshots caching.SnapshotStore
}

func NewHealthHandlers(db *pgxpool.Pool, snapshots caching.SnapshotStore) *HealthHandlers {
	return &HealthHandlers{db: db, snapshots: snapshots}
}

// HealthStatus is the health endpoint's body.
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// HealthCheck handles GET /health. The snapshot store being down degrades
// the status but does not fail it; carts stop persisting, submissions
// still work.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.db.Ping(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.snapshots.Ping(ctx); err != nil {
		health.Services["snapshots"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["snapshots"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

// ReadinessCheck handles GET /health/ready. The database is the only hard
// dependency for serving traffic.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	if err := h.db.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}
