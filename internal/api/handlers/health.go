package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"jobly/internal/api/middleware"
	"jobly/internal/logging"
	"jobly/pkg/models"
)

// Version is reported by the health endpoints
var Version = "1.0.0"

var startTime = time.Now()

// Pinger checks a dependency is reachable; *pgxpool.Pool satisfies it
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	logging.GetGlobalLogger().Debug("Health check requested", map[string]interface{}{
		"request_id": middleware.GetRequestID(c),
	})

	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	})
}

// ReadinessHandler reports ready only while the database answers a ping
func ReadinessHandler(db Pinger, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.LogWithRequestID(middleware.GetRequestID(c))

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		status, code, dbCheck := "ready", http.StatusOK, "ok"
		if err := db.Ping(ctx); err != nil {
			logger.WithError(err).Warn("Readiness check failed")
			status, code, dbCheck = "not_ready", http.StatusServiceUnavailable, "unreachable"
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   Version,
			Uptime:    time.Since(startTime),
			Checks: map[string]string{
				"api":      "ok",
				"database": dbCheck,
			},
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(startTime),
	})
}

// StatusHandler reports the service and database status together
func StatusHandler(db Pinger, timeout time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		defer cancel()

		dbStatus := "operational"
		if err := db.Ping(ctx); err != nil {
			dbStatus = "degraded"
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    "operational",
			Timestamp: time.Now(),
			Version:   Version,
			Uptime:    time.Since(startTime),
			Checks: map[string]string{
				"api":      "operational",
				"database": dbStatus,
			},
		})
	}
}

// RootHandler answers the bare service root
func RootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"service": "jobly",
		"version": Version,
		"status":  "running",
	})
}
