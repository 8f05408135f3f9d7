package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobly/internal/api/handlers"
	"jobly/internal/api/middleware"
	"jobly/internal/config"
	"jobly/internal/logging"
)

// Dependencies are the services the routes are wired to
type Dependencies struct {
	Jobs    handlers.JobStore
	DB      handlers.Pinger
	Logger  logging.Logger
	Limiter *middleware.RateLimiter // nil disables rate limiting
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, deps Dependencies) {
	e.HTTPErrorHandler = handlers.ErrorHandler(deps.Logger)

	// Global middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(echomiddleware.BodyLimit(cfg.Server.BodyLimit))
	if cfg.Server.RequestTimeout > 0 {
		e.Use(middleware.TimeoutConfig(cfg.Server.RequestTimeout))
	}
	e.Use(middleware.AuthenticateJWT(cfg.Auth.SecretKey))

	pingTimeout := cfg.Database.ConnectTimeout
	if pingTimeout <= 0 {
		pingTimeout = 5 * time.Second
	}

	e.GET("/", handlers.RootHandler)

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.DB, pingTimeout))
		health.GET("/live", handlers.LivenessHandler)
	}

	e.GET("/status", handlers.StatusHandler(deps.DB, pingTimeout))

	jobs := e.Group("/jobs")
	if deps.Limiter != nil {
		jobs.Use(deps.Limiter.Middleware())
	}
	{
		admin := middleware.EnsureAdmin()

		jobs.POST("", handlers.CreateJobHandler(deps.Jobs), admin)
		jobs.GET("", handlers.ListJobsHandler(deps.Jobs))
		jobs.GET("/:id", handlers.GetJobHandler(deps.Jobs))
		jobs.PATCH("/:id", handlers.UpdateJobHandler(deps.Jobs), admin)
		jobs.DELETE("/:id", handlers.DeleteJobHandler(deps.Jobs), admin)
	}
}
