package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"jobly/internal/api/middleware"
	"jobly/internal/api/routes"
	"jobly/internal/config"
	"jobly/internal/database"
	grpcserver "jobly/internal/grpc/server"
	"jobly/internal/logging"
	"jobly/internal/mux"
	"jobly/internal/repository"
	"jobly/pkg/utils"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig(utils.GetStringOrDefault(os.Getenv("JOBLY_CONFIG"), "configs/config.yaml"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Jobly API")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.EnsureSchema(ctx, pool); err != nil {
			logger.WithError(err).Fatal("Failed to apply database schema")
		}
	}

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.ClientTTL)
		limiter.StartCleanup(time.Minute)
		defer limiter.Stop()
	}

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	routes.SetupRoutes(e, cfg, routes.Dependencies{
		Jobs:    repository.NewJobRepository(pool),
		DB:      pool,
		Logger:  logger,
		Limiter: limiter,
	})

	var grpcServer *grpcserver.Server
	if cfg.GRPC.HealthEnabled {
		grpcServer = grpcserver.NewServer(logger)
		go grpcServer.WatchDatabase(ctx, pool, 15*time.Second, cfg.Database.ConnectTimeout)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	multiplexer := mux.NewMultiplexer(cfg, logger, grpcServer, e)
	if err := multiplexer.Start(address); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := multiplexer.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Error shutting down server")
	}

	logger.Info("Server shutdown complete")
}
