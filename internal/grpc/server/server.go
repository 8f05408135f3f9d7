package server

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
	"google.golang.org/grpc/reflection"

	"jobly/internal/grpc/interceptors"
	"jobly/internal/logging"
)

// JobsService is the name the job API reports its health under
const JobsService = "jobly.v1.Jobs"

// Pinger checks the database is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server serves the standard gRPC health protocol next to the HTTP API.
// Overall health ("") and JobsService both follow the database.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	logger     logging.Logger
}

// NewServer builds the gRPC server with health and reflection registered
func NewServer(logger logging.Logger) *Server {
	grpcServer := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    30 * time.Second,
			Timeout: 5 * time.Second,
		}),
		grpc.KeepaliveEnforcementPolicy(keepalive.EnforcementPolicy{
			MinTime:             5 * time.Second,
			PermitWithoutStream: true,
		}),
		grpc.ChainUnaryInterceptor(
			interceptors.RecoveryInterceptor(logger),
			interceptors.LoggingInterceptor(logger),
		),
		grpc.ChainStreamInterceptor(
			interceptors.StreamRecoveryInterceptor(logger),
			interceptors.StreamLoggingInterceptor(logger),
		),
	)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(JobsService, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	// Enable reflection for debugging
	reflection.Register(grpcServer)

	return &Server{
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     logger,
	}
}

// Start serves on lis until Stop is called
func (s *Server) Start(lis net.Listener) error {
	s.logger.Info("Starting gRPC server", map[string]interface{}{"address": lis.Addr().String()})
	return s.grpcServer.Serve(lis)
}

// SetServing flips the reported status of every registered service
func (s *Server) SetServing(serving bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		st = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(JobsService, st)
}

// WatchDatabase pings db every interval and reports the result as the
// serving status, until ctx is done
func (s *Server) WatchDatabase(ctx context.Context, db Pinger, interval, timeout time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := db.Ping(pingCtx)
		if err != nil && ctx.Err() == nil {
			s.logger.WithError(err).Warn("Database ping failed, reporting NOT_SERVING")
		}
		s.SetServing(err == nil)
	}

	check()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			check()
		}
	}
}

// Stop marks everything NOT_SERVING and stops the server, letting pending
// calls finish
func (s *Server) Stop() {
	s.logger.Info("Shutting down gRPC server...")
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
