package interceptors

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"jobly/internal/logging"
	"jobly/pkg/utils"
)

// LoggingInterceptor returns a gRPC unary interceptor that logs every call
func LoggingInterceptor(logger logging.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		startTime := time.Now()

		resp, err := handler(ctx, req)

		logCall(logger, requestID(ctx), info.FullMethod, time.Since(startTime), err)
		return resp, err
	}
}

// StreamLoggingInterceptor returns a gRPC streaming interceptor that logs
// each stream once it ends
func StreamLoggingInterceptor(logger logging.Logger) grpc.StreamServerInterceptor {
	return func(
		srv interface{},
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		startTime := time.Now()

		err := handler(srv, ss)

		logCall(logger, requestID(ss.Context()), info.FullMethod, time.Since(startTime), err)
		return err
	}
}

func logCall(logger logging.Logger, requestID, method string, elapsed time.Duration, err error) {
	fields := map[string]interface{}{
		"request_id":      requestID,
		"method":          method,
		"processing_time": elapsed.String(),
		"status_code":     status.Code(err).String(),
	}

	if err != nil && status.Code(err) != codes.NotFound {
		logger.WithError(err).Error("gRPC request failed", fields)
		return
	}
	logger.Debug("gRPC request completed", fields)
}

// requestID returns the caller's x-request-id metadata or a fresh id
func requestID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if ids := md.Get("x-request-id"); len(ids) > 0 && ids[0] != "" {
			return ids[0]
		}
	}
	return utils.GenerateRequestID()
}
