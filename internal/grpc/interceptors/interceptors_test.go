package interceptors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"jobly/internal/logging"
)

var info = &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

func TestRecoveryInterceptor(t *testing.T) {
	intercept := RecoveryInterceptor(logging.NewMultiLogger())

	resp, err := intercept(context.Background(), nil, info, func(context.Context, interface{}) (interface{}, error) {
		panic("boom")
	})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestLoggingInterceptorPassesThrough(t *testing.T) {
	intercept := LoggingInterceptor(logging.NewMultiLogger())
	want := errors.New("failed")

	resp, err := intercept(context.Background(), "req", info, func(_ context.Context, req interface{}) (interface{}, error) {
		return req, want
	})

	assert.Equal(t, "req", resp)
	assert.ErrorIs(t, err, want)
}

func TestRequestIDFromMetadata(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "abc"))
	assert.Equal(t, "abc", requestID(ctx))

	assert.NotEmpty(t, requestID(context.Background()))
}
