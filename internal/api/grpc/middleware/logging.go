package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/blog-auth-server/internal/logger"
)

// Logging is a unary interceptor that logs gRPC requests and results.
type Logging struct {
	logger *logger.Logger
}

func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method, duration and status code. Token material in
// metadata is never logged.
func (l *Logging) HandleGRPC(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	l.logger.Debug("gRPC request started", "method", info.FullMethod)

	resp, err := handler(ctx, req)

	code := status.Code(err)
	if _, ok := status.FromError(err); !ok {
		code = codes.Internal
	}

	args := []any{
		"method", info.FullMethod,
		"duration_ms", time.Since(start).Milliseconds(),
		"status", code.String(),
	}
	switch code {
	case codes.OK:
		l.logger.Info("gRPC request completed", args...)
	case codes.Unauthenticated, codes.PermissionDenied, codes.InvalidArgument:
		l.logger.Warn("gRPC request rejected", args...)
	default:
		l.logger.Error("gRPC request failed", append(args, "error", err.Error())...)
	}

	return resp, err
}
