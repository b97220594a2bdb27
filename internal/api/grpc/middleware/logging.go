package middleware

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dtroode/ride2gather-server/internal/logger"
)

// Logging logs gRPC calls on the operational port.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// HandleGRPC logs method name, duration and status for each unary request.
func (l *Logging) HandleGRPC(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	l.log(info.FullMethod, time.Since(start), err)
	return resp, err
}

// HandleGRPCStream logs streaming calls such as health watches once they end.
func (l *Logging) HandleGRPCStream(srv any, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	start := time.Now()
	err := handler(srv, ss)
	l.log(info.FullMethod, time.Since(start), err)
	return err
}

func codeOf(err error) codes.Code {
	if err == nil {
		return codes.OK
	}
	if st, ok := status.FromError(err); ok {
		return st.Code()
	}
	return codes.Internal
}

func (l *Logging) log(method string, duration time.Duration, err error) {
	code := codeOf(err)
	args := []any{
		"method", method,
		"duration_ms", duration.Milliseconds(),
		"status", code.String(),
	}

	switch code {
	case codes.OK:
		l.logger.Info("gRPC request completed", args...)
	case codes.Internal, codes.Unknown, codes.DataLoss, codes.Unavailable:
		l.logger.Error("gRPC request failed", append(args, "error", err.Error())...)
	default:
		l.logger.Warn("gRPC request rejected", append(args, "error", err.Error())...)
	}
}
