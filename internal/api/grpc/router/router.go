package router

import (
	"context"
	"fmt"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"

	"github.com/dtroode/ride2gather-server/internal/api/grpc/middleware"
	"github.com/dtroode/ride2gather-server/internal/logger"
)

// Router represents the gRPC router for the operational port.
// It serves the standard health service and reflection.
type Router struct {
	health *health.Server
	logger *logger.Logger
}

// New creates new gRPC Router instance.
func New(health *health.Server, logger *logger.Logger) *Router {
	return &Router{health: health, logger: logger}
}

func (r *Router) recoverPanic(_ context.Context, p any) error {
	r.logger.Error("gRPC handler panicked", "panic", fmt.Sprint(p))
	return status.Error(codes.Internal, "internal error")
}

// Register registers the services with logging, panic recovery and tracing.
//
// Returns the configured gRPC server instance.
func (r *Router) Register() *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	recoveryOpt := recovery.WithRecoveryHandlerContext(r.recoverPanic)

	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			logging.HandleGRPC,
			recovery.UnaryServerInterceptor(recoveryOpt),
		),
		grpc.ChainStreamInterceptor(
			logging.HandleGRPCStream,
			recovery.StreamServerInterceptor(recoveryOpt),
		),
	)
	healthpb.RegisterHealthServer(s, r.health)
	reflection.Register(s)

	return s
}
