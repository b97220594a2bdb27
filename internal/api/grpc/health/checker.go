// Package health keeps the gRPC health service in step with the backing stores.
package health

import (
	"context"
	"sort"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dtroode/ride2gather-server/internal/logger"
	"github.com/dtroode/ride2gather-server/internal/model"
)

const pingTimeout = 3 * time.Second

// Checker pings dependencies and publishes the result on the health server.
// The overall service ("") is SERVING only when every dependency answers.
type Checker struct {
	server   *health.Server
	deps     map[string]model.Pinger
	interval time.Duration
	logger   *logger.Logger
}

// NewChecker marks the overall service NOT_SERVING until the first check passes.
func NewChecker(server *health.Server, interval time.Duration, logger *logger.Logger) *Checker {
	server.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	return &Checker{
		server:   server,
		deps:     make(map[string]model.Pinger),
		interval: interval,
		logger:   logger,
	}
}

// Add registers a dependency reported under its own service name. Not safe after Run.
func (c *Checker) Add(name string, p model.Pinger) {
	c.deps[name] = p
}

// Check pings every dependency once and reports whether all are healthy.
func (c *Checker) Check(ctx context.Context) bool {
	names := make([]string, 0, len(c.deps))
	for name := range c.deps {
		names = append(names, name)
	}
	sort.Strings(names)

	healthy := true
	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := c.deps[name].Ping(pingCtx)
		cancel()

		st := healthpb.HealthCheckResponse_SERVING
		if err != nil {
			healthy = false
			st = healthpb.HealthCheckResponse_NOT_SERVING
			c.logger.Warn("Health checker: dependency unavailable",
				"dependency", name,
				"error", err.Error())
		}
		c.server.SetServingStatus(name, st)
	}

	overall := healthpb.HealthCheckResponse_SERVING
	if !healthy {
		overall = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.server.SetServingStatus("", overall)
	return healthy
}

// Run checks immediately and then every interval until ctx is done,
// after which every service reports NOT_SERVING.
func (c *Checker) Run(ctx context.Context) error {
	c.Check(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.server.Shutdown()
			return nil
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}
