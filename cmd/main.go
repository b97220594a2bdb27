package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health"

	grpchealth "github.com/dtroode/ride2gather-server/internal/api/grpc/health"
	grpcrouter "github.com/dtroode/ride2gather-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/ride2gather-server/internal/api/grpc/server"
	httprouter "github.com/dtroode/ride2gather-server/internal/api/http/router"
	httpserver "github.com/dtroode/ride2gather-server/internal/api/http/server"
	"github.com/dtroode/ride2gather-server/internal/config"
	"github.com/dtroode/ride2gather-server/internal/logger"
	"github.com/dtroode/ride2gather-server/internal/model"
	"github.com/dtroode/ride2gather-server/internal/password"
	"github.com/dtroode/ride2gather-server/internal/repository/memory"
	"github.com/dtroode/ride2gather-server/internal/repository/postgres"
	"github.com/dtroode/ride2gather-server/internal/server"
	"github.com/dtroode/ride2gather-server/internal/service"
	miniostore "github.com/dtroode/ride2gather-server/internal/storage/minio"
	s3store "github.com/dtroode/ride2gather-server/internal/storage/s3"
	"github.com/dtroode/ride2gather-server/internal/telemetry"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const (
	shutdownTimeout     = 10 * time.Second
	healthCheckInterval = 15 * time.Second
)

type stores struct {
	accounts  model.AccountStore
	equipment model.EquipmentStore
	pinger    model.Pinger
	close     func() error
}

type blobStore interface {
	model.BlobStore
	model.Pinger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	logAppVersion()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry.Endpoint, cfg.Telemetry.ServiceName, buildVersion)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer func() {
		if err := st.close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	blobs, err := openBlobStore(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize blob storage", "error", err)
	}

	hasher := password.NewHasher(cfg.Hash.Cost, cfg.Hash.Concurrency)
	accountService := service.NewAccount(st.accounts, st.equipment, hasher, logger)
	profileService := service.NewProfile(st.accounts, st.equipment, logger)
	avatarService := service.NewAvatar(blobs, profileService, cfg.HTTP.PublicBaseURL, logger)

	apiRouter := httprouter.New(accountService, profileService, avatarService, cfg.HTTP.MaxJSONBytes, cfg.HTTP.MaxUploadBytes, logger)
	servers := []model.Server{
		httpserver.NewHTTPServer(apiRouter.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port)),
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.GRPC.Enabled {
		healthServer := health.NewServer()
		checker := grpchealth.NewChecker(healthServer, healthCheckInterval, logger)
		checker.Add("database", st.pinger)
		checker.Add("blobs", blobs)
		g.Go(func() error { return checker.Run(gctx) })

		opsRouter := grpcrouter.New(healthServer, logger)
		servers = append(servers, grpcserver.NewGRPCServer(opsRouter.Register(), fmt.Sprintf(":%s", cfg.GRPC.Port)))
	}

	sl := server.NewSecurityLayer(cfg.HTTP.EnableHTTPS, cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	for _, s := range servers {
		g.Go(func() error {
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				return fmt.Errorf("server %s: %w", s.Address(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down servers")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, s := range servers {
			if err := s.Stop(shutdownCtx); err != nil {
				logger.Error("error during server shutdown", "error", err, "address", s.Address())
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
	}
	logger.Info("shutdown complete")
}

func openStores(ctx context.Context, cfg *config.Config, logger *logger.Logger) (stores, error) {
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		mem := memory.NewStore()
		st := stores{
			accounts:  memory.NewAccountRepository(mem),
			equipment: memory.NewEquipmentRepository(mem),
			pinger:    mem,
			close:     func() error { return nil },
		}
		created, err := service.NewEquipment(st.equipment, logger).SeedCatalog(ctx, model.DefaultEquipmentCatalog)
		if err != nil {
			return stores{}, fmt.Errorf("failed to seed equipment catalog: %w", err)
		}
		logger.Info("using in-memory storage", "seeded_equipment", created)
		return st, nil
	default:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return stores{}, err
		}
		return stores{
			accounts:  postgres.NewAccountRepository(db),
			equipment: postgres.NewEquipmentRepository(db),
			pinger:    db,
			close:     db.Close,
		}, nil
	}
}

func openBlobStore(ctx context.Context, cfg *config.Config) (blobStore, error) {
	switch cfg.BlobBackend {
	case config.BlobBackendS3:
		return s3store.New(ctx, s3store.Options{
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			Endpoint:  cfg.S3.Endpoint,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
	default:
		return miniostore.New(ctx, miniostore.Options{
			Endpoint:  cfg.Minio.Endpoint,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			Bucket:    cfg.Minio.Bucket,
			UseSSL:    cfg.Minio.UseSSL,
		})
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
