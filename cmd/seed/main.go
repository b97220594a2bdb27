// Command seed loads the default equipment catalog into the database.
// Running it again creates nothing new.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtroode/ride2gather-server/internal/config"
	"github.com/dtroode/ride2gather-server/internal/logger"
	"github.com/dtroode/ride2gather-server/internal/model"
	"github.com/dtroode/ride2gather-server/internal/repository/postgres"
	"github.com/dtroode/ride2gather-server/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	equipment := service.NewEquipment(postgres.NewEquipmentRepository(db), logger)
	created, err := equipment.SeedCatalog(ctx, model.DefaultEquipmentCatalog)
	if err != nil {
		logger.Error("failed to seed equipment catalog", "error", err)
		os.Exit(1)
	}

	logger.Info("equipment catalog seeded",
		"created", created,
		"catalog_size", len(model.DefaultEquipmentCatalog))
}
