package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/dishcovery/backend/config"
	"github.com/pageza/dishcovery/backend/internal/database"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/pkg/logger"
)

func main() {
	// Parse command line flags
	seed := flag.Bool("seed", true, "Seed the recipe catalog when it is empty")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	zapLogger, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: "console", Development: true})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	db, err := database.New(cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, zapLogger); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}
	zapLogger.Info("Migrations complete", zap.String("driver", cfg.Database.Driver))

	if !*seed {
		return
	}
	n, err := service.NewCatalog(db, service.NewHashEmbedder(), zapLogger).Seed(context.Background())
	if err != nil {
		zapLogger.Fatal("Failed to seed catalog", zap.Error(err))
	}
	zapLogger.Info("Catalog seeded", zap.Int("recipes", n))
}
