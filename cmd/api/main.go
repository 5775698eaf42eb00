package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/dishcovery/backend/config"
	"github.com/pageza/dishcovery/backend/internal/api"
	"github.com/pageza/dishcovery/backend/internal/database"
	"github.com/pageza/dishcovery/backend/internal/metrics"
	"github.com/pageza/dishcovery/backend/internal/middleware"
	"github.com/pageza/dishcovery/backend/internal/parser"
	"github.com/pageza/dishcovery/backend/internal/router"
	"github.com/pageza/dishcovery/backend/internal/server"
	"github.com/pageza/dishcovery/backend/internal/service"
	"github.com/pageza/dishcovery/backend/internal/store"
	"github.com/pageza/dishcovery/backend/pkg/logger"
)

func main() {
	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Fatal("Server error", zap.Error(err))
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	ctx := context.Background()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.New(cfg.Database, zapLogger)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	if err := database.RunMigrations(db, zapLogger); err != nil {
		return err
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = database.NewRedisClient(cfg.Redis, zapLogger)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()
	}

	st, err := newStore(ctx, cfg, db, redisClient, zapLogger)
	if err != nil {
		return err
	}

	m := metrics.New()
	catalog := service.NewCatalog(db, service.NewHashEmbedder(), zapLogger)
	if n, err := catalog.Seed(ctx); err != nil {
		return err
	} else if n > 0 {
		zapLogger.Info("Seeded recipe catalog", zap.Int("recipes", n))
	}

	llmOpts := []service.LLMOption{service.WithLLMMetrics(m), service.WithLLMLogger(zapLogger)}
	if redisClient != nil {
		llmOpts = append(llmOpts, service.WithCompletionCache(redisClient, cfg.Gemini.CacheTTL))
	}
	llm := service.NewLLMService(cfg.Gemini, llmOpts...)
	p := parser.New(parser.WithLogger(zapLogger), parser.WithFallbackHook(m.ParserFallback))
	structured := cfg.Gemini.StructuredOutput

	sessions := service.NewSessionService(cfg.Session.JWTSecret, cfg.Session.TTL)
	handlers := api.Handlers{
		Session:   api.NewSessionHandler(sessions),
		Recipes:   api.NewRecipeHandler(service.NewRecipeService(llm, catalog, st, p, structured, zapLogger)),
		Favorites: api.NewFavoritesHandler(service.NewFavoritesService(st)),
		Ratings:   api.NewRatingHandler(service.NewRatingService(st)),
		Leftovers: api.NewLeftoverHandler(service.NewLeftoverService(llm, st, p, structured, zapLogger)),
		Videos:    api.NewVideoHandler(service.NewVideoService(cfg.YouTube, m, zapLogger)),
		Events:    api.NewEventsHandler(st, zapLogger),
	}

	checks := map[string]router.HealthCheck{
		"database": func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	handler := router.SetupRouter(handlers, router.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Validator:      sessions,
		Limiter:        middleware.NewGenerationLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		AddressLimiter: middleware.NewLimiter(redisClient, "generate_ip", cfg.RateLimit.AddressRequests, cfg.RateLimit.Window),
		SessionLimiter: middleware.NewLimiter(redisClient, "session_ip", cfg.RateLimit.SessionRequests, cfg.RateLimit.Window),
		Metrics:        m,
		Logger:         zapLogger,
		HealthChecks:   checks,
	})

	// Create and start server
	srv := server.New(cfg.Server, handler, zapLogger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		zapLogger.Info("Starting server",
			zap.String("addr", cfg.Server.Addr()),
			zap.String("environment", string(cfg.Environment)),
			zap.String("storage", cfg.Storage.Backend))
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			return err
		}
	case sig := <-quit:
		zapLogger.Info("Received signal", zap.String("signal", sig.String()))
	}

	// Gracefully shutdown the server
	zapLogger.Info("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	zapLogger.Info("Server stopped")
	return nil
}

// newStore builds the slot store selected by storage.backend.
func newStore(ctx context.Context, cfg *config.Config, db *gorm.DB, redisClient *redis.Client, zapLogger *zap.Logger) (store.Store, error) {
	switch cfg.Storage.Backend {
	case "redis":
		if redisClient == nil {
			return nil, fmt.Errorf("storage backend redis requires redis configuration")
		}
		return store.NewRedisStore(redisClient, zapLogger), nil
	case "s3":
		client, err := config.NewS3Client(ctx, cfg.Storage.S3)
		if err != nil {
			return nil, err
		}
		return store.NewS3Store(client, cfg.Storage.S3.Bucket, cfg.Storage.S3.Prefix), nil
	case "sql":
		return store.NewSQLStore(db), nil
	default:
		return store.NewMemoryStore(), nil
	}
}
