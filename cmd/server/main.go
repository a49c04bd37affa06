package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/citizenprep/backend/internal/api"
	"github.com/citizenprep/backend/internal/cache"
	"github.com/citizenprep/backend/internal/event"
	"github.com/citizenprep/backend/internal/infrastructure/config"
	"github.com/citizenprep/backend/internal/ingest"
	"github.com/citizenprep/backend/internal/metrics"
	"github.com/citizenprep/backend/internal/service"
	"github.com/citizenprep/backend/internal/store"

	_ "github.com/citizenprep/backend/docs" // generated swagger docs
)

// @title           Citizenship Practice Test API
// @version         1.0
// @description     Practice tests for the citizenship exam: generate balanced tests, grade attempts and track results.

// @host      localhost:8080
// @BasePath  /

func main() {
	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// ── Dependencies ────────────────────────────────────────────────
	pools, err := ingest.LoadDir(cfg.QuestionsDir)
	if err != nil {
		return fmt.Errorf("load questions: %w", err)
	}

	db, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer db.Close()

	setCache, closeCache, err := openCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer closeCache()

	publisher := openPublisher(cfg, logger)
	defer publisher.Close()

	practice, err := service.NewPracticeService(pools, db, setCache, publisher, logger, service.Options{
		FreeLimit: cfg.FreeTestLimit,
		SetTTL:    cfg.TestSetTTL,
		Workers:   cfg.WorkerCount,
	})
	if err != nil {
		return fmt.Errorf("generate tests: %w", err)
	}
	handler := api.NewHandler(practice, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()
	api.RegisterRoutes(mux, handler)
	mux.Handle("GET /metrics", metrics.Handler())

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress, "tests_per_type", practice.Count())
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "sqlite":
		return store.NewSQLite(cfg.SQLitePath)
	case "mongo":
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required for the mongo store")
		}
		return store.NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openCache(ctx context.Context, cfg *config.Config) (cache.SetCache, func(), error) {
	if cfg.RedisAddr == "" {
		return cache.NewMemory(), func() {}, nil
	}
	rc, err := cache.NewRedis(ctx, cache.RedisConfig{
		Address:  cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		return nil, nil, err
	}
	return rc, func() { _ = rc.Close() }, nil
}

func openPublisher(cfg *config.Config, logger *slog.Logger) event.Publisher {
	if cfg.AMQPURL == "" {
		return event.NopPublisher{}
	}
	p, err := event.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
	if err != nil {
		logger.Warn("event publishing disabled", "error", err)
		return event.NopPublisher{}
	}
	return p
}
