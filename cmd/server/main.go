package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appservices "github.com/copymastery/copyengine/internal/application/services"
	"github.com/copymastery/copyengine/internal/domain/models"
	"github.com/copymastery/copyengine/internal/infrastructure/config"
	"github.com/copymastery/copyengine/internal/infrastructure/providers"
	"github.com/copymastery/copyengine/internal/presentation/api"
)

func main() {
	// Parse CLI flags
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	host := flag.String("host", "", "Server host (overrides config)")
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Local development convenience; production supplies real env vars.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Apply CLI overrides
	if *host != "" {
		cfg.Server.Host = *host
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := newLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Wire the pipeline
	resolver := appservices.NewIdentityResolver(cfg.Auth.AllowSynthetic, models.Identity{
		ID:       cfg.Auth.Synthetic.ID,
		Username: cfg.Auth.Synthetic.Username,
		Email:    cfg.Auth.Synthetic.Email,
		Name:     cfg.Auth.Synthetic.Name,
	}, logger)
	validator := appservices.NewRequestValidator()
	provider := providers.NewPoeProvider(cfg.Provider, logger)
	pipeline := appservices.NewPipeline(resolver, validator, provider, logger)

	handler := api.NewHandler(pipeline, logger)

	// Setup router
	r := chi.NewRouter()

	// Middleware
	r.Use(api.RequestID)
	r.Use(api.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(api.CORSMiddleware())

	// Routes
	r.Post("/api/generate", handler.Generate)
	r.Get("/api/tools", handler.Tools)
	r.Get("/health", handler.Health)

	// HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", addr))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Fatal("server error", zap.Error(err))

	case sig := <-shutdown:
		logger.Info("shutting down gracefully", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Warn("graceful shutdown failed", zap.Error(err))
			if err := server.Close(); err != nil {
				logger.Fatal("failed to close server", zap.Error(err))
			}
		}

		logger.Info("server stopped")
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
