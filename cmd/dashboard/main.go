package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/farolia/farol/adapters"
	"github.com/farolia/farol/adapters/mongo"
	"github.com/farolia/farol/domain/repositories"
	"github.com/farolia/farol/internal/auth"
	"github.com/farolia/farol/internal/config"
	"github.com/farolia/farol/internal/dashboard"
	"github.com/farolia/farol/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var profiles repositories.ProfileRepository
	if cfg.Mongo.URI != "" {
		client, err := mongo.NewClient(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database}, logger)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer client.Close(context.Background())
		profiles = mongo.NewProfileRepository(client.Database, logger)
	} else {
		logger.Warn("MONGODB_URI not set, candidate profiles are kept in memory")
		profiles = adapters.NewMemoryProfileRepository()
	}

	if cfg.Dashboard.Secret == "" {
		logger.Warn("DASHBOARD_SECRET not set, view cookies reset on restart")
	}
	tokens, err := auth.NewViewTokens(cfg.Dashboard.Secret, 0)
	if err != nil {
		logger.Fatal("Failed to create view token signer", zap.Error(err))
	}

	handler, err := dashboard.NewHandler(tokens, profiles, dashboard.Options{
		BackendPublicURL: cfg.BackendPublicURL,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to load dashboard templates", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogMethod: true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	}))
	handler.Register(e)

	go func() {
		if err := e.Start(":" + cfg.Dashboard.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the dashboard", zap.Error(err))
		}
	}()

	logger.Info("Farol dashboard started",
		zap.String("port", cfg.Dashboard.Port),
		zap.String("backend", cfg.BackendPublicURL))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Dashboard forced to shutdown", zap.Error(err))
	}
	logger.Info("Dashboard exited")
}
