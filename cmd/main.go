package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/farolia/farol/internal/api"
	"github.com/farolia/farol/internal/app"
	"github.com/farolia/farol/internal/config"
	"github.com/farolia/farol/internal/logging"
	"github.com/farolia/farol/internal/observability"
	"github.com/farolia/farol/internal/realtime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	if _, err := cfg.RequireAPIKey(); err != nil {
		logger.Warn("OPENAI_API_KEY not set, /webrtc will answer not_configured")
	}

	metrics := observability.NewMetrics(cfg.MetricsNamespace, prometheus.DefaultRegisterer)

	// Initialize adapters and usecase services
	ctx := context.Background()
	backend, err := app.NewBackend(ctx, cfg, metrics, logger)
	if err != nil {
		logger.Fatal("Failed to initialize backend", zap.Error(err))
	}
	defer backend.Close()

	e := api.NewServer(metrics, logger)
	renderer, err := realtime.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to load page templates", zap.Error(err))
	}
	e.Renderer = renderer

	// Initialize API routes
	api.InitRoutes(e, cfg, backend.Services, metrics, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Farol backend started",
		zap.String("port", cfg.Port),
		zap.String("model", cfg.Model),
		zap.String("voice", cfg.Voice),
		zap.String("tts_provider", cfg.TTS.Provider),
		zap.String("stt_provider", cfg.STT.Provider))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
