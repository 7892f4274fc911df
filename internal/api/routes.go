package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/farolia/farol/domain/entities"
	"github.com/farolia/farol/internal/config"
	"github.com/farolia/farol/internal/observability"
	"github.com/farolia/farol/internal/realtime"
	"github.com/farolia/farol/usecase"
)

// Services bundles the use cases the HTTP surface delegates to
type Services struct {
	Speech        *usecase.SpeechService
	Screenshots   *usecase.ScreenshotService
	Transcription *usecase.TranscriptionService
}

// InitRoutes initializes all API routes
func InitRoutes(e *echo.Echo, cfg config.Config, services Services, metrics *observability.Metrics, logger *zap.Logger) {
	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// Realtime interview page
	e.POST("/session", func(c echo.Context) error {
		return deprecatedSession(c, logger)
	})
	e.GET("/webrtc", func(c echo.Context) error {
		return webrtcPage(c, cfg, logger)
	})
	e.StaticFS("/static", realtime.StaticFS())

	e.POST("/logs", func(c echo.Context) error {
		return collectLog(c, metrics, logger)
	})

	fala := e.Group("/fala")
	fala.POST("/gerar-audio", func(c echo.Context) error {
		return generateAudio(c, services.Speech, logger)
	})
	fala.POST("/transcrever", func(c echo.Context) error {
		return transcribe(c, services.Transcription, logger)
	})

	screenshot := e.Group("/screenshot")
	screenshot.POST("/tirar-print", func(c echo.Context) error {
		return takeScreenshot(c, services.Screenshots, logger)
	})
	screenshot.POST("/descrever", func(c echo.Context) error {
		return describeScreen(c, services.Screenshots, logger)
	})
}

func deprecatedSession(c echo.Context, logger *zap.Logger) error {
	logger.Warn("Deprecated /session endpoint called",
		zap.String("remote_ip", c.RealIP()))
	return c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   "deprecated",
		Message: "Este endpoint não é usado na configuração de ligação direta.",
	})
}

func webrtcPage(c echo.Context, cfg config.Config, logger *zap.Logger) error {
	page, err := realtime.NewPage(cfg)
	if err != nil {
		logger.Error("Realtime page requested without API key", zap.Error(err))
		return notConfigured(c, err)
	}

	logger.Info("Rendering realtime page",
		zap.String("client_id", page.ClientID),
		zap.String("model", page.Model),
		zap.String("voice", page.Voice))

	return c.Render(http.StatusOK, realtime.PageTemplate, page)
}

// knownLogTypes bounds the metric label set; anything else counts as "other".
var knownLogTypes = map[string]bool{
	"page_load": true, "mic": true, "dc": true, "dc_event": true, "dc_raw": true,
	"media": true, "pc": true, "ice": true, "rtc": true, "sdp_error": true,
	"connected": true, "error": true, "vendor_error": true,
	"transcript_user": true, "transcript_assistant": true,
}

func collectLog(c echo.Context, metrics *observability.Metrics, logger *zap.Logger) error {
	var event entities.LogEvent
	if err := c.Bind(&event); err != nil {
		logger.Warn("Failed to bind client log", zap.Error(err))
		return invalidRequest(c, err)
	}
	if err := c.Validate(&event); err != nil {
		logger.Warn("Invalid client log", zap.Error(err))
		return validationFailed(c, err)
	}

	fields := []zap.Field{
		zap.String("client_id", event.ClientID),
		zap.String("type", event.Type),
	}
	if event.Message != nil {
		fields = append(fields, zap.String("message", *event.Message))
	}
	if event.Data != nil {
		fields = append(fields, zap.Any("data", event.Data))
	}
	logger.Info("client.log", fields...)

	label := event.Type
	if !knownLogTypes[label] {
		label = "other"
	}
	metrics.ClientLogs.WithLabelValues(label).Inc()

	return c.JSON(http.StatusOK, AckResponse{OK: true})
}

func invalidRequest(c echo.Context, err error) error {
	msg := "Invalid request format"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}
	return c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "invalid_request",
		Message: msg,
	})
}

func validationFailed(c echo.Context, err error) error {
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			msg = m
		}
	}
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_failed",
		Message: msg,
	})
}

func notConfigured(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   "not_configured",
		Message: err.Error(),
	})
}

// isNotConfigured reports configuration errors that must surface as 500 not_configured.
func isNotConfigured(err error) bool {
	return errors.Is(err, config.ErrMissingAPIKey) || errors.Is(err, config.ErrMissingGeminiKey)
}
