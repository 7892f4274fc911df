package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/farolia/farol/usecase"
)

func bindScreenshot(c echo.Context, logger *zap.Logger) (ScreenshotRequest, error) {
	var req ScreenshotRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Failed to bind screenshot request", zap.Error(err))
		return req, invalidRequest(c, err)
	}
	if err := c.Validate(&req); err != nil {
		logger.Warn("Invalid screenshot URL", zap.String("url", req.URL), zap.Error(err))
		return req, validationFailed(c, err)
	}
	return req, nil
}

func takeScreenshot(c echo.Context, screenshots *usecase.ScreenshotService, logger *zap.Logger) error {
	req, err := bindScreenshot(c, logger)
	if err != nil || c.Response().Committed {
		return err
	}
	logger.Info("Screenshot requested", zap.String("url", req.URL))

	artifact, err := screenshots.Capture(c.Request().Context(), req.URL)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidURL) {
			return validationFailed(c, err)
		}
		logger.Error("Screenshot failed",
			zap.String("url", req.URL),
			zap.Error(err),
			zap.Stack("stack"))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "screenshot_failed",
			Message: fmt.Sprintf("Erro ao tirar screenshot: %s", err),
		})
	}

	return c.JSON(http.StatusOK, FileResponse{
		Status:           statusSuccess,
		CaminhoDoArquivo: artifact.Name,
	})
}

func describeScreen(c echo.Context, screenshots *usecase.ScreenshotService, logger *zap.Logger) error {
	req, err := bindScreenshot(c, logger)
	if err != nil || c.Response().Committed {
		return err
	}
	logger.Info("Screen description requested", zap.String("url", req.URL))

	artifact, description, err := screenshots.CaptureAndDescribe(c.Request().Context(), req.URL)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, DescriptionResponse{
			Status:           statusSuccess,
			CaminhoDoArquivo: artifact.Name,
			Descricao:        description,
		})
	case isNotConfigured(err):
		logger.Error("Screen description not configured", zap.Error(err))
		return notConfigured(c, err)
	case errors.Is(err, usecase.ErrInvalidURL):
		return validationFailed(c, err)
	case artifact != nil:
		// The capture worked; only the description vendor failed.
		logger.Error("Screen description failed",
			zap.String("url", req.URL),
			zap.String("path", artifact.Path),
			zap.Error(err))
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "describe_failed",
			Message: fmt.Sprintf("Erro ao descrever tela: %s", err),
		})
	default:
		logger.Error("Screenshot failed",
			zap.String("url", req.URL),
			zap.Error(err),
			zap.Stack("stack"))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "screenshot_failed",
			Message: fmt.Sprintf("Erro ao tirar screenshot: %s", err),
		})
	}
}
