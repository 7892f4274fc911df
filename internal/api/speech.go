package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/farolia/farol/domain/repositories"
	"github.com/farolia/farol/internal/logging"
	"github.com/farolia/farol/usecase"
)

const maxAudioUpload = 10 << 20

func generateAudio(c echo.Context, speech *usecase.SpeechService, logger *zap.Logger) error {
	logger.Info("Received /fala/gerar-audio request")

	var req AudioRequest
	if err := c.Bind(&req); err != nil {
		logger.Warn("Failed to bind audio request", zap.Error(err))
		return invalidRequest(c, err)
	}
	if len(req.Conditions) == 0 {
		logger.Warn("Audio request with empty conditions")
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: usecase.ErrEmptyConditions.Error(),
		})
	}
	if err := c.Validate(&req); err != nil {
		logger.Warn("Invalid audio request", zap.Error(err))
		return validationFailed(c, err)
	}

	texts := make([]string, len(req.Conditions))
	for i, cond := range req.Conditions {
		texts[i] = cond.Texto
	}

	artifact, err := speech.Generate(c.Request().Context(), texts)
	if err != nil {
		var apiErr *repositories.APIError
		switch {
		case isNotConfigured(err):
			logger.Error("Speech synthesis not configured", zap.Error(err))
			return notConfigured(c, err)
		case errors.Is(err, usecase.ErrEmptyConditions):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: err.Error()})
		case errors.Is(err, usecase.ErrTooManyConditions), errors.Is(err, usecase.ErrEmptyText):
			return validationFailed(c, err)
		case errors.As(err, &apiErr):
			status := apiErr.StatusCode
			if status < 400 || status > 599 {
				status = http.StatusInternalServerError
			}
			logger.Error("Vendor API error while generating audio",
				zap.String("provider", apiErr.Provider),
				zap.Int("status", apiErr.StatusCode),
				zap.String("vendor_message", apiErr.Message))
			return c.JSON(status, ErrorResponse{
				Error:   "vendor_error",
				Message: fmt.Sprintf("Erro da API %s: %s", apiErr.Provider, apiErr.Message),
			})
		default:
			logging.Critical(logger, "Unexpected error while generating audio", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, ErrorResponse{
				Error:   "internal_error",
				Message: fmt.Sprintf("Erro ao gerar áudio: %s", err),
			})
		}
	}

	return c.JSON(http.StatusOK, FileResponse{
		Status:           statusSuccess,
		CaminhoDoArquivo: artifact.Path,
	})
}

func transcribe(c echo.Context, transcription *usecase.TranscriptionService, logger *zap.Logger) error {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		logger.Warn("Transcription request without audio", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "O campo 'audio' é obrigatório.",
		})
	}
	if fileHeader.Size > maxAudioUpload {
		return c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
			Error:   "payload_too_large",
			Message: "O áudio excede o limite de 10 MB.",
		})
	}

	sampleRate := 0
	if v := c.FormValue("sample_rate"); v != "" {
		sampleRate, err = strconv.Atoi(v)
		if err != nil || sampleRate < 0 {
			return validationFailed(c, fmt.Errorf("sample_rate inválido: %q", v))
		}
	}

	f, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded audio", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: err.Error()})
	}
	defer f.Close()

	audio, err := io.ReadAll(io.LimitReader(f, maxAudioUpload))
	if err != nil {
		logger.Error("Failed to read uploaded audio", zap.Error(err))
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: err.Error()})
	}

	text, err := transcription.Transcribe(c.Request().Context(), audio, c.FormValue("encoding"), sampleRate)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoAudio):
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_request", Message: err.Error()})
		case errors.Is(err, repositories.ErrUnsupportedEncoding):
			return validationFailed(c, err)
		default:
			logger.Error("Transcription failed", zap.Error(err))
			return c.JSON(http.StatusBadGateway, ErrorResponse{
				Error:   "transcription_failed",
				Message: fmt.Sprintf("Erro ao transcrever áudio: %s", err),
			})
		}
	}

	return c.JSON(http.StatusOK, TranscriptionResponse{Status: statusSuccess, Texto: text})
}
