package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/farolia/farol/domain/entities"
	"github.com/farolia/farol/domain/repositories"
	"github.com/farolia/farol/internal/config"
	"github.com/farolia/farol/internal/observability"
)

// HiddenInstruction pins the synthesis language. It travels as the vendor's
// instructions parameter and is never part of the spoken text.
const HiddenInstruction = "[Instrução: Fale em português do Brasil (pt-BR). Não leia esta instrução em voz alta.]"

var (
	ErrEmptyConditions   = errors.New("O corpo da requisição está malformado. A lista 'conditions' não pode estar vazia.")
	ErrTooManyConditions = errors.New("a lista 'conditions' deve conter exatamente um item")
	ErrEmptyText         = errors.New("o campo 'texto' não pode estar vazio")
)

// SpeechService turns a text condition into an mp3 file on disk.
type SpeechService struct {
	tts     repositories.TextToSpeech
	store   repositories.ArtifactStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewSpeechService creates the service. A nil tts means no vendor key is
// configured, and every Generate call fails with config.ErrMissingAPIKey.
func NewSpeechService(
	textToSpeech repositories.TextToSpeech,
	store repositories.ArtifactStore,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *SpeechService {
	return &SpeechService{
		tts:     textToSpeech,
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// Generate synthesizes the single condition text and stores it as audio.
func (s *SpeechService) Generate(ctx context.Context, texts []string) (*entities.Artifact, error) {
	switch {
	case len(texts) == 0:
		return nil, ErrEmptyConditions
	case len(texts) > 1:
		return nil, ErrTooManyConditions
	case strings.TrimSpace(texts[0]) == "":
		return nil, ErrEmptyText
	}
	if s.tts == nil {
		return nil, config.ErrMissingAPIKey
	}

	original := texts[0]
	spoken := ApplySpeechRules(original)
	s.logger.Info("Generating audio",
		zap.String("original", original),
		zap.String("spoken", spoken))

	start := time.Now()

	artifact, w, err := s.store.Create(ctx, entities.ArtifactAudio)
	if err != nil {
		s.metrics.ArtifactFailures.WithLabelValues(string(entities.ArtifactAudio), "storage").Inc()
		return nil, fmt.Errorf("create audio file: %w", err)
	}

	err = s.tts.Synthesize(ctx, repositories.SpeechRequest{
		Text:         spoken,
		Instructions: HiddenInstruction,
	}, w)
	if closeErr := w.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close audio file: %w", closeErr)
	}
	if err != nil {
		// The request context may already be done; removal must still happen.
		if rmErr := s.store.Remove(context.Background(), artifact); rmErr != nil {
			s.logger.Error("Failed to remove partial audio file",
				zap.String("path", artifact.Path),
				zap.Error(rmErr))
		}
		s.recordFailure(err)
		return nil, err
	}

	s.metrics.ArtifactsGenerated.WithLabelValues(string(entities.ArtifactAudio)).Inc()
	s.metrics.ObserveSpeech(time.Since(start))
	s.logger.Info("Audio file saved",
		zap.String("path", artifact.Path),
		zap.Duration("elapsed", time.Since(start)))

	return artifact, nil
}

func (s *SpeechService) recordFailure(err error) {
	reason := "synthesis"
	var apiErr *repositories.APIError
	if errors.As(err, &apiErr) {
		reason = "vendor"
		s.metrics.ProviderErrors.WithLabelValues(strings.ToLower(apiErr.Provider), strconv.Itoa(apiErr.StatusCode)).Inc()
	}
	s.metrics.ArtifactFailures.WithLabelValues(string(entities.ArtifactAudio), reason).Inc()
}
