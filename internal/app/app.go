// Package app assembles the backend services from configuration. It is shared
// by the HTTP server and the command line tool.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/farolia/farol/adapters/browser"
	"github.com/farolia/farol/adapters/llm"
	"github.com/farolia/farol/adapters/storage"
	"github.com/farolia/farol/adapters/stt"
	"github.com/farolia/farol/adapters/tts"
	"github.com/farolia/farol/domain/repositories"
	"github.com/farolia/farol/internal/api"
	"github.com/farolia/farol/internal/config"
	"github.com/farolia/farol/internal/observability"
	"github.com/farolia/farol/usecase"
)

// Backend owns the adapters behind the HTTP services.
type Backend struct {
	Services api.Services
	closers  []func() error
}

// NewBackend wires every adapter selected by cfg. Vendors without a key are
// left unset so that the matching endpoint answers "not configured" instead
// of failing at startup.
func NewBackend(ctx context.Context, cfg config.Config, metrics *observability.Metrics, logger *zap.Logger) (*Backend, error) {
	b := &Backend{}

	store, err := storage.NewLocalArtifactStore(cfg.AudioDir, cfg.ScreenshotDir, logger)
	if err != nil {
		return nil, err
	}

	textToSpeech, err := NewTextToSpeech(cfg, logger)
	if err != nil {
		return nil, err
	}

	speechToText, err := b.newSpeechToText(ctx, cfg, logger)
	if err != nil {
		b.Close()
		return nil, err
	}

	describer, err := NewDescriber(ctx, cfg, logger)
	if err != nil {
		b.Close()
		return nil, err
	}

	launcher := browser.NewChromeLauncher(browser.Config{
		ExecPath:  cfg.Screenshot.ChromePath,
		NoSandbox: cfg.Screenshot.NoSandbox,
	}, logger)

	b.Services = api.Services{
		Speech: usecase.NewSpeechService(textToSpeech, store, metrics, logger),
		Screenshots: usecase.NewScreenshotService(launcher, store, describer, usecase.ScreenshotOptions{
			Timeout:        cfg.Screenshot.Timeout,
			MaxConcurrency: cfg.Screenshot.MaxConcurrency,
		}, metrics, logger),
		Transcription: usecase.NewTranscriptionService(speechToText, cfg.STT.Language, logger),
	}
	return b, nil
}

// Close releases vendor clients in reverse order of creation.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		_ = b.closers[i]()
	}
	b.closers = nil
}

// NewTextToSpeech returns the configured synthesis provider, or nil when the
// provider needs a key that is not set.
func NewTextToSpeech(cfg config.Config, logger *zap.Logger) (repositories.TextToSpeech, error) {
	switch cfg.TTS.Provider {
	case "mock":
		logger.Info("Using mock text-to-speech")
		return tts.NewMockTTS(logger), nil

	case "elevenlabs":
		if cfg.TTS.ElevenLabsAPIKey == "" {
			logger.Warn("ELEVEN_LABS_API_KEY not set, speech synthesis disabled")
			return nil, nil
		}
		client, err := tts.NewElevenLabsTTS(tts.ElevenLabsConfig{
			APIKey:  cfg.TTS.ElevenLabsAPIKey,
			VoiceID: cfg.TTS.ElevenLabsVoiceID,
			ModelID: cfg.TTS.ElevenLabsModelID,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("eleven labs: %w", err)
		}
		return client, nil

	default:
		key, err := cfg.SpeechAPIKey()
		if err != nil {
			logger.Warn("OPENAI_API_KEY not set, speech synthesis disabled")
			return nil, nil
		}
		client, err := tts.NewOpenAITTS(tts.OpenAIConfig{
			APIKey:     key,
			APIBaseURL: cfg.TTS.BaseURL,
			Model:      cfg.TTS.Model,
			Voice:      cfg.TTS.Voice,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("openai tts: %w", err)
		}
		return client, nil
	}
}

func (b *Backend) newSpeechToText(ctx context.Context, cfg config.Config, logger *zap.Logger) (repositories.SpeechToText, error) {
	if cfg.STT.Provider != "google" {
		logger.Info("Using mock speech-to-text")
		return stt.NewMockSpeechToText(logger), nil
	}
	client, err := stt.NewGoogleSpeechToText(ctx, logger)
	if err != nil {
		return nil, fmt.Errorf("google speech: %w", err)
	}
	b.closers = append(b.closers, client.Close)
	return client, nil
}

// NewDescriber returns the Gemini screen describer, or nil without GEMINI_API_KEY.
func NewDescriber(ctx context.Context, cfg config.Config, logger *zap.Logger) (repositories.ScreenDescriber, error) {
	if cfg.Gemini.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, screen description disabled")
		return nil, nil
	}
	describer, err := llm.NewGeminiDescriber(ctx, llm.GeminiConfig{
		APIKey: cfg.Gemini.APIKey,
		Model:  cfg.Gemini.Model,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return describer, nil
}
