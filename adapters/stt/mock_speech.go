package stt

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/farolia/farol/domain/repositories"
)

// MockSpeechToText is a placeholder implementation for speech recognition
type MockSpeechToText struct {
	logger *zap.Logger
}

// NewMockSpeechToText creates a new mock speech-to-text service
func NewMockSpeechToText(logger *zap.Logger) *MockSpeechToText {
	return &MockSpeechToText{logger: logger}
}

// TranscribeAudio implements repositories.SpeechToText
func (s *MockSpeechToText) TranscribeAudio(ctx context.Context, audioData []byte, config repositories.AudioConfig) (string, error) {
	s.logger.Info("Processing speech-to-text",
		zap.Int("audioSize", len(audioData)),
		zap.Int("sampleRate", config.SampleRate),
		zap.String("encoding", config.Encoding))

	if len(audioData) == 0 {
		return "", fmt.Errorf("no audio data received")
	}

	// Mock transcription based on audio size
	switch {
	case len(audioData) > 10000:
		return "Tenho cinco anos de experiência com desenvolvimento backend e gostaria de falar sobre o meu último projeto.", nil
	case len(audioData) > 5000:
		return "Obrigado pela oportunidade.", nil
	case len(audioData) > 1000:
		return "Olá, Farol!", nil
	default:
		return "Oi", nil
	}
}
