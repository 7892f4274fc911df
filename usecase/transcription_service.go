package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/farolia/farol/domain/repositories"
)

// defaultEncoding matches what browser MediaRecorder produces.
const defaultEncoding = "WEBM_OPUS"

var ErrNoAudio = errors.New("nenhum áudio enviado")

// TranscriptionService converts a recorded answer into text for the signup form.
type TranscriptionService struct {
	stt      repositories.SpeechToText
	language string
	logger   *zap.Logger
}

func NewTranscriptionService(stt repositories.SpeechToText, language string, logger *zap.Logger) *TranscriptionService {
	return &TranscriptionService{stt: stt, language: language, logger: logger}
}

// Transcribe returns the recognized text. An empty encoding defaults to WEBM_OPUS.
func (s *TranscriptionService) Transcribe(ctx context.Context, audio []byte, encoding string, sampleRate int) (string, error) {
	if len(audio) == 0 {
		return "", ErrNoAudio
	}
	if encoding == "" {
		encoding = defaultEncoding
	}

	text, err := s.stt.TranscribeAudio(ctx, audio, repositories.AudioConfig{
		SampleRate: sampleRate,
		Encoding:   encoding,
		Language:   s.language,
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}

	s.logger.Info("Transcription completed",
		zap.Int("audioSize", len(audio)),
		zap.Int("textLength", len(text)))
	return text, nil
}
