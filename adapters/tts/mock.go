package tts

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/farolia/farol/domain/repositories"
)

// mockFrame is a single silent MPEG-1 Layer III frame header followed by zero
// padding, enough for players to accept the file.
var mockFrame = append([]byte{0xFF, 0xFB, 0x90, 0x64}, make([]byte, 413)...)

// MockTTS writes a short silent mp3 for every request. Used for local
// development and tests when no vendor key is available.
type MockTTS struct {
	frames int
	logger *zap.Logger
}

var _ repositories.TextToSpeech = (*MockTTS)(nil)

func NewMockTTS(logger *zap.Logger) *MockTTS {
	return &MockTTS{frames: 4, logger: logger}
}

func (m *MockTTS) Synthesize(ctx context.Context, req repositories.SpeechRequest, w io.Writer) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	for i := 0; i < m.frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := w.Write(mockFrame); err != nil {
			return err
		}
	}
	m.logger.Debug("Mock audio written", zap.Int("frames", m.frames))
	return nil
}
