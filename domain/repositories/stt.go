package repositories

import (
	"context"
	"errors"
)

// ErrUnsupportedEncoding is returned when a recognizer cannot decode the
// requested audio encoding.
var ErrUnsupportedEncoding = errors.New("unsupported audio encoding")

// SpeechToText abstracts speech recognition services
type SpeechToText interface {
	// TranscribeAudio converts audio data to text
	TranscribeAudio(ctx context.Context, audioData []byte, config AudioConfig) (string, error)
}

// AudioConfig represents audio configuration for speech recognition
type AudioConfig struct {
	SampleRate int    `json:"sample_rate"`
	Encoding   string `json:"encoding"`
	Language   string `json:"language"`
}
