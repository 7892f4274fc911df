package repositories

import (
	"context"
	"fmt"
	"io"
)

// SpeechRequest is a single synthesis call. Instructions are passed to the
// vendor out of band and are never spoken.
type SpeechRequest struct {
	Text         string
	Instructions string
}

// TextToSpeech abstracts speech synthesis vendors.
type TextToSpeech interface {
	// Synthesize streams the synthesized audio into w.
	Synthesize(ctx context.Context, req SpeechRequest, w io.Writer) error
}

// APIError is a non-2xx answer from a vendor API. StatusCode is the vendor's
// HTTP status, or 0 when it is unknown.
type APIError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s API error: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}
