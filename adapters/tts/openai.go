package tts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/farolia/farol/domain/repositories"
)

const (
	defaultOpenAIBaseURL        = "https://api.openai.com/v1"
	defaultOpenAIModel          = "gpt-4o-mini-tts"
	defaultOpenAIVoice          = "sage"
	defaultOpenAIResponseFormat = "mp3"
	defaultRequestTimeout       = 60 * time.Second
)

// OpenAIConfig holds configuration for the OpenAI speech adapter.
// APIKey is required; everything else falls back to the defaults above.
type OpenAIConfig struct {
	APIKey         string
	APIBaseURL     string
	Model          string
	Voice          string
	ResponseFormat string
	Timeout        time.Duration
}

// OpenAITTS implements TextToSpeech on the OpenAI audio/speech endpoint.
type OpenAITTS struct {
	client         openai.Client
	apiBaseURL     string
	model          string
	voice          string
	responseFormat string
	timeout        time.Duration
	logger         *zap.Logger
}

var _ repositories.TextToSpeech = (*OpenAITTS)(nil)

type openAIErrorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// ValidateOpenAIConfig validates the OpenAIConfig
func ValidateOpenAIConfig(config OpenAIConfig) error {
	if strings.TrimSpace(config.APIKey) == "" {
		return fmt.Errorf("openai API key is required")
	}
	if config.Timeout < 0 {
		return fmt.Errorf("timeout must be positive, got %s", config.Timeout)
	}
	return nil
}

// NewOpenAITTS creates a new OpenAI speech adapter
func NewOpenAITTS(config OpenAIConfig, logger *zap.Logger) (*OpenAITTS, error) {
	if err := ValidateOpenAIConfig(config); err != nil {
		return nil, err
	}

	apiBaseURL := strings.TrimRight(config.APIBaseURL, "/")
	if apiBaseURL == "" {
		apiBaseURL = defaultOpenAIBaseURL
	}
	model := config.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	voice := config.Voice
	if voice == "" {
		voice = defaultOpenAIVoice
	}
	responseFormat := config.ResponseFormat
	if responseFormat == "" {
		responseFormat = defaultOpenAIResponseFormat
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = defaultRequestTimeout
	}

	logger.Info("OpenAI speech adapter configured",
		zap.String("apiBaseURL", apiBaseURL),
		zap.String("model", model),
		zap.String("voice", voice))

	// One attempt per request; vendor failures are reported, not retried.
	client := openai.NewClient(
		option.WithAPIKey(config.APIKey),
		option.WithBaseURL(apiBaseURL+"/"),
		option.WithMaxRetries(0),
	)

	return &OpenAITTS{
		client:         client,
		apiBaseURL:     apiBaseURL,
		model:          model,
		voice:          voice,
		responseFormat: responseFormat,
		timeout:        timeout,
		logger:         logger,
	}, nil
}

// Synthesize implements repositories.TextToSpeech
func (o *OpenAITTS) Synthesize(ctx context.Context, req repositories.SpeechRequest, w io.Writer) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("text cannot be empty")
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	params := openai.AudioSpeechNewParams{
		Model:          openai.SpeechModel(o.model),
		Input:          req.Text,
		Voice:          openai.AudioSpeechNewParamsVoice(o.voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormat(o.responseFormat),
	}
	if req.Instructions != "" {
		params.Instructions = openai.String(req.Instructions)
	}

	o.logger.Debug("Sending request to OpenAI speech API",
		zap.String("apiBaseURL", o.apiBaseURL),
		zap.Int("inputLength", len(req.Text)))

	resp, err := o.client.Audio.Speech.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			msg := vendorMessage(apiErr)
			o.logger.Error("OpenAI speech API returned error",
				zap.Int("statusCode", apiErr.StatusCode),
				zap.String("message", msg))
			return &repositories.APIError{
				Provider:   "OpenAI",
				StatusCode: apiErr.StatusCode,
				Message:    msg,
			}
		}
		return fmt.Errorf("failed to execute speech request: %w", err)
	}
	defer resp.Body.Close()

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to stream audio: %w", err)
	}

	o.logger.Info("Finished streaming audio",
		zap.Int64("totalBytes", n),
		zap.String("contentType", resp.Header.Get("Content-Type")))
	return nil
}

// vendorMessage prefers the SDK's parsed message and falls back to the raw
// error body kept on the response.
func vendorMessage(apiErr *openai.Error) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if apiErr.Response != nil && apiErr.Response.Body != nil {
		body, _ := io.ReadAll(io.LimitReader(apiErr.Response.Body, 64<<10))
		return openAIErrorMessage(body, apiErr.Response.Status)
	}
	return http.StatusText(apiErr.StatusCode)
}

func openAIErrorMessage(body []byte, status string) string {
	var parsed openAIErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return status
}
