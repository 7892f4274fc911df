package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	// ErrMissingAPIKey is returned when an operation needs the vendor key and none is configured.
	ErrMissingAPIKey = errors.New("OPENAI_API_KEY não configurada")
	// ErrMissingGeminiKey is returned when screen description is requested without a Gemini key.
	ErrMissingGeminiKey = errors.New("GEMINI_API_KEY não configurada")
)

// Config is the process-wide configuration snapshot. It is built once by Load
// and passed by value to every component; nothing mutates it afterwards.
type Config struct {
	Port            string
	ShutdownTimeout time.Duration
	LogLevel        string

	// Realtime session parameters embedded in the browser page.
	Model        string
	Voice        string
	SilenceMS    int
	APIKey       string
	Instructions string

	// Secondary key accepted by the speech endpoint when APIKey is empty.
	FallbackAPIKey string

	BackendPublicURL string
	MetricsNamespace string

	AudioDir      string
	ScreenshotDir string

	TTS        TTSConfig
	STT        STTConfig
	Gemini     GeminiConfig
	Mongo      MongoConfig
	Screenshot ScreenshotConfig
	Dashboard  DashboardConfig
}

type TTSConfig struct {
	Provider          string
	Model             string
	Voice             string
	BaseURL           string
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string
	ElevenLabsModelID string
}

type STTConfig struct {
	Provider string
	Language string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type MongoConfig struct {
	URI      string
	Database string
}

type ScreenshotConfig struct {
	Timeout        time.Duration
	MaxConcurrency int
	ChromePath     string
	NoSandbox      bool
}

type DashboardConfig struct {
	Port   string
	Secret string
}

// Load reads a .env file when present, then the environment, applying the
// defaults the service has always shipped with.
func Load() (Config, error) {
	// A missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := Config{
		Port:             envOrDefault("PORT", "8011"),
		LogLevel:         strings.ToUpper(envOrDefault("LOG_LEVEL", "INFO")),
		Model:            envOrDefault("MODEL", "gpt-4o"),
		Voice:            envOrDefault("VOICE", "marin"),
		APIKey:           strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		FallbackAPIKey:   strings.TrimSpace(os.Getenv("API_KEY")),
		Instructions:     DefaultInstructions,
		BackendPublicURL: strings.TrimRight(envOrDefault("BACKEND_PUBLIC_URL", "http://localhost:8011"), "/"),
		MetricsNamespace: envOrDefault("METRICS_NAMESPACE", "farol"),
		AudioDir:         envOrDefault("AUDIO_DIR", "audio_gerado"),
		ScreenshotDir:    envOrDefault("SCREENSHOT_DIR", "screenshots_gerados"),
		TTS: TTSConfig{
			Provider:          strings.ToLower(envOrDefault("TTS_PROVIDER", "openai")),
			Model:             envOrDefault("TTS_MODEL", "gpt-4o-mini-tts"),
			Voice:             envOrDefault("TTS_VOICE", "sage"),
			BaseURL:           envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			ElevenLabsAPIKey:  strings.TrimSpace(os.Getenv("ELEVEN_LABS_API_KEY")),
			ElevenLabsVoiceID: os.Getenv("ELEVEN_LABS_VOICE_ID"),
			ElevenLabsModelID: os.Getenv("ELEVEN_LABS_MODEL_ID"),
		},
		STT: STTConfig{
			Provider: strings.ToLower(envOrDefault("STT_PROVIDER", "mock")),
			Language: envOrDefault("STT_LANGUAGE", "pt-BR"),
		},
		Gemini: GeminiConfig{
			APIKey: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
			Model:  envOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Mongo: MongoConfig{
			URI:      strings.TrimSpace(os.Getenv("MONGODB_URI")),
			Database: envOrDefault("MONGODB_DATABASE", "farol"),
		},
		Screenshot: ScreenshotConfig{
			ChromePath: os.Getenv("CHROME_PATH"),
			NoSandbox:  strings.EqualFold(os.Getenv("CHROME_NO_SANDBOX"), "true"),
		},
		Dashboard: DashboardConfig{
			Port:   envOrDefault("DASHBOARD_PORT", "8501"),
			Secret: os.Getenv("DASHBOARD_SECRET"),
		},
	}

	// The persona text is injected verbatim, so it is not trimmed.
	if v := os.Getenv("INSTRUCTIONS"); strings.TrimSpace(v) != "" {
		cfg.Instructions = v
	}

	var err error
	if cfg.SilenceMS, err = intFromEnv("SILENCE_MS", 600); err != nil {
		return Config{}, err
	}
	if cfg.SilenceMS <= 0 {
		return Config{}, fmt.Errorf("SILENCE_MS must be positive")
	}
	if cfg.ShutdownTimeout, err = durationFromEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Screenshot.Timeout, err = durationFromEnv("SCREENSHOT_TIMEOUT", 60*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.Screenshot.MaxConcurrency, err = intFromEnv("SCREENSHOT_MAX_CONCURRENCY", 0); err != nil {
		return Config{}, err
	}
	if cfg.Screenshot.MaxConcurrency < 0 {
		return Config{}, fmt.Errorf("SCREENSHOT_MAX_CONCURRENCY must be >= 0")
	}

	switch cfg.TTS.Provider {
	case "openai", "elevenlabs", "mock":
	default:
		return Config{}, fmt.Errorf("invalid TTS_PROVIDER: %q (expected openai|elevenlabs|mock)", cfg.TTS.Provider)
	}
	switch cfg.STT.Provider {
	case "google", "mock":
	default:
		return Config{}, fmt.Errorf("invalid STT_PROVIDER: %q (expected google|mock)", cfg.STT.Provider)
	}

	return cfg, nil
}

// RequireAPIKey returns the realtime vendor key or ErrMissingAPIKey.
func (c Config) RequireAPIKey() (string, error) {
	if c.APIKey == "" {
		return "", ErrMissingAPIKey
	}
	return c.APIKey, nil
}

// SpeechAPIKey returns the key used for speech synthesis: OPENAI_API_KEY, then API_KEY.
func (c Config) SpeechAPIKey() (string, error) {
	if c.APIKey != "" {
		return c.APIKey, nil
	}
	if c.FallbackAPIKey != "" {
		return c.FallbackAPIKey, nil
	}
	return "", ErrMissingAPIKey
}

func envOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func intFromEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}
