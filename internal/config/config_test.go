package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"PORT", "SHUTDOWN_TIMEOUT", "LOG_LEVEL", "MODEL", "VOICE", "SILENCE_MS",
		"OPENAI_API_KEY", "API_KEY", "INSTRUCTIONS", "BACKEND_PUBLIC_URL",
		"METRICS_NAMESPACE", "AUDIO_DIR", "SCREENSHOT_DIR", "TTS_PROVIDER",
		"TTS_MODEL", "TTS_VOICE", "OPENAI_BASE_URL", "ELEVEN_LABS_API_KEY",
		"ELEVEN_LABS_VOICE_ID", "ELEVEN_LABS_MODEL_ID", "STT_PROVIDER",
		"STT_LANGUAGE", "GEMINI_API_KEY", "GEMINI_MODEL", "MONGODB_URI",
		"MONGODB_DATABASE", "SCREENSHOT_TIMEOUT", "SCREENSHOT_MAX_CONCURRENCY",
		"CHROME_PATH", "CHROME_NO_SANDBOX", "DASHBOARD_PORT", "DASHBOARD_SECRET",
	}
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8011", cfg.Port)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "marin", cfg.Voice)
	assert.Equal(t, 600, cfg.SilenceMS)
	assert.Equal(t, DefaultInstructions, cfg.Instructions)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "http://localhost:8011", cfg.BackendPublicURL)
	assert.Equal(t, "audio_gerado", cfg.AudioDir)
	assert.Equal(t, "screenshots_gerados", cfg.ScreenshotDir)
	assert.Equal(t, "openai", cfg.TTS.Provider)
	assert.Equal(t, "gpt-4o-mini-tts", cfg.TTS.Model)
	assert.Equal(t, "sage", cfg.TTS.Voice)
	assert.Equal(t, "mock", cfg.STT.Provider)
	assert.Equal(t, 60*time.Second, cfg.Screenshot.Timeout)
	assert.Equal(t, 0, cfg.Screenshot.MaxConcurrency)
	assert.False(t, cfg.Screenshot.NoSandbox)
	assert.Empty(t, cfg.APIKey)
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODEL", "gpt-realtime")
	t.Setenv("VOICE", "alloy")
	t.Setenv("SILENCE_MS", "900")
	t.Setenv("OPENAI_API_KEY", "  sk-test  ")
	t.Setenv("INSTRUCTIONS", "Seja breve.")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BACKEND_PUBLIC_URL", "https://farol.example.com/")
	t.Setenv("SCREENSHOT_TIMEOUT", "15s")
	t.Setenv("CHROME_NO_SANDBOX", "TRUE")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gpt-realtime", cfg.Model)
	assert.Equal(t, "alloy", cfg.Voice)
	assert.Equal(t, 900, cfg.SilenceMS)
	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "Seja breve.", cfg.Instructions)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, "https://farol.example.com", cfg.BackendPublicURL)
	assert.Equal(t, 15*time.Second, cfg.Screenshot.Timeout)
	assert.True(t, cfg.Screenshot.NoSandbox)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"silence not a number": {"SILENCE_MS", "soon"},
		"silence zero":         {"SILENCE_MS", "0"},
		"bad timeout":          {"SCREENSHOT_TIMEOUT", "forever"},
		"negative concurrency": {"SCREENSHOT_MAX_CONCURRENCY", "-1"},
		"unknown tts":          {"TTS_PROVIDER", "espeak"},
		"unknown stt":          {"STT_PROVIDER", "whisper"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestRequireAPIKey(t *testing.T) {
	_, err := Config{}.RequireAPIKey()
	assert.True(t, errors.Is(err, ErrMissingAPIKey))

	key, err := Config{APIKey: "sk-1"}.RequireAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-1", key)
}

func TestSpeechAPIKeyFallsBackToSecondaryKey(t *testing.T) {
	key, err := Config{FallbackAPIKey: "sk-secondary"}.SpeechAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-secondary", key)

	key, err = Config{APIKey: "sk-primary", FallbackAPIKey: "sk-secondary"}.SpeechAPIKey()
	require.NoError(t, err)
	assert.Equal(t, "sk-primary", key)

	_, err = Config{}.SpeechAPIKey()
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
