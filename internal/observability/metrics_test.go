package observability

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCountAndExpose(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("farol_test", reg)

	m.ArtifactsGenerated.WithLabelValues("audio").Inc()
	m.ArtifactsGenerated.WithLabelValues("audio").Inc()
	m.ProviderErrors.WithLabelValues("openai", "429").Inc()
	m.ObserveSpeech(1500 * time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ArtifactsGenerated.WithLabelValues("audio")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ProviderErrors.WithLabelValues("openai", "429")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	text := string(body)
	assert.True(t, strings.Contains(text, `farol_test_artifacts_generated_total{kind="audio"} 2`))
	assert.True(t, strings.Contains(text, "farol_test_speech_generation_seconds_count 1"))
}

func TestMetricsSeparateRegistries(t *testing.T) {
	// Registering the same namespace twice must not collide across registries.
	a := NewMetrics("farol", prometheus.NewRegistry())
	b := NewMetrics("farol", prometheus.NewRegistry())

	a.ActiveBrowsers.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.ActiveBrowsers))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ActiveBrowsers))
}
