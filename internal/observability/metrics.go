package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups all Prometheus instruments used by the service.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	ArtifactsGenerated *prometheus.CounterVec
	ArtifactFailures   *prometheus.CounterVec
	ProviderErrors     *prometheus.CounterVec
	ClientLogs         *prometheus.CounterVec
	ActiveBrowsers     prometheus.Gauge
	SpeechDuration     prometheus.Histogram
	ScreenshotDuration prometheus.Histogram

	gatherer prometheus.Gatherer
}

// NewMetrics registers the instruments on reg. Pass prometheus.DefaultRegisterer
// in production and a fresh prometheus.NewRegistry() in tests.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		ArtifactsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_generated_total",
			Help:      "Media files written to disk by kind.",
		}, []string{"kind"}),
		ArtifactFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifact_failures_total",
			Help:      "Failed artifact generations by kind and reason.",
		}, []string{"kind", "reason"}),
		ProviderErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_errors_total",
			Help:      "Vendor errors by provider and status code.",
		}, []string{"provider", "code"}),
		ClientLogs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "client_logs_total",
			Help:      "Browser log events by type.",
		}, []string{"type"}),
		ActiveBrowsers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_browsers",
			Help:      "Headless browser instances currently running.",
		}),
		SpeechDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "speech_generation_seconds",
			Help:      "Time to synthesize and store one audio file.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30, 60},
		}),
		ScreenshotDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "screenshot_seconds",
			Help:      "Time from browser launch to stored screenshot.",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 15, 30, 60},
		}),
		gatherer: gatherer,
	}
}

func (m *Metrics) ObserveSpeech(d time.Duration) {
	m.SpeechDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveScreenshot(d time.Duration) {
	m.ScreenshotDuration.Observe(d.Seconds())
}

// Handler exposes the registry these metrics were registered on.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
