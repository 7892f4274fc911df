package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/farolia/farol/domain/entities"
	"github.com/farolia/farol/domain/repositories"
	"github.com/farolia/farol/internal/config"
	"github.com/farolia/farol/internal/observability"
)

const (
	defaultScreenshotTimeout = 60 * time.Second
	screenshotMimeType       = "image/png"
)

var ErrInvalidURL = errors.New("invalid URL: expected an absolute http(s) URL")

// ScreenshotOptions bounds browser usage. MaxConcurrency 0 means one browser
// per request with no limit.
type ScreenshotOptions struct {
	Timeout        time.Duration
	MaxConcurrency int
}

// ScreenshotService captures full-page screenshots with a fresh browser per call.
type ScreenshotService struct {
	launcher  repositories.BrowserLauncher
	store     repositories.ArtifactStore
	describer repositories.ScreenDescriber
	sem       *semaphore.Weighted
	timeout   time.Duration
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewScreenshotService creates the service. describer may be nil, in which
// case CaptureAndDescribe fails with config.ErrMissingGeminiKey.
func NewScreenshotService(
	launcher repositories.BrowserLauncher,
	store repositories.ArtifactStore,
	describer repositories.ScreenDescriber,
	opts ScreenshotOptions,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *ScreenshotService {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultScreenshotTimeout
	}

	var sem *semaphore.Weighted
	if opts.MaxConcurrency > 0 {
		sem = semaphore.NewWeighted(int64(opts.MaxConcurrency))
	}

	return &ScreenshotService{
		launcher:  launcher,
		store:     store,
		describer: describer,
		sem:       sem,
		timeout:   timeout,
		metrics:   metrics,
		logger:    logger,
	}
}

// ValidateURL accepts only absolute http and https URLs with a host.
func ValidateURL(raw string) error {
	u, err := url.ParseRequestURI(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	return nil
}

// Capture stores a full-page PNG of rawURL.
func (s *ScreenshotService) Capture(ctx context.Context, rawURL string) (*entities.Artifact, error) {
	artifact, _, err := s.capture(ctx, rawURL)
	return artifact, err
}

// CaptureAndDescribe stores the screenshot and asks the describer for a pt-BR
// description of it.
func (s *ScreenshotService) CaptureAndDescribe(ctx context.Context, rawURL string) (*entities.Artifact, string, error) {
	if s.describer == nil {
		return nil, "", config.ErrMissingGeminiKey
	}

	artifact, png, err := s.capture(ctx, rawURL)
	if err != nil {
		return nil, "", err
	}

	description, err := s.describer.DescribeImage(ctx, png, screenshotMimeType)
	if err != nil {
		return artifact, "", fmt.Errorf("describe screenshot: %w", err)
	}
	return artifact, description, nil
}

func (s *ScreenshotService) capture(ctx context.Context, rawURL string) (*entities.Artifact, []byte, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, nil, err
	}

	if s.sem != nil {
		if err := s.sem.Acquire(ctx, 1); err != nil {
			return nil, nil, fmt.Errorf("wait for browser slot: %w", err)
		}
		defer s.sem.Release(1)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	png, err := s.shoot(ctx, rawURL)
	if err != nil {
		s.metrics.ArtifactFailures.WithLabelValues(string(entities.ArtifactScreenshot), "browser").Inc()
		return nil, nil, err
	}

	artifact, err := s.save(ctx, png)
	if err != nil {
		s.metrics.ArtifactFailures.WithLabelValues(string(entities.ArtifactScreenshot), "storage").Inc()
		return nil, nil, err
	}

	s.metrics.ArtifactsGenerated.WithLabelValues(string(entities.ArtifactScreenshot)).Inc()
	s.metrics.ObserveScreenshot(time.Since(start))
	s.logger.Info("Screenshot saved",
		zap.String("url", rawURL),
		zap.String("path", artifact.Path),
		zap.Int("bytes", len(png)),
		zap.Duration("elapsed", time.Since(start)))

	return artifact, png, nil
}

// shoot owns the browser lifetime: it is closed before shoot returns, on
// every path.
func (s *ScreenshotService) shoot(ctx context.Context, rawURL string) ([]byte, error) {
	s.logger.Info("Launching browser", zap.String("url", rawURL))

	session, err := s.launcher.Launch(ctx)
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	s.metrics.ActiveBrowsers.Inc()
	defer func() {
		s.metrics.ActiveBrowsers.Dec()
		if err := session.Close(); err != nil {
			s.logger.Warn("Failed to close browser", zap.Error(err))
		}
	}()

	png, err := session.CaptureFullPage(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if len(png) == 0 {
		return nil, fmt.Errorf("capture %s: empty image", rawURL)
	}
	return png, nil
}

func (s *ScreenshotService) save(ctx context.Context, png []byte) (*entities.Artifact, error) {
	artifact, w, err := s.store.Create(ctx, entities.ArtifactScreenshot)
	if err != nil {
		return nil, fmt.Errorf("create screenshot file: %w", err)
	}

	_, err = w.Write(png)
	if closeErr := w.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		if rmErr := s.store.Remove(context.Background(), artifact); rmErr != nil {
			s.logger.Error("Failed to remove partial screenshot", zap.String("path", artifact.Path), zap.Error(rmErr))
		}
		return nil, fmt.Errorf("write screenshot file: %w", err)
	}
	return artifact, nil
}
