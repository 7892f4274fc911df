package usecase

import (
	"context"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/farolia/farol/adapters/storage"
	"github.com/farolia/farol/domain/repositories"
	"github.com/farolia/farol/internal/observability"
)

func newTestMetrics() *observability.Metrics {
	return observability.NewMetrics("farol_test", prometheus.NewRegistry())
}

type testDirs struct {
	audio      string
	screenshot string
}

func newTestStore(t *testing.T) (*storage.LocalArtifactStore, testDirs) {
	t.Helper()
	root := t.TempDir()
	dirs := testDirs{audio: root + "/audio_gerado", screenshot: root + "/screenshots_gerados"}
	store, err := storage.NewLocalArtifactStore(dirs.audio, dirs.screenshot, zaptest.NewLogger(t))
	require.NoError(t, err)
	return store, dirs
}

// fakeTTS records requests and writes payload, then returns err.
type fakeTTS struct {
	mu       sync.Mutex
	requests []repositories.SpeechRequest
	payload  []byte
	err      error
}

func (f *fakeTTS) Synthesize(ctx context.Context, req repositories.SpeechRequest, w io.Writer) error {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	if len(f.payload) > 0 {
		if _, err := w.Write(f.payload); err != nil {
			return err
		}
	}
	return f.err
}

func (f *fakeTTS) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// fakeLauncher hands out sessions that hang on URLs containing "lento" until
// their context is done.
type fakeLauncher struct {
	launchErr error
	launched  atomic.Int32
	closed    atomic.Int32
	active    atomic.Int32
	maxActive atomic.Int32
}

func (l *fakeLauncher) Launch(ctx context.Context) (repositories.BrowserSession, error) {
	if l.launchErr != nil {
		return nil, l.launchErr
	}
	l.launched.Add(1)
	n := l.active.Add(1)
	for {
		m := l.maxActive.Load()
		if n <= m || l.maxActive.CompareAndSwap(m, n) {
			break
		}
	}
	return &fakeSession{launcher: l}, nil
}

type fakeSession struct {
	launcher *fakeLauncher
	once     sync.Once
}

func (s *fakeSession) CaptureFullPage(ctx context.Context, url string) ([]byte, error) {
	if strings.Contains(url, "lento") {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if strings.Contains(url, "quebrado") {
		return nil, io.ErrUnexpectedEOF
	}
	return []byte("\x89PNG\r\n\x1a\n" + url), nil
}

func (s *fakeSession) Close() error {
	s.once.Do(func() {
		s.launcher.active.Add(-1)
		s.launcher.closed.Add(1)
	})
	return nil
}

type fakeDescriber struct {
	got  []byte
	mime string
	err  error
}

func (d *fakeDescriber) DescribeImage(ctx context.Context, image []byte, mimeType string) (string, error) {
	d.got = image
	d.mime = mimeType
	if d.err != nil {
		return "", d.err
	}
	return "Página com uma lista de vagas.", nil
}

type fakeSTT struct {
	got repositories.AudioConfig
	err error
}

func (f *fakeSTT) TranscribeAudio(ctx context.Context, audio []byte, cfg repositories.AudioConfig) (string, error) {
	f.got = cfg
	if f.err != nil {
		return "", f.err
	}
	return "Meu nome é Ana", nil
}
