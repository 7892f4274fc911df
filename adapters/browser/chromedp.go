package browser

import (
	"context"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/farolia/farol/domain/repositories"
)

const (
	defaultWindowWidth  = 1920
	defaultWindowHeight = 1080
)

// Config controls how Chrome is started. ExecPath is optional; chromedp
// searches the usual install locations when it is empty.
type Config struct {
	ExecPath     string
	WindowWidth  int
	WindowHeight int
	NoSandbox    bool
}

// ChromeLauncher starts one headless Chrome process per Launch call.
type ChromeLauncher struct {
	config Config
	logger *zap.Logger
}

var _ repositories.BrowserLauncher = (*ChromeLauncher)(nil)

func NewChromeLauncher(config Config, logger *zap.Logger) *ChromeLauncher {
	if config.WindowWidth == 0 {
		config.WindowWidth = defaultWindowWidth
	}
	if config.WindowHeight == 0 {
		config.WindowHeight = defaultWindowHeight
	}
	return &ChromeLauncher{config: config, logger: logger}
}

func (l *ChromeLauncher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.WindowSize(l.config.WindowWidth, l.config.WindowHeight),
	)
	if l.config.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	if l.config.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.config.ExecPath))
	}
	return opts
}

// Launch starts the browser. The process lives until Close is called or ctx
// is done, whichever comes first.
func (l *ChromeLauncher) Launch(ctx context.Context) (repositories.BrowserSession, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, l.allocatorOptions()...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithErrorf(func(format string, args ...any) {
			l.logger.Debug("chromedp", zap.String("detail", fmt.Sprintf(format, args...)))
		}),
	)

	// An empty Run starts the browser and opens the first tab.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("failed to launch chrome: %w", err)
	}

	l.logger.Debug("Chrome launched")

	return &ChromeSession{
		ctx:         browserCtx,
		cancelTab:   cancelBrowser,
		cancelAlloc: cancelAlloc,
		logger:      l.logger,
	}, nil
}

// ChromeSession is a launched Chrome with a single tab.
type ChromeSession struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	logger      *zap.Logger

	closeOnce sync.Once
	closeErr  error
}

// CaptureFullPage navigates, waits for network idle and takes a lossless
// full-page screenshot.
func (s *ChromeSession) CaptureFullPage(ctx context.Context, url string) ([]byte, error) {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	tracker := newLifecycleTracker()
	chromedp.ListenTarget(runCtx, tracker.handle)

	var buf []byte
	err := chromedp.Run(runCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			tracker.watch(tree.Frame.ID)
			return page.SetLifecycleEventsEnabled(true).Do(ctx)
		}),
		chromedp.Navigate(url),
		chromedp.ActionFunc(func(ctx context.Context) error {
			select {
			case <-tracker.idle:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("capture %s: %w", url, ctx.Err())
		}
		return nil, fmt.Errorf("capture %s: %w", url, err)
	}
	return buf, nil
}

// Close shuts the browser down. Safe to call more than once.
func (s *ChromeSession) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = chromedp.Cancel(s.ctx)
		s.cancelTab()
		s.cancelAlloc()
		s.logger.Debug("Chrome closed")
	})
	return s.closeErr
}

// lifecycleTracker closes idle on the first networkIdle that follows an init
// event, so the blank start page never counts as loaded. Only events of the
// watched frame count; iframes go idle on their own schedule.
type lifecycleTracker struct {
	mu       sync.Mutex
	frameID  cdp.FrameID
	seenInit bool
	fired    bool
	idle     chan struct{}
}

func newLifecycleTracker() *lifecycleTracker {
	return &lifecycleTracker{idle: make(chan struct{})}
}

func (t *lifecycleTracker) watch(frameID cdp.FrameID) {
	t.mu.Lock()
	t.frameID = frameID
	t.mu.Unlock()
}

func (t *lifecycleTracker) handle(ev any) {
	e, ok := ev.(*page.EventLifecycleEvent)
	if !ok {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.frameID == "" || e.FrameID != t.frameID {
		return
	}

	switch e.Name {
	case "init":
		t.seenInit = true
	case "networkIdle":
		if t.seenInit && !t.fired {
			t.fired = true
			close(t.idle)
		}
	}
}
