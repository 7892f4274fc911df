package browser

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os/exec"
	"testing"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/page"
	"go.uber.org/zap/zaptest"
)

func TestNewChromeLauncherDefaults(t *testing.T) {
	l := NewChromeLauncher(Config{}, zaptest.NewLogger(t))
	if l.config.WindowWidth != defaultWindowWidth || l.config.WindowHeight != defaultWindowHeight {
		t.Errorf("unexpected window size %dx%d", l.config.WindowWidth, l.config.WindowHeight)
	}

	withPath := NewChromeLauncher(Config{ExecPath: "/usr/bin/chromium", NoSandbox: true}, zaptest.NewLogger(t))
	base := len(l.allocatorOptions())
	if got := len(withPath.allocatorOptions()); got != base+2 {
		t.Errorf("Expected %d allocator options, got %d", base+2, got)
	}
}

func TestLifecycleTrackerIgnoresIdleBeforeInit(t *testing.T) {
	tr := newLifecycleTracker()
	tr.watch("main")

	tr.handle(&page.EventLifecycleEvent{FrameID: "main", Name: "networkIdle"})
	select {
	case <-tr.idle:
		t.Fatal("idle fired before navigation started")
	default:
	}

	tr.handle("unrelated event")
	tr.handle(&page.EventLifecycleEvent{FrameID: "main", Name: "init"})
	tr.handle(&page.EventLifecycleEvent{FrameID: "main", Name: "load"})
	tr.handle(&page.EventLifecycleEvent{FrameID: "main", Name: "networkIdle"})
	// A second idle must not panic on a closed channel.
	tr.handle(&page.EventLifecycleEvent{FrameID: "main", Name: "networkIdle"})

	select {
	case <-tr.idle:
	default:
		t.Fatal("idle did not fire after init")
	}
}

func TestLifecycleTrackerIgnoresOtherFrames(t *testing.T) {
	tr := newLifecycleTracker()

	// Nothing counts until the main frame is known.
	tr.handle(&page.EventLifecycleEvent{FrameID: "main", Name: "init"})
	tr.handle(&page.EventLifecycleEvent{FrameID: "main", Name: "networkIdle"})

	tr.watch(cdp.FrameID("main"))
	tr.handle(&page.EventLifecycleEvent{FrameID: "main", Name: "init"})
	tr.handle(&page.EventLifecycleEvent{FrameID: "ad-iframe", Name: "init"})
	tr.handle(&page.EventLifecycleEvent{FrameID: "ad-iframe", Name: "networkIdle"})

	select {
	case <-tr.idle:
		t.Fatal("idle fired on an iframe event")
	default:
	}

	tr.handle(&page.EventLifecycleEvent{FrameID: "main", Name: "networkIdle"})
	select {
	case <-tr.idle:
	default:
		t.Fatal("idle did not fire for the main frame")
	}
}

func TestChromeSessionCapture(t *testing.T) {
	if testing.Short() {
		t.Skip("launches a real browser")
	}
	if _, err := exec.LookPath("google-chrome"); err != nil {
		if _, err := exec.LookPath("chromium"); err != nil {
			t.Skip("chrome not installed")
		}
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><h1>Vagas</h1></body></html>"))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	session, err := NewChromeLauncher(Config{NoSandbox: true}, zaptest.NewLogger(t)).Launch(ctx)
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	defer session.Close()

	png, err := session.CaptureFullPage(ctx, server.URL)
	if err != nil {
		t.Fatalf("CaptureFullPage() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("Expected PNG signature, got % x", png[:8])
	}
}
