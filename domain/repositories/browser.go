package repositories

import "context"

// BrowserLauncher starts a fresh headless browser instance.
type BrowserLauncher interface {
	Launch(ctx context.Context) (BrowserSession, error)
}

// BrowserSession is one launched browser. Close must be called on every path
// and releases the underlying process.
type BrowserSession interface {
	// CaptureFullPage navigates to url, waits for the network to go idle and
	// returns a full-page PNG.
	CaptureFullPage(ctx context.Context, url string) ([]byte, error)
	Close() error
}
