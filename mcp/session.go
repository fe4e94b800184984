package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chromedp/chromedp"

	"github.com/pinchtab/axecheck"
	"github.com/pinchtab/axecheck/driver/cdp"
)

// Scanner runs accessibility scans against URLs. The server's default
// implementation drives a managed headless Chrome.
type Scanner interface {
	Scan(ctx context.Context, url string, scope *axecheck.Context, opts *axecheck.RunOptions) (*axecheck.Results, error)
	Close() error
}

// Session is a Scanner backed by a shared Chrome process. The browser
// starts on first scan and lives until Close.
type Session struct {
	cfg    BrowserConfig
	runner *axecheck.Runner

	mu          sync.Mutex
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewSession builds a Session. The browser is not launched until the
// first Scan call.
func NewSession(cfg BrowserConfig) *Session {
	return &Session{cfg: cfg, runner: axecheck.New()}
}

// allocator returns the shared browser allocator, launching it on first use.
func (s *Session) allocator() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allocCtx != nil {
		return s.allocCtx
	}
	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
	}
	if s.cfg.IsHeadless() {
		opts = append(opts, chromedp.Headless)
	}
	if s.cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}
	s.allocCtx, s.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	slog.Info("browser session started", "headless", s.cfg.IsHeadless())
	return s.allocCtx
}

// navContext bounds navigation with the configured timeout. chromedp.Run
// needs a context carrying the tab session, so the timeout wraps the tab
// context rather than the caller's.
func (s *Session) navContext(tabCtx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(tabCtx, s.cfg.NavTimeout())
}

// Scan opens a fresh tab, navigates to url, waits for the document body,
// and runs the axe scan in that tab. Cancelling ctx tears the tab down.
func (s *Session) Scan(ctx context.Context, url string, scope *axecheck.Context, opts *axecheck.RunOptions) (*axecheck.Results, error) {
	tabCtx, cancel := chromedp.NewContext(s.allocator())
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	navCtx, navCancel := s.navContext(tabCtx)
	defer navCancel()
	err := chromedp.Run(navCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("navigating to %s: %w", url, err)
	}
	slog.Info("page ready", "url", url)

	return s.runner.Run(ctx, cdp.From(tabCtx), scope, opts)
}

// Close shuts down the browser if it was started.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allocCancel != nil {
		s.allocCancel()
		s.allocCtx, s.allocCancel = nil, nil
		slog.Info("browser session closed")
	}
	return nil
}
