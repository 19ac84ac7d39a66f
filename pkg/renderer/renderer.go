// Package renderer drives headless Chrome via Rod to produce page
// snapshots: final HTML after script execution and network settling, plus
// a live origin evaluator for the lifetime of the task.
package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/jverma/quiz-solver/pkg/pipeline"
	"github.com/jverma/quiz-solver/pkg/scan"
)

// settleIdle is how long the network must stay quiet before a page counts
// as settled.
const settleIdle = 500 * time.Millisecond

// Config configures the browser renderer.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local headless Chrome.
	RemoteURL string

	// Timeout bounds navigation and settling per page. Default: 60s.
	Timeout time.Duration

	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Browser owns one Chrome process shared by all tasks; each task renders
// in its own tab, closed when the task ends.
type Browser struct {
	cfg     Config
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// New creates a Browser. Chrome is launched lazily on first Render.
func New(cfg Config) *Browser {
	cfg.defaults()
	return &Browser{cfg: cfg}
}

// Render opens a stealth tab, navigates, waits for load plus network idle,
// and serialises the rendered DOM. The returned release closes the tab and
// must be called even when Render's caller fails later.
func (b *Browser) Render(ctx context.Context, pageURL string) (*scan.Snapshot, pipeline.Release, error) {
	browser, err := b.ensureStarted()
	if err != nil {
		return nil, nil, err
	}

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, nil, fmt.Errorf("renderer: create tab: %w", err)
	}
	release := func() {
		if err := page.Close(); err != nil {
			b.cfg.Logger.Warn("renderer: tab close failed", "url", pageURL, "error", err)
		}
	}

	navCtx, cancel := context.WithTimeout(ctx, b.cfg.Timeout)
	defer cancel()
	tab := page.Context(navCtx)

	if err := tab.Navigate(pageURL); err != nil {
		release()
		return nil, nil, fmt.Errorf("renderer: navigate %s: %w", pageURL, err)
	}
	if err := tab.WaitLoad(); err != nil {
		b.cfg.Logger.Warn("renderer: wait load timeout", "url", pageURL, "error", err)
	}
	// Network-idle settling, best effort: a page that keeps polling should
	// not hold the task forever.
	tab.WaitRequestIdle(settleIdle, nil, nil, nil)()

	res, err := tab.Eval(`() => document.documentElement.outerHTML`)
	if err != nil {
		release()
		return nil, nil, fmt.Errorf("renderer: serialize DOM for %s: %w", pageURL, err)
	}

	origin := func() (string, error) {
		v, err := page.Eval(`() => window.location.origin`)
		if err != nil {
			return "", fmt.Errorf("renderer: evaluate origin: %w", err)
		}
		return v.Value.Str(), nil
	}

	snap, err := scan.NewSnapshot(res.Value.Str(), pageURL, origin)
	if err != nil {
		release()
		return nil, nil, err
	}
	return snap, release, nil
}

// Close shuts down Chrome.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	if b.browser != nil {
		b.browser.Close()
		b.browser = nil
	}
	if b.lnch != nil {
		b.lnch.Cleanup()
		b.lnch = nil
	}
	return nil
}

func (b *Browser) ensureStarted() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("renderer: browser is closed")
	}
	if b.browser != nil {
		return b.browser, nil
	}

	wsURL := b.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().Headless(true)
		l = l.Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("renderer: launch chrome: %w", err)
		}
		wsURL = u
		b.lnch = l
		b.cfg.Logger.Info("renderer: launched local chrome", "url", wsURL)
	} else {
		b.cfg.Logger.Info("renderer: connecting to remote chrome", "url", wsURL)
	}

	browser := rod.New().ControlURL(wsURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("renderer: connect: %w", err)
	}
	b.browser = browser
	return browser, nil
}
