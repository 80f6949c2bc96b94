package render

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/anime-shed/page-inspector-go/internal/dom"
	"github.com/anime-shed/page-inspector-go/internal/logger"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/sirupsen/logrus"
)

// RodConfig configures the Chrome renderer
type RodConfig struct {
	// RemoteURL is the DevTools WebSocket URL of an external Chrome.
	// Empty launches a local headless Chrome.
	RemoteURL string
	// Stealth opens pages with go-rod/stealth evasions applied.
	Stealth bool
}

// RodRenderer renders pages in headless Chrome through go-rod.
// The browser is started lazily on the first NewPage call.
type RodRenderer struct {
	cfg     RodConfig
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	closed  bool
}

// NewRodRenderer creates a Chrome renderer. Call Close to stop Chrome.
func NewRodRenderer(cfg RodConfig) *RodRenderer {
	return &RodRenderer{cfg: cfg}
}

func (r *RodRenderer) connect() (*rod.Browser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, fmt.Errorf("render: renderer is closed")
	}
	if r.browser != nil {
		return r.browser, nil
	}

	wsURL := r.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().
			Headless(true).
			Set("disable-blink-features", "AutomationControlled")
		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("render: launch chrome: %w", err)
		}
		wsURL = u
		r.lnch = l
		logger.WithField("url", wsURL).Info("Launched local Chrome")
	} else {
		logger.WithField("url", wsURL).Info("Connecting to remote Chrome")
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		r.cleanupLocked()
		return nil, fmt.Errorf("render: connect: %w", err)
	}
	r.browser = b
	return b, nil
}

// NewPage opens a tab with the given viewport
func (r *RodRenderer) NewPage(ctx context.Context, viewport Viewport) (Page, error) {
	b, err := r.connect()
	if err != nil {
		return nil, err
	}

	var page *rod.Page
	if r.cfg.Stealth {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("render: create tab: %w", err)
	}

	err = page.Context(ctx).SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewport.Width,
		Height:            viewport.Height,
		DeviceScaleFactor: 1,
	})
	if err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("render: set viewport: %w", err)
	}

	return &rodPage{page: page}, nil
}

// Close shuts down Chrome (or disconnects from the remote instance)
func (r *RodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	r.cleanupLocked()
	return nil
}

func (r *RodRenderer) cleanupLocked() {
	if r.browser != nil {
		if err := r.browser.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close browser")
		}
		r.browser = nil
	}
	if r.lnch != nil {
		r.lnch.Cleanup()
		r.lnch = nil
	}
}

type rodPage struct {
	page *rod.Page
}

// Navigate loads the URL and waits for network idle, the equivalent of
// puppeteer's networkidle0.
func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	wait := page.WaitNavigation(proto.PageLifecycleEventNameNetworkIdle)
	if err := page.Navigate(url); err != nil {
		return err
	}
	wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

func (p *rodPage) Evaluate(ctx context.Context, script dom.Script, out any) error {
	res, err := p.page.Context(ctx).Eval(script.Source, script.Args...)
	if err != nil {
		return fmt.Errorf("render: evaluate %s: %w", script.Name, err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal([]byte(res.Value.Str()), out); err != nil {
		return fmt.Errorf("render: decode %s result: %w", script.Name, err)
	}
	return nil
}

func (p *rodPage) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := p.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("render: screenshot: %w", err)
	}
	logger.WithFields(logrus.Fields{"bytes": len(data)}).Debug("Captured screenshot")
	return data, nil
}

func (p *rodPage) Close() error {
	return p.page.Close()
}
