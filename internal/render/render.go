// Package render is the headless page capability used by the analyzers:
// open a URL at a fixed viewport, evaluate DOM scripts, take screenshots.
package render

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/anime-shed/page-inspector-go/internal/dom"
)

// DefaultNavigationTimeout bounds a single navigation.
const DefaultNavigationTimeout = 30 * time.Second

// ErrScreenshotUnsupported is returned by renderers that cannot rasterize pages.
var ErrScreenshotUnsupported = errors.New("render: screenshot not supported by this renderer")

// Viewport is the browser window size in CSS pixels
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultViewport is the 1920x1080 desktop viewport
var DefaultViewport = Viewport{Width: 1920, Height: 1080}

// Area returns width*height in square pixels
func (v Viewport) Area() float64 {
	return float64(v.Width) * float64(v.Height)
}

// Page is one open browser tab.
type Page interface {
	// Navigate loads url and waits for the page to settle.
	Navigate(ctx context.Context, url string) error
	// Evaluate runs script in the page and decodes its JSON result into out.
	Evaluate(ctx context.Context, script dom.Script, out any) error
	// Screenshot captures the full page as PNG.
	Screenshot(ctx context.Context) ([]byte, error)
	Close() error
}

// Renderer opens pages.
type Renderer interface {
	NewPage(ctx context.Context, viewport Viewport) (Page, error)
	Close() error
}

// HeaderSource is implemented by pages that expose the main document's
// response headers.
type HeaderSource interface {
	ResponseHeaders() http.Header
}
