package heatmap

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/anime-shed/page-inspector-go/internal/dom"
	"github.com/anime-shed/page-inspector-go/internal/logger"
	"github.com/anime-shed/page-inspector-go/internal/render"
)

const (
	minIntensity = 0.1
	baseRadius   = 60.0
	radiusRange  = 40.0

	// overlayCleanupTimeout bounds overlay removal, which runs even after
	// the caller's context is done.
	overlayCleanupTimeout = 5 * time.Second
)

const overlayBaseRule = "." + dom.OverlayPointClass +
	"{position:absolute;border-radius:50%;pointer-events:none;z-index:999999;mix-blend-mode:multiply}"

// Intensity clamps a point value to [0.1, 1]
func Intensity(value float64) float64 {
	return math.Max(minIntensity, math.Min(1.0, value))
}

// Radius returns the overlay circle radius in pixels for a point value
func Radius(value float64) float64 {
	return baseRadius + Intensity(value)*radiusRange
}

func jsNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// gradientFor returns the radial-gradient background for a point value.
// Values above 0.7 are red, above 0.4 orange, anything else blue-green.
func gradientFor(value float64) string {
	i := Intensity(value)
	switch {
	case i > 0.7:
		return fmt.Sprintf("radial-gradient(circle, rgba(255,0,0,%s) 0%%, rgba(255,100,0,%s) 50%%, rgba(255,200,0,0) 100%%)",
			jsNumber(i*0.4), jsNumber(i*0.2))
	case i > 0.4:
		return fmt.Sprintf("radial-gradient(circle, rgba(255,150,0,%s) 0%%, rgba(255,200,0,%s) 50%%, rgba(255,255,0,0) 100%%)",
			jsNumber(i*0.3), jsNumber(i*0.15))
	default:
		return fmt.Sprintf("radial-gradient(circle, rgba(0,150,255,%s) 0%%, rgba(0,200,150,%s) 50%%, rgba(0,255,100,0) 100%%)",
			jsNumber(i*0.25), jsNumber(i*0.1))
	}
}

// BuildOverlayCSS returns the stylesheet for points: one shared rule plus
// one positioned circle per point, indexed in slice order.
func BuildOverlayCSS(points []Point) string {
	var b strings.Builder
	b.WriteString(overlayBaseRule)
	for i, p := range points {
		r := Radius(p.Value)
		fmt.Fprintf(&b, ".%s-%d{left:%spx;top:%spx;width:%spx;height:%spx;background:%s}",
			dom.OverlayPointClass, i,
			jsNumber(p.X-r), jsNumber(p.Y-r), jsNumber(2*r), jsNumber(2*r),
			gradientFor(p.Value))
	}
	return b.String()
}

// WithOverlay injects the overlay for points into page, runs capture and
// removes the overlay again whatever capture returns.
func WithOverlay(ctx context.Context, page render.Page, points []Point, capture func(ctx context.Context) error) error {
	var injected int
	if err := page.Evaluate(ctx, dom.InjectOverlay(BuildOverlayCSS(points), len(points)), &injected); err != nil {
		removeOverlay(ctx, page)
		return fmt.Errorf("inject overlay: %w", err)
	}
	defer removeOverlay(ctx, page)

	return capture(ctx)
}

func removeOverlay(ctx context.Context, page render.Page) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), overlayCleanupTimeout)
	defer cancel()

	var removed int
	if err := page.Evaluate(cleanupCtx, dom.RemoveOverlay(), &removed); err != nil {
		logger.WithError(err).Warn("Failed to remove heatmap overlay")
	}
}
