package heatmap

import (
	"context"
	"fmt"
	"time"

	"github.com/anime-shed/page-inspector-go/internal/dom"
	"github.com/anime-shed/page-inspector-go/internal/logger"
	"github.com/anime-shed/page-inspector-go/internal/render"
	"github.com/anime-shed/page-inspector-go/pkg/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const pngContentType = "image/png"

// ArtifactStore persists a rendered image and returns a reference to it
// (a data URI or a blob URL).
type ArtifactStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) (string, error)
}

// Generator produces HeatmapData for a navigated page
type Generator struct {
	collector *Collector
	store     ArtifactStore
}

// NewGenerator creates a generator. A nil collector uses DefaultOptions.
func NewGenerator(collector *Collector, store ArtifactStore) *Generator {
	if collector == nil {
		collector = NewCollector(DefaultOptions())
	}
	return &Generator{collector: collector, store: store}
}

// Generate runs the heatmap steps in order: base screenshot, point
// collection, then the overlay capture. Any error is returned as is; the
// caller decides whether to degrade to models.EmptyHeatmapData.
func (g *Generator) Generate(ctx context.Context, s *render.Session) (models.HeatmapData, error) {
	start := time.Now()

	base, err := s.Page.Screenshot(ctx)
	if err != nil {
		return models.HeatmapData{}, fmt.Errorf("base screenshot: %w", err)
	}

	var snap dom.AttentionSnapshot
	if err := s.Page.Evaluate(ctx, dom.Attention(g.collector.Options().Selectors), &snap); err != nil {
		return models.HeatmapData{}, fmt.Errorf("measure elements: %w", err)
	}
	points := g.collector.Collect(snap, s.Viewport)

	var overlay []byte
	err = WithOverlay(ctx, s.Page, points, func(ctx context.Context) error {
		var cerr error
		overlay, cerr = s.Page.Screenshot(ctx)
		return cerr
	})
	if err != nil {
		return models.HeatmapData{}, fmt.Errorf("overlay screenshot: %w", err)
	}

	prefix := uuid.NewString()
	screenshotRef, err := g.store.Put(ctx, prefix+"/screenshot.png", pngContentType, base)
	if err != nil {
		return models.HeatmapData{}, fmt.Errorf("store screenshot: %w", err)
	}
	heatmapRef, err := g.store.Put(ctx, prefix+"/heatmap.png", pngContentType, overlay)
	if err != nil {
		return models.HeatmapData{}, fmt.Errorf("store heatmap image: %w", err)
	}

	geometry := GeometryOf(snap, s.Viewport)
	logger.WithFields(logrus.Fields{
		"url":          s.URL,
		"elements":     len(snap.Elements),
		"points":       len(points),
		"scrollHeight": geometry.ScrollHeight,
		"duration_ms":  time.Since(start).Milliseconds(),
	}).Debug("Heatmap generated")

	return models.HeatmapData{
		Screenshot:    screenshotRef,
		HeatmapImage:  heatmapRef,
		HeatmapPoints: NormalizeAll(points, s.Viewport, geometry),
	}, nil
}
