package heatmap

import (
	"github.com/anime-shed/page-inspector-go/internal/render"
	"github.com/anime-shed/page-inspector-go/pkg/models"
)

// Normalize converts a pixel point into page-relative coordinates:
// x over the viewport width and y over the page scroll height. No clamping.
func Normalize(p Point, viewport render.Viewport, geometry PageGeometry) models.HeatmapPoint {
	hp := models.HeatmapPoint{Value: p.Value}
	if viewport.Width > 0 {
		hp.X = p.X / float64(viewport.Width)
	}
	if geometry.ScrollHeight > 0 {
		hp.Y = p.Y / geometry.ScrollHeight
	}
	return hp
}

// NormalizeAll normalizes points, preserving order
func NormalizeAll(points []Point, viewport render.Viewport, geometry PageGeometry) []models.HeatmapPoint {
	out := make([]models.HeatmapPoint, 0, len(points))
	for _, p := range points {
		out = append(out, Normalize(p, viewport, geometry))
	}
	return out
}
