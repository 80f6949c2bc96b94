package heatmap

import (
	"math"

	"github.com/anime-shed/page-inspector-go/internal/dom"
	"github.com/anime-shed/page-inspector-go/internal/render"
)

// Point is an attention point at an absolute pixel position
type Point struct {
	X     float64
	Y     float64
	Value float64
}

// PageGeometry holds the effective page height used to normalize y
type PageGeometry struct {
	ScrollHeight float64
}

// GeometryOf returns max(document scroll height, body scroll height, viewport height)
func GeometryOf(snap dom.AttentionSnapshot, viewport render.Viewport) PageGeometry {
	return PageGeometry{
		ScrollHeight: math.Max(math.Max(snap.DocumentScrollHeight, snap.BodyScrollHeight), float64(viewport.Height)),
	}
}

// Collector turns measured elements into attention points
type Collector struct {
	opts Options
}

// NewCollector creates a collector with the given options
func NewCollector(opts Options) *Collector {
	return &Collector{opts: opts}
}

// Options returns the collector's options
func (c *Collector) Options() Options {
	return c.opts
}

// Collect scores the snapshot's elements and returns at most MaxPoints
// points in discovery order. Zero-sized elements and elements whose centre
// lies outside [0, viewport width] x [0, document scroll height] are skipped
// before scoring; the prior points are appended after the DOM points and
// the whole list is deduplicated before truncation.
func (c *Collector) Collect(snap dom.AttentionSnapshot, viewport render.Viewport) []Point {
	vw, vh := float64(viewport.Width), float64(viewport.Height)
	points := make([]Point, 0, len(snap.Elements)+len(c.opts.Priors))

	for _, el := range snap.Elements {
		if el.Width <= 0 || el.Height <= 0 {
			continue
		}
		rect := ElementRect{Left: el.Left, Top: el.Top, Width: el.Width, Height: el.Height}
		cx, cy := rect.Center()
		if cx < 0 || cx > vw || cy < 0 || cy > snap.DocumentScrollHeight {
			continue
		}
		value := Score(el.Tag, el.HasLabel, rect, viewport)
		if value > c.opts.MinValue {
			points = append(points, Point{X: cx, Y: cy, Value: value})
		}
	}

	for _, prior := range c.opts.Priors {
		points = append(points, Point{X: vw * prior.X, Y: vh * prior.Y, Value: prior.Value})
	}

	points = Dedup(points, c.opts.DedupDistance)
	if c.opts.MaxPoints >= 0 && len(points) > c.opts.MaxPoints {
		points = points[:c.opts.MaxPoints]
	}
	return points
}

// Dedup keeps points in order, dropping any point that lies closer than
// distance on both axes to a point already kept.
func Dedup(points []Point, distance float64) []Point {
	kept := make([]Point, 0, len(points))
	for _, p := range points {
		duplicate := false
		for _, k := range kept {
			if math.Abs(k.X-p.X) < distance && math.Abs(k.Y-p.Y) < distance {
				duplicate = true
				break
			}
		}
		if !duplicate {
			kept = append(kept, p)
		}
	}
	return kept
}
