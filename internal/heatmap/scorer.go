// Package heatmap predicts where a viewer's attention goes on a rendered
// page from static layout heuristics and renders the result as an overlay.
package heatmap

import (
	"math"

	"github.com/anime-shed/page-inspector-go/internal/render"
)

const (
	baseValue       = 0.1
	defaultTagBonus = 0.1
	labelBonus      = 0.2

	topLeftBonus  = 0.3
	topRightBonus = 0.2
	centerBonus   = 0.2

	largeAreaRatio = 0.01
	hugeAreaRatio  = 0.05
	sizeBonus      = 0.2

	minVisibleSide   = 10.0
	invisiblePenalty = 0.1
	belowFoldPenalty = 0.3
)

// tagBonuses maps an element tag to its importance bonus. Unlisted tags get defaultTagBonus.
var tagBonuses = map[string]float64{
	"h1":       0.8,
	"h2":       0.6,
	"h3":       0.4,
	"h4":       0.4,
	"button":   0.7,
	"a":        0.7,
	"input":    0.6,
	"textarea": 0.6,
	"img":      0.5,
	"nav":      0.5,
	"form":     0.4,
}

// ElementRect is a bounding box in viewport pixels
type ElementRect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Center returns the centre point of the box
func (r ElementRect) Center() (x, y float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Area returns width*height
func (r ElementRect) Area() float64 {
	return r.Width * r.Height
}

// TagBonus returns the importance bonus for tag
func TagBonus(tag string) float64 {
	if bonus, ok := tagBonuses[tag]; ok {
		return bonus
	}
	return defaultTagBonus
}

// Score returns the attention value of one element in [0, 1].
// Bonuses are additive; the visibility and below-the-fold penalties are
// multiplied in after all bonuses, then the result is capped at 1.
func Score(tag string, hasLabel bool, rect ElementRect, viewport render.Viewport) float64 {
	vw, vh := float64(viewport.Width), float64(viewport.Height)
	value := baseValue + TagBonus(tag)

	if hasLabel {
		value += labelBonus
	}

	cx, cy := rect.Center()
	if cx < vw*0.5 && cy < vh*0.3 {
		value += topLeftBonus
	}
	if cx > vw*0.5 && cy < vh*0.2 {
		value += topRightBonus
	}
	if cx > vw*0.2 && cx < vw*0.8 && cy > vh*0.2 && cy < vh*0.6 {
		value += centerBonus
	}

	if area := viewport.Area(); area > 0 {
		ratio := rect.Area() / area
		if ratio > largeAreaRatio {
			value += sizeBonus
		}
		if ratio > hugeAreaRatio {
			value += sizeBonus
		}
	}

	if rect.Width < minVisibleSide || rect.Height < minVisibleSide {
		value *= invisiblePenalty
	}
	if cy > vh {
		value *= belowFoldPenalty
	}

	return math.Max(0, math.Min(value, 1.0))
}
