package heatmap

import (
	"math"
	"testing"

	"github.com/anime-shed/page-inspector-go/internal/render"
)

const epsilon = 1e-9

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestScore(t *testing.T) {
	vp := render.DefaultViewport

	tests := []struct {
		name     string
		tag      string
		hasLabel bool
		rect     ElementRect
		expected float64
	}{
		{"H1 top-left clamps to 1", "h1", false, ElementRect{Left: 100, Top: 50, Width: 800, Height: 100}, 1.0},
		{"Unlisted tag gets default bonus", "div", false, ElementRect{Left: 100, Top: 700, Width: 50, Height: 50}, 0.2},
		{"Tiny element is penalized", "button", false, ElementRect{Left: 1000, Top: 500, Width: 5, Height: 5}, 0.1},
		{"Below the fold is penalized", "h2", false, ElementRect{Left: 100, Top: 2000, Width: 400, Height: 50}, 0.21},
		{"Labelled top-right link clamps", "a", true, ElementRect{Left: 1500, Top: 50, Width: 100, Height: 40}, 1.0},
		{"Large element gets one size bonus", "section", false, ElementRect{Left: 0, Top: 400, Width: 300, Height: 100}, 0.4},
		{"Huge element gets both size bonuses", "section", false, ElementRect{Left: 0, Top: 400, Width: 500, Height: 250}, 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.tag, tt.hasLabel, tt.rect, vp)
			if !approxEqual(got, tt.expected) {
				t.Errorf("Score(%s) = %v, expected %v", tt.tag, got, tt.expected)
			}
		})
	}
}

func TestScore_AlwaysInUnitRange(t *testing.T) {
	vp := render.DefaultViewport
	tags := []string{"h1", "h2", "h3", "button", "a", "img", "nav", "form", "div", "span"}
	sizes := []float64{0, 1, 9, 10, 100, 600, 2000}
	positions := []float64{-500, 0, 200, 540, 1000, 1900, 5000}

	for _, tag := range tags {
		for _, label := range []bool{false, true} {
			for _, size := range sizes {
				for _, pos := range positions {
					rect := ElementRect{Left: pos, Top: pos, Width: size, Height: size}
					v := Score(tag, label, rect, vp)
					if v < 0 || v > 1 {
						t.Fatalf("Score(%s, %v, %+v) = %v outside [0,1]", tag, label, rect, v)
					}
				}
			}
		}
	}
}

func TestScore_PenaltiesAppliedAfterBonuses(t *testing.T) {
	vp := render.DefaultViewport
	rect := ElementRect{Left: 100, Top: 50, Width: 800, Height: 5}

	// h1 bonuses exceed 1 before the penalty, so the penalty must be applied
	// to the raw sum and not to the clamped value.
	got := Score("h1", false, rect, vp)
	if got >= 0.2 {
		t.Errorf("Expected thin element to be heavily penalized, got %v", got)
	}
	if got <= 0.1 {
		t.Errorf("Expected penalty to apply to the unclamped sum, got %v", got)
	}
}

func TestTagBonus(t *testing.T) {
	tests := []struct {
		tag      string
		expected float64
	}{
		{"h1", 0.8},
		{"h2", 0.6},
		{"h4", 0.4},
		{"button", 0.7},
		{"textarea", 0.6},
		{"img", 0.5},
		{"form", 0.4},
		{"h5", 0.1},
		{"article", 0.1},
	}

	for _, tt := range tests {
		if got := TagBonus(tt.tag); got != tt.expected {
			t.Errorf("TagBonus(%q) = %v, expected %v", tt.tag, got, tt.expected)
		}
	}
}

func TestElementRect(t *testing.T) {
	r := ElementRect{Left: 10, Top: 20, Width: 100, Height: 50}
	x, y := r.Center()
	if x != 60 || y != 45 {
		t.Errorf("Expected centre (60,45), got (%v,%v)", x, y)
	}
	if r.Area() != 5000 {
		t.Errorf("Expected area 5000, got %v", r.Area())
	}
}
