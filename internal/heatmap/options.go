package heatmap

// AttentionSelectors is the ordered list of element categories measured
// for the heatmap.
var AttentionSelectors = []string{
	"h1", "h2", "h3", "h4", "h5", "h6",
	"button",
	"a[href]",
	"img",
	"input",
	"textarea",
	"nav", "header", "main", "section", "article",
	`[role="button"]`,
	"[onclick]",
	".btn", ".button", ".logo", ".menu", ".navigation", ".cta", ".call-to-action",
}

// Prior is a fixed attention point independent of page content, expressed
// as fractions of the viewport.
type Prior struct {
	Name  string
	X     float64
	Y     float64
	Value float64
}

// DefaultPriors model common layout conventions: top navigation, a
// top-left logo and the main content area.
var DefaultPriors = []Prior{
	{Name: "navigation", X: 0.5, Y: 0.1, Value: 0.6},
	{Name: "logo", X: 0.15, Y: 0.1, Value: 0.7},
	{Name: "content", X: 0.5, Y: 0.4, Value: 0.5},
}

// Options configures point collection
type Options struct {
	// MinValue is the exclusive lower bound for keeping a scored element.
	MinValue float64
	// MaxPoints caps the collected points after deduplication.
	MaxPoints int
	// DedupDistance drops a point closer than this (in pixels, on both
	// axes) to an already kept point.
	DedupDistance float64
	Selectors     []string
	Priors        []Prior
}

// DefaultOptions returns the standard collection settings
func DefaultOptions() Options {
	return Options{
		MinValue:      0.2,
		MaxPoints:     50,
		DedupDistance: 50,
		Selectors:     AttentionSelectors,
		Priors:        DefaultPriors,
	}
}

// WithMaxPoints returns a copy of o with a different point cap
func (o Options) WithMaxPoints(n int) Options {
	o.MaxPoints = n
	return o
}

// WithoutPriors returns a copy of o that adds no prior points
func (o Options) WithoutPriors() Options {
	o.Priors = nil
	return o
}
