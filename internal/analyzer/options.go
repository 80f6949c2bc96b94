package analyzer

import "time"

// AnalysisOptions configures the page analysis passes
type AnalysisOptions struct {
	// Technical pass
	TechnologyGlobals []string

	// Legibility check (optional)
	Legibility        LegibilityChecker
	LegibilityTimeout time.Duration
	MinReferenceWords int
}

// DefaultOptions returns default analysis options: all technology
// signatures checked, legibility check disabled.
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		TechnologyGlobals: TechnologyGlobals(),
		LegibilityTimeout: 20 * time.Second,
		MinReferenceWords: 5,
	}
}

// WithLegibility returns options with the OCR legibility check enabled
func (opts AnalysisOptions) WithLegibility(checker LegibilityChecker) AnalysisOptions {
	opts.Legibility = checker
	return opts
}

// WithLegibilityTimeout bounds the screenshot plus OCR step
func (opts AnalysisOptions) WithLegibilityTimeout(d time.Duration) AnalysisOptions {
	opts.LegibilityTimeout = d
	return opts
}

// LegibilityEnabled reports whether a checker is configured
func (opts AnalysisOptions) LegibilityEnabled() bool {
	return opts.Legibility != nil
}
