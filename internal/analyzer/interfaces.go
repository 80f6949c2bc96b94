package analyzer

import (
	"context"

	"github.com/anime-shed/page-inspector-go/internal/render"
	"github.com/anime-shed/page-inspector-go/pkg/models"
)

// PageAnalyzer defines the main interface for page analysis
type PageAnalyzer interface {
	// Analyze runs the content, SEO and technical passes against a
	// navigated page. Any failure is fatal for the report.
	Analyze(ctx context.Context, s *render.Session) (*Report, error)
}

// LegibilityChecker compares text recognized on a screenshot with the
// page's visible DOM text.
type LegibilityChecker interface {
	Check(ctx context.Context, screenshot []byte, reference string) (*models.Legibility, error)
}
