package analyzer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anime-shed/page-inspector-go/internal/dom"
	"github.com/anime-shed/page-inspector-go/internal/logger"
	"github.com/anime-shed/page-inspector-go/internal/render"
	"github.com/anime-shed/page-inspector-go/pkg/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Report is the result of one analysis session
type Report struct {
	Title string
	// PageSize is the number of page resources, as reported by the
	// technical pass
	PageSize int64
	// HTMLSize is the byte length of the serialized document
	HTMLSize  int64
	Headings  []dom.Heading
	Content   models.ContentAnalysis
	SEO       models.SeoAnalysis
	Technical models.TechnicalAnalysis
}

// SEOScore returns the weighted SEO score of the report
func (r *Report) SEOScore() int {
	return SEOScore(r.SEO)
}

// Insights derives the presentation block of the report
func (r *Report) Insights() models.Insights {
	return models.Insights{
		SEO: models.SEOSummary{
			Score:    r.SEOScore(),
			Insights: GenerateSEOInsights(r.SEO),
		},
		Content:   BuildContentInsights(r.Headings, r.Content, r.SEO),
		Technical: r.Technical,
	}
}

// coreAnalyzer implements PageAnalyzer
type coreAnalyzer struct {
	opts AnalysisOptions
}

// NewPageAnalyzer creates a page analyzer
func NewPageAnalyzer(opts AnalysisOptions) PageAnalyzer {
	if opts.TechnologyGlobals == nil {
		opts.TechnologyGlobals = TechnologyGlobals()
	}
	if opts.LegibilityTimeout <= 0 {
		opts.LegibilityTimeout = DefaultOptions().LegibilityTimeout
	}
	return &coreAnalyzer{opts: opts}
}

// Analyze runs the three DOM passes concurrently over the same page. The
// passes only read the DOM.
func (ca *coreAnalyzer) Analyze(ctx context.Context, s *render.Session) (*Report, error) {
	start := time.Now()

	var (
		content dom.ContentFacts
		seo     dom.SEOFacts
		tech    dom.TechnicalFacts
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.Page.Evaluate(gctx, dom.ContentScript(), &content); err != nil {
			return fmt.Errorf("content pass: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.Page.Evaluate(gctx, dom.SEOScript(), &seo); err != nil {
			return fmt.Errorf("seo pass: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.Page.Evaluate(gctx, dom.TechnicalScript(ca.opts.TechnologyGlobals), &tech); err != nil {
			return fmt.Errorf("technical pass: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var headers http.Header
	if hs, ok := s.Page.(render.HeaderSource); ok {
		headers = hs.ResponseHeaders()
	}

	report := &Report{
		HTMLSize:  content.HTMLSize,
		Headings:  content.Headings,
		Content:   ContentAnalysisFrom(content),
		SEO:       SeoAnalysisFrom(seo),
		Technical: TechnicalAnalysisFrom(tech, headers, s.LoadTime),
	}
	report.Title = TitleOrDefault(report.SEO)
	report.PageSize = int64(report.Technical.Performance.ResourceCount)

	if ca.opts.LegibilityEnabled() {
		report.Technical.Legibility = ca.checkLegibility(ctx, s)
	}

	logger.WithFields(logrus.Fields{
		"url":         s.URL,
		"words":       report.Content.WordCount,
		"links":       report.Content.Links.Total,
		"html_bytes":  report.HTMLSize,
		"seo_score":   report.SEOScore(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Debug("Page analyzed")

	return report, nil
}

// checkLegibility OCRs a screenshot of the page and compares it with the
// visible DOM text. It never fails the analysis; nil means "not measured".
func (ca *coreAnalyzer) checkLegibility(ctx context.Context, s *render.Session) *models.Legibility {
	ctx, cancel := context.WithTimeout(ctx, ca.opts.LegibilityTimeout)
	defer cancel()

	entry := logger.WithField("url", s.URL)

	var text string
	if err := s.Page.Evaluate(ctx, dom.VisibleText(), &text); err != nil {
		entry.WithError(err).Warn("Legibility check skipped: visible text unavailable")
		return nil
	}
	if len(strings.Fields(text)) < ca.opts.MinReferenceWords {
		entry.Debug("Legibility check skipped: not enough text")
		return nil
	}

	shot, err := s.Page.Screenshot(ctx)
	if err != nil {
		if errors.Is(err, render.ErrScreenshotUnsupported) {
			entry.Debug("Legibility check skipped: renderer has no screenshots")
		} else {
			entry.WithError(err).Warn("Legibility check skipped: screenshot failed")
		}
		return nil
	}

	result, err := ca.opts.Legibility.Check(ctx, shot, text)
	if err != nil {
		entry.WithError(err).Warn("Legibility check failed")
		return nil
	}
	return result
}
