package analyzer

import (
	"strings"

	"github.com/anime-shed/page-inspector-go/internal/dom"
	"github.com/anime-shed/page-inspector-go/pkg/models"
)

// SplitLinks counts internal and external links. A link is internal when
// it starts with the page origin or with "/"; everything else, including
// anchors without an href, is external.
func SplitLinks(links []string, origin string) models.LinkCounts {
	counts := models.LinkCounts{Total: len(links)}
	for _, href := range links {
		if (origin != "" && strings.HasPrefix(href, origin)) || strings.HasPrefix(href, "/") {
			counts.Internal++
		}
	}
	counts.External = counts.Total - counts.Internal
	return counts
}

// ImageCounts derives total/withAlt/withoutAlt
func ImageCounts(f dom.ImageFacts) models.ImageCounts {
	return models.ImageCounts{
		Total:      f.Total,
		WithAlt:    f.WithAlt,
		WithoutAlt: f.Total - f.WithAlt,
	}
}

// AltTextCoverage returns withAlt/total*100, or 0 for a page without images
func AltTextCoverage(f dom.ImageFacts) float64 {
	if f.Total == 0 {
		return 0
	}
	return float64(f.WithAlt) / float64(f.Total) * 100
}

// ContentAnalysisFrom builds the structural snapshot from raw content facts
func ContentAnalysisFrom(f dom.ContentFacts) models.ContentAnalysis {
	var headings models.HeadingCounts
	for _, h := range f.Headings {
		headings.Add(h.Level)
	}
	return models.ContentAnalysis{
		WordCount: f.WordCount,
		Headings:  headings,
		Images:    ImageCounts(f.Images),
		Links:     SplitLinks(f.Links, f.Origin),
	}
}

func textPresence(s *string) models.TextPresence {
	if s == nil || *s == "" {
		return models.TextPresence{}
	}
	value := *s
	return models.TextPresence{Present: true, Length: len([]rune(value)), Value: &value}
}

// SeoAnalysisFrom builds the on-page SEO signals from raw SEO facts. An
// empty title or meta description counts as absent.
func SeoAnalysisFrom(f dom.SEOFacts) models.SeoAnalysis {
	title := f.Title
	links := SplitLinks(f.Links, f.Origin)
	return models.SeoAnalysis{
		Title:           textPresence(&title),
		MetaDescription: textPresence(f.MetaDescription),
		Headings: models.HeadingSummary{
			HasH1:            f.H1Count > 0,
			H1Count:          f.H1Count,
			HeadingStructure: f.H1Count == 1,
		},
		Images: models.ImageSummary{AltTextCoverage: AltTextCoverage(f.Images)},
		Links: models.LinkSummary{
			InternalLinkCount: links.Internal,
			ExternalLinkCount: links.External,
		},
	}
}
