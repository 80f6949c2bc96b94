package analyzer

import (
	"fmt"

	"github.com/anime-shed/page-inspector-go/internal/dom"
	"github.com/anime-shed/page-inspector-go/pkg/models"
)

const (
	titleMinLength = 30
	titleMaxLength = 60
	metaMinLength  = 120
	metaMaxLength  = 160

	altCoverageGood    = 90.0
	altCoverageWarning = 70.0
	altCoverageScored  = 80.0

	wordsPerMinute = 200

	// NoTitle is reported when the page has no title.
	NoTitle = "No title found"
)

// SEO score weights
const (
	scoreTitle          = 25
	scoreMetaDesc       = 25
	scoreHasH1          = 20
	scoreSingleH1       = 15
	scoreAltTextCovered = 15
)

// GenerateSEOInsights applies the rule table to an SEO snapshot. It always
// returns four insights: title, meta description, headings and alt text.
func GenerateSEOInsights(seo models.SeoAnalysis) []models.SEOInsight {
	return []models.SEOInsight{
		titleInsight(seo.Title),
		metaDescriptionInsight(seo.MetaDescription),
		headingInsight(seo.Headings),
		altTextInsight(seo.Images.AltTextCoverage),
	}
}

func titleInsight(t models.TextPresence) models.SEOInsight {
	insight := models.SEOInsight{Title: "Title Tag Optimization"}
	switch {
	case !t.Present:
		insight.Status = models.StatusError
		insight.Description = "Missing title tag"
		insight.Details = "The page does not have a title tag, which is crucial for SEO."
		insight.Recommendations = []string{
			"Add a descriptive title tag",
			"Include relevant keywords",
			"Keep it between 30-60 characters",
		}
	case t.Length < titleMinLength:
		insight.Status = models.StatusWarning
		insight.Description = "Title is too short"
		insight.Details = fmt.Sprintf("Title is only %d characters long. Recommended length is 30-60 characters.", t.Length)
		insight.Recommendations = []string{
			"Expand the title to be more descriptive",
			"Include relevant keywords",
		}
	case t.Length > titleMaxLength:
		insight.Status = models.StatusWarning
		insight.Description = "Title is too long"
		insight.Details = fmt.Sprintf("Title is %d characters long. It may be truncated in search results.", t.Length)
		insight.Recommendations = []string{
			"Shorten the title to 60 characters or less",
			"Keep the most important keywords at the beginning",
		}
	default:
		insight.Status = models.StatusGood
		insight.Description = "Title length is optimal"
		insight.Details = fmt.Sprintf("Title is %d characters long, which is within the recommended range.", t.Length)
		insight.Recommendations = []string{"Keep the title descriptive and relevant to the page content"}
	}
	return insight
}

func metaDescriptionInsight(m models.TextPresence) models.SEOInsight {
	insight := models.SEOInsight{Title: "Meta Description Optimization"}
	switch {
	case !m.Present:
		insight.Status = models.StatusError
		insight.Description = "Missing meta description"
		insight.Details = "The page does not have a meta description, which helps search engines understand the page content."
		insight.Recommendations = []string{
			"Add a compelling meta description",
			"Include relevant keywords",
			"Keep it between 120-160 characters",
		}
	case m.Length < metaMinLength:
		insight.Status = models.StatusWarning
		insight.Description = "Meta description is too short"
		insight.Details = fmt.Sprintf("Meta description is only %d characters long. Recommended length is 120-160 characters.", m.Length)
		insight.Recommendations = []string{
			"Expand the description to be more informative",
			"Include relevant keywords and call-to-action",
		}
	case m.Length > metaMaxLength:
		insight.Status = models.StatusWarning
		insight.Description = "Meta description is too long"
		insight.Details = fmt.Sprintf("Meta description is %d characters long. It may be truncated in search results.", m.Length)
		insight.Recommendations = []string{
			"Shorten the description to 160 characters or less",
			"Keep the most important information at the beginning",
		}
	default:
		insight.Status = models.StatusGood
		insight.Description = "Meta description length is optimal"
		insight.Details = fmt.Sprintf("Meta description is %d characters long, which is within the recommended range.", m.Length)
		insight.Recommendations = []string{"Ensure the description accurately summarizes the page content"}
	}
	return insight
}

func headingInsight(h models.HeadingSummary) models.SEOInsight {
	insight := models.SEOInsight{Title: "Heading Structure"}
	switch {
	case h.H1Count == 1:
		insight.Status = models.StatusGood
		insight.Description = "Proper heading structure detected"
		insight.Details = "The page has exactly one H1 tag, which is the recommended structure."
		insight.Recommendations = []string{"Ensure H1 contains the main keyword for the page"}
	case h.H1Count > 1:
		insight.Status = models.StatusWarning
		insight.Description = "Multiple H1 tags detected"
		insight.Details = fmt.Sprintf("The page has %d H1 tags. It's recommended to have only one H1 per page.", h.H1Count)
		insight.Recommendations = []string{
			"Use only one H1 tag per page",
			"Use H2-H6 for subheadings",
			"Ensure proper heading hierarchy",
		}
	default:
		insight.Status = models.StatusError
		insight.Description = "Missing H1 tag"
		insight.Details = "The page does not have an H1 tag, which is important for SEO and accessibility."
		insight.Recommendations = []string{
			"Add an H1 tag with the main page topic",
			"Include relevant keywords in the H1",
			"Use H2-H6 for subheadings",
		}
	}
	return insight
}

func altTextInsight(coverage float64) models.SEOInsight {
	insight := models.SEOInsight{Title: "Image Alt Text"}
	switch {
	case coverage >= altCoverageGood:
		insight.Status = models.StatusGood
		insight.Description = "Excellent alt text coverage"
		insight.Details = fmt.Sprintf("%.1f%% of images have alt text.", coverage)
		insight.Recommendations = []string{"Continue providing descriptive alt text for all images"}
	case coverage >= altCoverageWarning:
		insight.Status = models.StatusWarning
		insight.Description = "Good alt text coverage"
		insight.Details = fmt.Sprintf("%.1f%% of images have alt text. Aim for 100%% coverage.", coverage)
		insight.Recommendations = []string{
			"Add alt text to remaining images",
			"Make alt text descriptive and relevant",
		}
	default:
		insight.Status = models.StatusError
		insight.Description = "Poor alt text coverage"
		insight.Details = fmt.Sprintf("Only %.1f%% of images have alt text.", coverage)
		insight.Recommendations = []string{
			"Add descriptive alt text to all images",
			"Include relevant keywords where appropriate",
			"Improve accessibility for screen readers",
		}
	}
	return insight
}

// SEOScore sums the weighted checks into a 0-100 score
func SEOScore(seo models.SeoAnalysis) int {
	score := 0
	if seo.Title.Present {
		score += scoreTitle
	}
	if seo.MetaDescription.Present {
		score += scoreMetaDesc
	}
	if seo.Headings.HasH1 {
		score += scoreHasH1
	}
	if seo.Headings.HeadingStructure {
		score += scoreSingleH1
	}
	if seo.Images.AltTextCoverage > altCoverageScored {
		score += scoreAltTextCovered
	}
	return score
}

// ReadingTime estimates minutes to read wordCount words, rounded up
func ReadingTime(wordCount int) int {
	if wordCount <= 0 {
		return 0
	}
	return (wordCount + wordsPerMinute - 1) / wordsPerMinute
}

// TitleOrDefault returns the page title or NoTitle
func TitleOrDefault(seo models.SeoAnalysis) string {
	if seo.Title.Present && seo.Title.Value != nil {
		return *seo.Title.Value
	}
	return NoTitle
}

// BuildContentInsights lists the page's headings in document order together
// with the content metrics. Headings without text get a "H<n> Heading <i>"
// placeholder numbered per level.
func BuildContentInsights(headings []dom.Heading, content models.ContentAnalysis, seo models.SeoAnalysis) models.ContentInsights {
	perLevel := map[int]int{}
	list := make([]models.Heading, 0, len(headings))
	for _, h := range headings {
		perLevel[h.Level]++
		text := h.Text
		if text == "" {
			text = fmt.Sprintf("H%d Heading %d", h.Level, perLevel[h.Level])
		}
		list = append(list, models.Heading{Level: h.Level, Text: text})
	}

	return models.ContentInsights{
		Title:           TitleOrDefault(seo),
		MetaDescription: seo.MetaDescription.Value,
		Headings:        list,
		Metrics: models.ContentMetrics{
			WordCount:   content.WordCount,
			ImageCount:  content.Images.Total,
			LinkCount:   content.Links,
			ReadingTime: ReadingTime(content.WordCount),
		},
	}
}
