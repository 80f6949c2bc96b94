package analyzer

import (
	"strings"
	"testing"

	"github.com/anime-shed/page-inspector-go/internal/dom"
	"github.com/anime-shed/page-inspector-go/pkg/models"
)

func presence(n int) models.TextPresence {
	if n == 0 {
		return models.TextPresence{}
	}
	v := strings.Repeat("x", n)
	return models.TextPresence{Present: true, Length: n, Value: &v}
}

func TestTitleInsightBands(t *testing.T) {
	tests := []struct {
		length      int
		status      models.InsightStatus
		description string
	}{
		{0, models.StatusError, "Missing title tag"},
		{10, models.StatusWarning, "Title is too short"},
		{29, models.StatusWarning, "Title is too short"},
		{30, models.StatusGood, "Title length is optimal"},
		{60, models.StatusGood, "Title length is optimal"},
		{61, models.StatusWarning, "Title is too long"},
	}

	for _, tt := range tests {
		got := titleInsight(presence(tt.length))
		if got.Status != tt.status || got.Description != tt.description {
			t.Errorf("length %d: expected %s %q, got %s %q", tt.length, tt.status, tt.description, got.Status, got.Description)
		}
		if got.Title != "Title Tag Optimization" {
			t.Errorf("Unexpected insight title %q", got.Title)
		}
		if len(got.Recommendations) == 0 {
			t.Errorf("length %d: expected recommendations", tt.length)
		}
	}
}

func TestTitleInsightDetails(t *testing.T) {
	got := titleInsight(presence(12))
	expected := "Title is only 12 characters long. Recommended length is 30-60 characters."
	if got.Details != expected {
		t.Errorf("Expected details %q, got %q", expected, got.Details)
	}
}

func TestMetaDescriptionInsightBands(t *testing.T) {
	tests := []struct {
		length      int
		status      models.InsightStatus
		description string
	}{
		{0, models.StatusError, "Missing meta description"},
		{119, models.StatusWarning, "Meta description is too short"},
		{120, models.StatusGood, "Meta description length is optimal"},
		{160, models.StatusGood, "Meta description length is optimal"},
		{161, models.StatusWarning, "Meta description is too long"},
	}

	for _, tt := range tests {
		got := metaDescriptionInsight(presence(tt.length))
		if got.Status != tt.status || got.Description != tt.description {
			t.Errorf("length %d: expected %s %q, got %s %q", tt.length, tt.status, tt.description, got.Status, got.Description)
		}
	}
}

func TestHeadingInsight(t *testing.T) {
	tests := []struct {
		h1Count     int
		status      models.InsightStatus
		description string
	}{
		{0, models.StatusError, "Missing H1 tag"},
		{1, models.StatusGood, "Proper heading structure detected"},
		{3, models.StatusWarning, "Multiple H1 tags detected"},
	}

	for _, tt := range tests {
		got := headingInsight(models.HeadingSummary{HasH1: tt.h1Count > 0, H1Count: tt.h1Count, HeadingStructure: tt.h1Count == 1})
		if got.Status != tt.status || got.Description != tt.description {
			t.Errorf("h1Count %d: expected %s %q, got %s %q", tt.h1Count, tt.status, tt.description, got.Status, got.Description)
		}
	}

	if got := headingInsight(models.HeadingSummary{HasH1: true, H1Count: 3}); !strings.Contains(got.Details, "The page has 3 H1 tags") {
		t.Errorf("Unexpected details %q", got.Details)
	}
}

func TestAltTextInsightBands(t *testing.T) {
	tests := []struct {
		coverage    float64
		status      models.InsightStatus
		description string
		details     string
	}{
		{100, models.StatusGood, "Excellent alt text coverage", "100.0% of images have alt text."},
		{90, models.StatusGood, "Excellent alt text coverage", "90.0% of images have alt text."},
		{89.9, models.StatusWarning, "Good alt text coverage", "89.9% of images have alt text. Aim for 100% coverage."},
		{70, models.StatusWarning, "Good alt text coverage", "70.0% of images have alt text. Aim for 100% coverage."},
		{50, models.StatusError, "Poor alt text coverage", "Only 50.0% of images have alt text."},
		{0, models.StatusError, "Poor alt text coverage", "Only 0.0% of images have alt text."},
	}

	for _, tt := range tests {
		got := altTextInsight(tt.coverage)
		if got.Status != tt.status || got.Description != tt.description || got.Details != tt.details {
			t.Errorf("coverage %v: expected %s %q %q, got %s %q %q",
				tt.coverage, tt.status, tt.description, tt.details, got.Status, got.Description, got.Details)
		}
	}
}

func TestGenerateSEOInsights_Order(t *testing.T) {
	insights := GenerateSEOInsights(models.SeoAnalysis{})
	expected := []string{"Title Tag Optimization", "Meta Description Optimization", "Heading Structure", "Image Alt Text"}
	if len(insights) != len(expected) {
		t.Fatalf("Expected %d insights, got %d", len(expected), len(insights))
	}
	for i, title := range expected {
		if insights[i].Title != title {
			t.Errorf("Insight %d: expected %q, got %q", i, title, insights[i].Title)
		}
	}
}

func TestSEOScore(t *testing.T) {
	tests := []struct {
		name     string
		seo      models.SeoAnalysis
		expected int
	}{
		{"Empty page", models.SeoAnalysis{}, 0},
		{
			name: "Everything",
			seo: models.SeoAnalysis{
				Title:           presence(40),
				MetaDescription: presence(140),
				Headings:        models.HeadingSummary{HasH1: true, H1Count: 1, HeadingStructure: true},
				Images:          models.ImageSummary{AltTextCoverage: 100},
			},
			expected: 100,
		},
		{
			name: "Multiple H1 and coverage at threshold",
			seo: models.SeoAnalysis{
				Title:    presence(40),
				Headings: models.HeadingSummary{HasH1: true, H1Count: 2},
				Images:   models.ImageSummary{AltTextCoverage: 80},
			},
			expected: 45,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SEOScore(tt.seo); got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words    int
		expected int
	}{
		{0, 0},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}

	for _, tt := range tests {
		if got := ReadingTime(tt.words); got != tt.expected {
			t.Errorf("ReadingTime(%d) = %d, expected %d", tt.words, got, tt.expected)
		}
	}
}

func TestBuildContentInsights(t *testing.T) {
	headings := []dom.Heading{
		{Level: 1, Text: "Main"},
		{Level: 2, Text: ""},
		{Level: 2, Text: "Second"},
		{Level: 2, Text: ""},
	}
	content := models.ContentAnalysis{
		WordCount: 450,
		Images:    models.ImageCounts{Total: 7},
		Links:     models.LinkCounts{Total: 3, Internal: 2, External: 1},
	}

	got := BuildContentInsights(headings, content, models.SeoAnalysis{})
	if got.Title != NoTitle {
		t.Errorf("Expected title fallback, got %q", got.Title)
	}
	if got.MetaDescription != nil {
		t.Errorf("Expected nil meta description, got %q", *got.MetaDescription)
	}

	expected := []models.Heading{
		{Level: 1, Text: "Main"},
		{Level: 2, Text: "H2 Heading 1"},
		{Level: 2, Text: "Second"},
		{Level: 2, Text: "H2 Heading 3"},
	}
	for i, h := range expected {
		if got.Headings[i] != h {
			t.Errorf("Heading %d: expected %+v, got %+v", i, h, got.Headings[i])
		}
	}

	if got.Metrics.ReadingTime != 3 || got.Metrics.ImageCount != 7 || got.Metrics.LinkCount.Internal != 2 {
		t.Errorf("Unexpected metrics %+v", got.Metrics)
	}
}
