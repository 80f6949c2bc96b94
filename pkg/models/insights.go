package models

// InsightStatus is the band an SEO metric falls into
type InsightStatus string

const (
	StatusGood    InsightStatus = "good"
	StatusWarning InsightStatus = "warning"
	StatusError   InsightStatus = "error"
)

// SEOInsight is one human-readable finding of the SEO rule table
type SEOInsight struct {
	Title           string        `json:"title"`
	Status          InsightStatus `json:"status"`
	Description     string        `json:"description"`
	Details         string        `json:"details,omitempty"`
	Recommendations []string      `json:"recommendations,omitempty"`
}

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type ContentMetrics struct {
	WordCount   int        `json:"wordCount"`
	ImageCount  int        `json:"imageCount"`
	LinkCount   LinkCounts `json:"linkCount"`
	ReadingTime int        `json:"readingTime"`
}

type ContentInsights struct {
	Title           string         `json:"title"`
	MetaDescription *string        `json:"metaDescription"`
	Headings        []Heading      `json:"headings"`
	Metrics         ContentMetrics `json:"metrics"`
}

type SEOSummary struct {
	Score    int          `json:"score"`
	Insights []SEOInsight `json:"insights"`
}

// Insights groups the derived, presentation-oriented findings of a report
type Insights struct {
	SEO       SEOSummary        `json:"seo"`
	Content   ContentInsights   `json:"content"`
	Technical TechnicalAnalysis `json:"technical"`
}
