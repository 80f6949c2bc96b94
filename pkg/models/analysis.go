package models

import "time"

// Analysis is the persisted report for one analyzed page.
// JSON field names follow the public API (camelCase).
type Analysis struct {
	ID            string   `json:"id"`
	URL           string   `json:"url"`
	Title         string   `json:"title"`
	ScreenshotURL string   `json:"screenshotUrl,omitempty"`
	HeatmapURL    string   `json:"heatmapUrl,omitempty"`
	SEOScore      int      `json:"seoScore"`
	LoadTime      int64    `json:"loadTime"`
	PageSize      int64    `json:"pageSize"`
	Technologies  []string `json:"technologies"`
	Insights      Insights `json:"insights"`
	IsPublic      bool     `json:"isPublic"`

	ContentAnalysis   ContentAnalysis   `json:"contentAnalysis"`
	SeoAnalysis       SeoAnalysis       `json:"seoAnalysis"`
	TechnicalAnalysis TechnicalAnalysis `json:"technicalAnalysis"`
	HeatmapData       HeatmapData       `json:"heatmapData"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HeadingCounts holds the number of headings per level
type HeadingCounts struct {
	H1 int `json:"h1"`
	H2 int `json:"h2"`
	H3 int `json:"h3"`
	H4 int `json:"h4"`
	H5 int `json:"h5"`
	H6 int `json:"h6"`
}

// Add increments the counter for a heading level (1-6). Other levels are ignored.
func (h *HeadingCounts) Add(level int) {
	switch level {
	case 1:
		h.H1++
	case 2:
		h.H2++
	case 3:
		h.H3++
	case 4:
		h.H4++
	case 5:
		h.H5++
	case 6:
		h.H6++
	}
}

type ImageCounts struct {
	Total      int `json:"total"`
	WithAlt    int `json:"withAlt"`
	WithoutAlt int `json:"withoutAlt"`
}

type LinkCounts struct {
	Total    int `json:"total"`
	Internal int `json:"internal"`
	External int `json:"external"`
}

// ContentAnalysis is the structural snapshot of a rendered page
type ContentAnalysis struct {
	WordCount int           `json:"wordCount"`
	Headings  HeadingCounts `json:"headings"`
	Images    ImageCounts   `json:"images"`
	Links     LinkCounts    `json:"links"`
}

// TextPresence describes an optional text element such as the title
type TextPresence struct {
	Present bool    `json:"present"`
	Length  int     `json:"length"`
	Value   *string `json:"value"`
}

type HeadingSummary struct {
	HasH1            bool `json:"hasH1"`
	H1Count          int  `json:"h1Count"`
	HeadingStructure bool `json:"headingStructure"`
}

type ImageSummary struct {
	AltTextCoverage float64 `json:"altTextCoverage"`
}

type LinkSummary struct {
	InternalLinkCount int `json:"internalLinkCount"`
	ExternalLinkCount int `json:"externalLinkCount"`
}

// SeoAnalysis holds the on-page SEO signals
type SeoAnalysis struct {
	Title           TextPresence   `json:"title"`
	MetaDescription TextPresence   `json:"metaDescription"`
	Headings        HeadingSummary `json:"headings"`
	Images          ImageSummary   `json:"images"`
	Links           LinkSummary    `json:"links"`
}

type Performance struct {
	LoadTime      int64 `json:"loadTime"`
	ResourceCount int   `json:"resourceCount"`
}

type Accessibility struct {
	Score  int      `json:"score"`
	Issues []string `json:"issues"`
}

type Security struct {
	HasSSL          bool     `json:"hasSSL"`
	SecurityHeaders []string `json:"securityHeaders"`
}

// Legibility compares OCR output of the rendered page with its DOM text.
type Legibility struct {
	ReferenceWords int     `json:"referenceWords"`
	ExtractedWords int     `json:"extractedWords"`
	WER            float64 `json:"wordErrorRate"`
	CER            float64 `json:"characterErrorRate"`
}

// TechnicalAnalysis holds technology, performance, accessibility and security signals
type TechnicalAnalysis struct {
	Technologies  []string      `json:"technologies"`
	Performance   Performance   `json:"performance"`
	Accessibility Accessibility `json:"accessibility"`
	Security      Security      `json:"security"`
	Legibility    *Legibility   `json:"legibility,omitempty"`
}
