// Package dom holds the DOM query routines run inside a rendered page and
// the raw facts they return. Renderers execute a Script and decode its JSON
// result into one of the fact types below.
package dom

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

type ImageFacts struct {
	Total   int `json:"total"`
	WithAlt int `json:"withAlt"`
}

// ContentFacts is returned by the ContentFacts script
type ContentFacts struct {
	WordCount int        `json:"wordCount"`
	Headings  []Heading  `json:"headings"`
	Images    ImageFacts `json:"images"`
	// Links holds the resolved href of every <a>, "" when the anchor has none.
	Links    []string `json:"links"`
	Origin   string   `json:"origin"`
	HTMLSize int64    `json:"htmlSize"`
}

// SEOFacts is returned by the SEOFacts script
type SEOFacts struct {
	Title           string     `json:"title"`
	MetaDescription *string    `json:"metaDescription"`
	H1Count         int        `json:"h1Count"`
	Images          ImageFacts `json:"images"`
	Links           []string   `json:"links"`
	Origin          string     `json:"origin"`
}

type MetaHTTPEquiv struct {
	HTTPEquiv string `json:"httpEquiv"`
	Content   string `json:"content"`
}

// TechnicalFacts is returned by the TechnicalFacts script
type TechnicalFacts struct {
	// Globals lists the checked window globals that are defined and truthy.
	Globals           []string        `json:"globals"`
	ScriptSrcs        []string        `json:"scriptSrcs"`
	Protocol          string          `json:"protocol"`
	MetaHTTPEquiv     []MetaHTTPEquiv `json:"metaHttpEquiv"`
	ImagesWithoutAlt  int             `json:"imagesWithoutAlt"`
	H1Count           int             `json:"h1Count"`
	RolesMissingLabel []string        `json:"rolesMissingLabel"`
	ResourceCount     int             `json:"resourceCount"`
}

// Element is one element matched by an attention selector, with its
// bounding box in viewport pixels.
type Element struct {
	Tag      string  `json:"tag"`
	HasLabel bool    `json:"hasLabel"`
	Left     float64 `json:"left"`
	Top      float64 `json:"top"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
}

// AttentionSnapshot is returned by the Attention script. Elements are
// listed per selector in selector order, so an element matched by two
// selectors appears twice.
type AttentionSnapshot struct {
	ViewportWidth        float64   `json:"viewportWidth"`
	ViewportHeight       float64   `json:"viewportHeight"`
	DocumentScrollHeight float64   `json:"documentScrollHeight"`
	BodyScrollHeight     float64   `json:"bodyScrollHeight"`
	Elements             []Element `json:"elements"`
}
