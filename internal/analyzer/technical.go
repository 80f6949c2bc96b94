package analyzer

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anime-shed/page-inspector-go/internal/dom"
	"github.com/anime-shed/page-inspector-go/pkg/models"
)

// TechnologySignature identifies a front-end technology either by a truthy
// window global or by a substring of a script src.
type TechnologySignature struct {
	Name         string
	Global       string
	ScriptSubstr string
}

// TechnologySignatures is checked in order; each technology is reported once.
var TechnologySignatures = []TechnologySignature{
	{Name: "Angular", Global: "angular"},
	{Name: "React", Global: "React"},
	{Name: "Vue", Global: "Vue"},
	{Name: "jQuery", Global: "jQuery"},
	{Name: "Bootstrap", ScriptSubstr: "bootstrap"},
	{Name: "Tailwind CSS", ScriptSubstr: "tailwind"},
}

// SecurityHeaders are the headers reported by the security check, in report order
var SecurityHeaders = []string{
	"X-Frame-Options",
	"Content-Security-Policy",
	"X-Content-Type-Options",
}

const accessibilityPenalty = 10

// TechnologyGlobals returns the window globals checked by the technical pass
func TechnologyGlobals() []string {
	globals := make([]string, 0, len(TechnologySignatures))
	for _, sig := range TechnologySignatures {
		if sig.Global != "" {
			globals = append(globals, sig.Global)
		}
	}
	return globals
}

// DetectTechnologies matches the facts against TechnologySignatures
func DetectTechnologies(f dom.TechnicalFacts) []string {
	present := make(map[string]bool, len(f.Globals))
	for _, g := range f.Globals {
		present[g] = true
	}

	technologies := []string{}
	for _, sig := range TechnologySignatures {
		switch {
		case sig.Global != "" && present[sig.Global]:
			technologies = append(technologies, sig.Name)
		case sig.ScriptSubstr != "" && anyContains(f.ScriptSrcs, sig.ScriptSubstr):
			technologies = append(technologies, sig.Name)
		}
	}
	return technologies
}

func anyContains(values []string, substr string) bool {
	for _, v := range values {
		if strings.Contains(v, substr) {
			return true
		}
	}
	return false
}

// AccessibilityFrom flags images without alt, a missing or repeated H1 and
// ARIA roles without a label. Each issue costs 10 points, floored at 0.
func AccessibilityFrom(f dom.TechnicalFacts) models.Accessibility {
	issues := []string{}
	for i := 0; i < f.ImagesWithoutAlt; i++ {
		issues = append(issues, "Image missing alt text")
	}
	switch {
	case f.H1Count == 0:
		issues = append(issues, "No H1 heading found")
	case f.H1Count > 1:
		issues = append(issues, "Multiple H1 headings found")
	}
	for _, role := range f.RolesMissingLabel {
		issues = append(issues, fmt.Sprintf("Element with role=%q missing aria-label", role))
	}

	score := 100 - accessibilityPenalty*len(issues)
	if score < 0 {
		score = 0
	}
	return models.Accessibility{Score: score, Issues: issues}
}

// SecurityFrom reports SSL and the security headers found either in
// <meta http-equiv> tags or in the document's response headers. headers may be nil.
func SecurityFrom(f dom.TechnicalFacts, headers http.Header) models.Security {
	found := make(map[string]bool, len(SecurityHeaders))
	for _, meta := range f.MetaHTTPEquiv {
		for _, name := range SecurityHeaders {
			if strings.EqualFold(strings.TrimSpace(meta.HTTPEquiv), name) || strings.Contains(meta.Content, name) {
				found[name] = true
			}
		}
	}
	for _, name := range SecurityHeaders {
		if headers.Get(name) != "" {
			found[name] = true
		}
	}

	detected := []string{}
	for _, name := range SecurityHeaders {
		if found[name] {
			detected = append(detected, name)
		}
	}
	return models.Security{
		HasSSL:          f.Protocol == "https:",
		SecurityHeaders: detected,
	}
}

// TechnicalAnalysisFrom assembles the technical block. Legibility is filled
// in separately.
func TechnicalAnalysisFrom(f dom.TechnicalFacts, headers http.Header, loadTime time.Duration) models.TechnicalAnalysis {
	return models.TechnicalAnalysis{
		Technologies: DetectTechnologies(f),
		Performance: models.Performance{
			LoadTime:      loadTime.Milliseconds(),
			ResourceCount: f.ResourceCount,
		},
		Accessibility: AccessibilityFrom(f),
		Security:      SecurityFrom(f, headers),
	}
}
