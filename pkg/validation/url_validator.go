package validation

import (
	"net/url"
	"strings"

	apperrors "github.com/anime-shed/page-inspector-go/internal/errors"
)

// URLValidator handles URL normalization and validation
type URLValidator struct {
	allowedSchemes []string
	allowedHosts   []string
}

// NewURLValidator creates a new URL validator with default settings
func NewURLValidator() *URLValidator {
	return &URLValidator{
		allowedSchemes: []string{"http", "https"},
		allowedHosts:   []string{}, // empty means all hosts allowed
	}
}

// NewURLValidatorWithOptions creates a URL validator with custom options
func NewURLValidatorWithOptions(schemes []string, hosts []string) *URLValidator {
	return &URLValidator{
		allowedSchemes: schemes,
		allowedHosts:   hosts,
	}
}

// Validate normalizes rawURL and checks it against the validator's rules.
// The normalized form is returned on success.
func (v *URLValidator) Validate(rawURL string) (string, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return "", err
	}

	parsedURL, err := url.Parse(normalized)
	if err != nil {
		return "", apperrors.NewValidationError("Invalid URL format", err)
	}
	if !v.isSchemeAllowed(parsedURL.Scheme) {
		return "", apperrors.NewValidationError("URL scheme not allowed", nil)
	}
	if !v.isHostAllowed(parsedURL.Hostname()) {
		return "", apperrors.NewValidationError("URL host not allowed", nil)
	}
	return normalized, nil
}

// NormalizeURL trims and lowercases the URL, strips trailing slashes,
// defaults the scheme to https and drops the :80 and :443 ports.
// NormalizeURL(NormalizeURL(u)) == NormalizeURL(u) for every accepted u.
func NormalizeURL(rawURL string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(rawURL))
	if s == "" {
		return "", apperrors.NewValidationError("URL cannot be empty", nil)
	}
	if i := strings.Index(s, "://"); i >= 0 {
		if scheme := s[:i]; scheme != "http" && scheme != "https" {
			return "", apperrors.NewValidationError("URL scheme not allowed", nil)
		}
	} else {
		s = "https://" + s
	}
	s = strings.TrimRight(s, "/")

	parsedURL, err := url.Parse(s)
	if err != nil {
		return "", apperrors.NewValidationError("Invalid URL format", err)
	}
	host := parsedURL.Hostname()
	if host == "" {
		return "", apperrors.NewValidationError("URL must have a valid host", nil)
	}

	if port := parsedURL.Port(); port == "80" || port == "443" {
		if strings.Contains(host, ":") {
			host = "[" + host + "]"
		}
		parsedURL.Host = host
	}

	// url.String re-escapes with upper-case hex, lower-case it again so the
	// result parses back to itself.
	return strings.ToLower(strings.TrimRight(parsedURL.String(), "/")), nil
}

// isSchemeAllowed checks if the URL scheme is in the allowed list
func (v *URLValidator) isSchemeAllowed(scheme string) bool {
	for _, allowed := range v.allowedSchemes {
		if scheme == allowed {
			return true
		}
	}
	return false
}

// isHostAllowed checks if the URL host is in the allowed list
// Returns true if no host restrictions are set (empty allowedHosts)
func (v *URLValidator) isHostAllowed(host string) bool {
	if len(v.allowedHosts) == 0 {
		return true
	}
	for _, allowed := range v.allowedHosts {
		if host == allowed {
			return true
		}
	}
	return false
}
