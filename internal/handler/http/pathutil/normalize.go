package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Patterns are evaluated in order from most specific to least specific.
// Pre-compiled at initialization for optimal performance.
var pathPatterns = []*PathPattern{
	// Post routes with IDs or slugs (numeric IDs checked first)
	{Pattern: regexp.MustCompile(`^/posts/\d+$`), Template: "/posts/:id"},
	{Pattern: regexp.MustCompile(`^/posts/[a-z0-9-]+$`), Template: "/posts/:slug"},

	// Resume routes with IDs
	{Pattern: regexp.MustCompile(`^/resumes/\d+$`), Template: "/resumes/:id"},

	// Template routes with slugs
	{Pattern: regexp.MustCompile(`^/templates/[a-z0-9-]+/share$`), Template: "/templates/:slug/share"},
	{Pattern: regexp.MustCompile(`^/templates/[a-z0-9-]+$`), Template: "/templates/:slug"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with identifiers (e.g., /resumes/123) to template format
// (e.g., /resumes/:id). Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/resumes/123")               // "/resumes/:id"
//	NormalizePath("/templates/invoice")         // "/templates/:slug"
//	NormalizePath("/templates/invoice/share")   // "/templates/:slug/share"
//	NormalizePath("/health")                    // "/health" (unchanged)
//	NormalizePath("/medium/sync")               // "/medium/sync" (unchanged)
//
// Query parameters and trailing slashes are handled:
//
//	NormalizePath("/resumes/123?view=1")        // "/resumes/:id"
//	NormalizePath("/resumes/123/")              // "/resumes/:id"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	// No match found, return original path
	// Static paths like /health, /metrics, /auth/token pass through unchanged
	return path
}
