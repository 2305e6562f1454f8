package pathutil

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidSlug is returned when the slug in the URL path is invalid.
var ErrInvalidSlug = errors.New("invalid slug")

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ExtractSlug extracts a slug segment from a URL path.
// It removes the given prefix and an optional suffix, and validates the
// remaining segment against the slug alphabet.
//
// Example:
//
//	slug, err := ExtractSlug("/templates/invoice/share", "/templates/", "/share")
//	// Returns: "invoice", nil
func ExtractSlug(path, prefix, suffix string) (string, error) {
	slug := strings.TrimPrefix(path, prefix)
	if suffix != "" {
		slug = strings.TrimSuffix(slug, suffix)
	}
	if !slugPattern.MatchString(slug) {
		return "", ErrInvalidSlug
	}
	return slug, nil
}
