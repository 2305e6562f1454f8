// Package text provides utilities for text processing: URL slug
// generation and rune-aware truncation.
package text

import "strings"

// Slugify converts s into a URL-safe slug: lowercase ASCII letters and
// digits with single hyphens between words. When nothing usable
// remains, fallback is returned instead.
//
// Examples:
//
//	Slugify("Hello, World!", "doc")  // "hello-world"
//	Slugify("  résumé 2024 ", "doc") // "r-sum-2024"
//	Slugify("___", "doc")            // "doc"
func Slugify(s, fallback string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevHyphen := true // 先頭のハイフンを抑制
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		default:
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return fallback
	}
	return slug
}
