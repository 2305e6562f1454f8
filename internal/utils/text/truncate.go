package text

import "unicode/utf8"

// TruncateRunes shortens s to at most limit Unicode characters,
// appending an ellipsis when anything was cut. Counting runes instead
// of bytes keeps multi-byte text (Japanese, emoji) intact.
func TruncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "…"
}
