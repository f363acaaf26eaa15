// Package header implements HTTP header name normalization: splitting on
// '-', capitalizing the first rune of each dash-delimited segment, and
// rejoining, the same way canonical HTTP header casing ("Content-Type",
// "X-Sentry") is produced from arbitrary input casing.
package header

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalize rewrites key into its canonical dash-separated, title-cased
// form. Empty segments (leading, trailing, or doubled dashes) are
// preserved so the number of dashes in the output always matches the
// input.
func Normalize(key string) string {
	parts := strings.Split(key, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(part)
		parts[i] = string(unicode.ToUpper(r)) + part[size:]
	}
	return strings.Join(parts, "-")
}
