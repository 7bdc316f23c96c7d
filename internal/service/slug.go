// Package service provides business logic for the application.
package service

import (
	"regexp"
	"strings"
)

// slugFormatRegex validates explicitly supplied slugs: URL-safe,
// lowercase alphanumerics and single hyphens, 1-100 chars.
var slugFormatRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

const maxSlugLength = 100

// Slugify derives a URL-safe slug from a product name: lowercase, words
// joined by hyphens, non-alphanumeric characters stripped.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen

	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '\t' || r == '\n' || r == '-' || r == '_':
			// Word separators become single hyphens.
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
		// Any other non-alphanumeric character is stripped.
	}

	slug := strings.TrimSuffix(b.String(), "-")
	if len(slug) > maxSlugLength {
		slug = strings.TrimSuffix(slug[:maxSlugLength], "-")
	}
	return slug
}

// ValidSlugFormat reports whether an explicitly supplied slug is acceptable.
func ValidSlugFormat(slug string) bool {
	return len(slug) <= maxSlugLength && slugFormatRegex.MatchString(slug)
}
