// Package slug generates URL-friendly slugs for UID fields on content
// entries, matching the conventions the CMS itself applies.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var multiHyphen = regexp.MustCompile(`-{2,}`)

// Make converts a title string into a URL-friendly slug. It lowercases the
// input, replaces spaces and underscores with hyphens, strips characters
// that are not letters, digits, or hyphens, collapses repeated hyphens, and
// trims leading/trailing hyphens. Unicode letters are preserved.
func Make(title string) string {
	// Normalize Unicode to NFC form (e.g., combining accents become precomposed).
	s := norm.NFC.String(title)
	s = strings.ToLower(s)

	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var buf strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' {
			buf.WriteRune(r)
		}
	}
	s = buf.String()

	s = multiHyphen.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
