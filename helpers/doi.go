// Package helpers provides the text-normalization utilities shared by every
// format parser and by the deduplicator: DOI normalization, ISSN splitting,
// page-range formatting, RIS author-list splitting, and the Unicode/HTML
// cleanup used when the deduplicator prepares comparison keys.
package helpers

import (
	"regexp"
	"strings"
)

var validDOIPattern = regexp.MustCompile(`^10\.\S+$`)

// doiURLPrefixes are the URL/scheme prefixes normalizeDOI strips, tried in
// order, case-insensitively.
var doiURLPrefixes = []string{
	"https://doi.org/",
	"http://dx.doi.org/",
	"doi.org/",
	"doi:",
}

// NormalizeDOI implements spec §4.A: lowercase, strip any leading
// doi.org/doi: prefix, strip a trailing " [doi]" suffix, trim surrounding
// whitespace, and anchor the result at the first "10." substring it
// contains. The caller is responsible for discarding the result when it
// does not begin with "10." — NormalizeDOI returns whatever cleanup
// produces, even if that is not a valid DOI.
func NormalizeDOI(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	for _, prefix := range doiURLPrefixes {
		if strings.HasPrefix(s, prefix) {
			s = s[len(prefix):]
			break
		}
	}

	s = strings.TrimSuffix(s, " [doi]")
	s = strings.TrimSpace(s)

	if idx := strings.Index(s, "10."); idx >= 0 {
		return s[idx:]
	}
	return s
}

// IsValidDOI reports whether s is a well-formed normalized DOI: it begins
// with "10." and has a non-empty suffix.
func IsValidDOI(s string) bool {
	return validDOIPattern.MatchString(s)
}
