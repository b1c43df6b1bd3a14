package helpers

import (
	"regexp"
	"strings"
)

// issnWithQualifierPattern matches an ISSN (NNNN-NNNC, C possibly X/x) and
// an immediately following parenthesized qualifier like " (Print)".
var issnWithQualifierPattern = regexp.MustCompile(`(?i)\d{4}-\d{3}[\dX](\s*\([^)]*\))?`)

// SplitISSN implements spec §4.A: split s into ISSN-shaped substrings,
// keeping any parenthesized qualifier that immediately follows each match
// (e.g. "1234-5678 (Print)").
func SplitISSN(s string) []string {
	return issnWithQualifierPattern.FindAllString(s, -1)
}

// issnBarePattern matches a bare ISSN with no qualifier, used by the
// deduplicator's normalization pass.
var issnBarePattern = regexp.MustCompile(`(?i)\d{4}-\d{3}[\dX]`)

// NormalizeISSNForMatch strips any parenthesized qualifier and uppercases
// the check digit, returning the bare ISSN used for dedup comparison. It
// returns "" if s contains no ISSN-shaped substring.
func NormalizeISSNForMatch(s string) string {
	m := issnBarePattern.FindString(s)
	if m == "" {
		return ""
	}
	return strings.ToUpper(m)
}
