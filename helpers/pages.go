package helpers

import (
	"strings"
)

// FormatPages implements spec §4.A: combine a start and end page string into
// the single display form stored on Citation.Pages.
func FormatPages(start, end string) string {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if start == "" && end == "" {
		return ""
	}
	if end == "" {
		return start
	}
	if start == end {
		return start
	}

	prefix := alphaPrefix(start)
	startDigits := start[len(prefix):]

	if prefix != "" && isDigits(end) && len(end) <= len(startDigits) {
		return start + "-" + prefix + end
	}

	if isDigits(startDigits) && isDigits(end) && len(end) < len(startDigits) {
		completed := startDigits[:len(startDigits)-len(end)] + end
		return start + "-" + completed
	}

	return start + "-" + end
}

// alphaPrefix returns the leading run of non-digit characters in s.
func alphaPrefix(s string) string {
	for i, r := range s {
		if r >= '0' && r <= '9' {
			return s[:i]
		}
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
