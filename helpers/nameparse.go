package helpers

import "strings"

// SplitRISAuthors implements the RIS author-list splitting rule from
// spec §4.C: split in order on ";", then on " & ", then on " and ", never on
// a bare comma (a comma belongs to "Last, First"). Each piece is trimmed;
// empty pieces are dropped.
func SplitRISAuthors(s string) []string {
	pieces := []string{s}
	for _, sep := range []string{";", " & ", " and "} {
		pieces = splitAll(pieces, sep)
	}
	return cleanNameList(pieces)
}

func splitAll(pieces []string, sep string) []string {
	var out []string
	for _, p := range pieces {
		out = append(out, strings.Split(p, sep)...)
	}
	return out
}

func cleanNameList(parts []string) []string {
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
