package csv

import "strings"

// sniffDelimiter implements spec §4.F's auto-detection: sample the first
// few non-empty lines and pick the delimiter among ',', ';', and '\t' that
// yields the most consistent non-zero column count across them. Ties
// favor comma, since it is tried first.
func sniffDelimiter(input string) byte {
	sample := sampleNonEmptyLines(input, 5)
	if len(sample) == 0 {
		return ','
	}

	best := byte(',')
	bestScore := -1
	for _, d := range sniffDelimiters {
		score := delimiterConsistency(sample, d)
		if score > bestScore {
			bestScore = score
			best = d
		}
	}
	return best
}

func sampleNonEmptyLines(input string, n int) []string {
	var out []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, line)
		if len(out) >= n {
			break
		}
	}
	return out
}

// delimiterConsistency counts how many fields d would produce per line,
// and returns that count when every sampled line agrees and it's more than
// one field; otherwise 0, so a delimiter that never appears never wins.
func delimiterConsistency(lines []string, d byte) int {
	sep := string(d)
	first := strings.Count(lines[0], sep) + 1
	if first <= 1 {
		return 0
	}
	for _, line := range lines[1:] {
		if strings.Count(line, sep)+1 != first {
			return 0
		}
	}
	return first
}
