package helpers

import "strings"

// Line is one physical line of input, with its 1-based line number and the
// byte offsets of its content (Start, inclusive) and of the position just
// past its line terminator (End, exclusive) — so End is also the Start of
// the next line, and a [record.Start, record.End) span is always a valid
// slice of the original input.
type Line struct {
	Text   string
	Number int
	Start  int
	End    int
}

// ScanLines splits input into Lines, tolerating \n, \r\n, and \r endings
// (spec §6). A trailing newline produces no spurious empty final line; a
// missing trailing newline still yields a final Line for the remainder.
func ScanLines(input string) []Line {
	var lines []Line
	n := len(input)
	offset := 0
	lineNo := 1

	for offset < n {
		idx := offset
		for idx < n && input[idx] != '\n' && input[idx] != '\r' {
			idx++
		}

		end := idx
		if idx < n {
			if input[idx] == '\r' && idx+1 < n && input[idx+1] == '\n' {
				end = idx + 2
			} else {
				end = idx + 1
			}
		}

		lines = append(lines, Line{Text: input[offset:idx], Number: lineNo, Start: offset, End: end})
		lineNo++
		offset = end
	}

	return lines
}

// StripBOM removes a leading UTF-8 byte-order mark, if present.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, "\xef\xbb\xbf")
}
