package helpers

import (
	"html"
	"regexp"
	"strconv"
	"strings"
)

var unicodeEscapePattern = regexp.MustCompile(`<U\+([0-9A-Fa-f]{4,6})>`)

// greekToASCII maps the standard set of Greek letters (upper and lower) to
// their conventional ASCII transliteration, plus the German sharp s, which
// the deduplicator's title normalization folds in alongside Greek per spec
// §4.H.
var greekToASCII = map[rune]string{
	'α': "a", 'Α': "a",
	'β': "b", 'Β': "b",
	'γ': "g", 'Γ': "g",
	'δ': "d", 'Δ': "d",
	'ε': "e", 'Ε': "e",
	'ζ': "z", 'Ζ': "z",
	'η': "e", 'Η': "e",
	'θ': "th", 'Θ': "th",
	'ι': "i", 'Ι': "i",
	'κ': "k", 'Κ': "k",
	'λ': "l", 'Λ': "l",
	'μ': "m", 'Μ': "m",
	'ν': "n", 'Ν': "n",
	'ξ': "x", 'Ξ': "x",
	'ο': "o", 'Ο': "o",
	'π': "p", 'Π': "p",
	'ρ': "r", 'Ρ': "r",
	'σ': "s", 'ς': "s", 'Σ': "s",
	'τ': "t", 'Τ': "t",
	'υ': "u", 'Υ': "u",
	'φ': "ph", 'Φ': "ph",
	'χ': "ch", 'Χ': "ch",
	'ψ': "ps", 'Ψ': "ps",
	'ω': "o", 'Ω': "o",
	'ß': "b",
}

// decodeUnicodeEscapes replaces EndNote/RIS-style "<U+00E9>" escapes with the
// code point they name. Malformed escapes are left untouched.
func decodeUnicodeEscapes(s string) string {
	return unicodeEscapePattern.ReplaceAllStringFunc(s, func(m string) string {
		sub := unicodeEscapePattern.FindStringSubmatch(m)
		cp, err := strconv.ParseInt(sub[1], 16, 32)
		if err != nil {
			return m
		}
		return string(rune(cp))
	})
}

// foldGreekToASCII transliterates Greek letters (and ß) to their ASCII
// equivalents, leaving every other rune untouched.
func foldGreekToASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if ascii, ok := greekToASCII[r]; ok {
			b.WriteString(ascii)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// htmlTagRegex strips markup tags during dedup title normalization (spec
// §4.A's Unicode/HTML cleanup); journal normalization does not use it. It
// is intentionally narrow — this package carries none of the teacher's
// broader HTML-to-plain-text machinery (block-tag-to-newline conversion,
// link preservation, and so on), since nothing in this domain stores or
// displays rendered HTML; the only HTML seen here is incidental markup
// inside a title on its way to a comparison key.
var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

var nonAlnumLowerPattern = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeTitleForMatch implements spec §4.H's norm_title: Unicode escape
// decode, HTML entity decode, HTML tag strip, Greek→ASCII, lowercase, then
// strip everything but [a-z0-9]. The result is used only for dedup
// comparison and is never stored on a Citation.
func NormalizeTitleForMatch(s string) string {
	s = decodeUnicodeEscapes(s)
	s = html.UnescapeString(s)
	s = htmlTagRegex.ReplaceAllString(s, "")
	s = foldGreekToASCII(s)
	s = strings.ToLower(s)
	return nonAlnumLowerPattern.ReplaceAllString(s, "")
}

var journalConferenceSuffixPattern = regexp.MustCompile(`(?i)\. Conference.*$`)

// NormalizeJournalForMatch implements spec §4.H's norm_journal: strip a
// trailing ". Conference..." suffix, lowercase, then strip everything but
// [a-z0-9].
func NormalizeJournalForMatch(s string) string {
	s = journalConferenceSuffixPattern.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	return nonAlnumLowerPattern.ReplaceAllString(s, "")
}

var leadingDigitRunPattern = regexp.MustCompile(`\d+`)

// NormalizeVolumeForMatch returns the first contiguous run of digits in s,
// or "" if s contains none.
func NormalizeVolumeForMatch(s string) string {
	return leadingDigitRunPattern.FindString(s)
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// NormalizePagesForMatch lowercases s and removes all whitespace.
func NormalizePagesForMatch(s string) string {
	return whitespacePattern.ReplaceAllString(strings.ToLower(s), "")
}
