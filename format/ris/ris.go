// Package ris implements the RIS tag-line citation format (spec §4.C).
package ris

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/citeparse/citeparse/citation"
	"github.com/citeparse/citeparse/format"
	"github.com/citeparse/citeparse/helpers"
)

// Format implements format.Parser for RIS.
type Format struct{}

func (Format) ID() citation.Format { return citation.FormatRIS }

func init() {
	format.Register(Format{})
}

var (
	tagLinePattern    = regexp.MustCompile(`^([A-Z][A-Z0-9])  - (.*)$`)
	risSniffLine      = regexp.MustCompile(`(?m)^[A-Z]{2}  - `)
	risSniffStartLine = regexp.MustCompile(`(?m)^TY  - `)
)

// CanParse implements spec §4.G's RIS sniff: a line matching "XX  - " plus a
// "TY  - " line somewhere in the peek.
func (Format) CanParse(peek []byte) bool {
	s := string(peek)
	return risSniffLine.MatchString(s) && risSniffStartLine.MatchString(s)
}

// risTypeNames maps RIS two-to-four-letter reference type codes to their
// canonical display names (spec §4.C). Unknown codes pass through verbatim.
var risTypeNames = map[string]string{
	"JOUR": "Journal Article",
	"BOOK": "Book",
	"CHAP": "Book Chapter",
	"CONF": "Conference Paper",
	"THES": "Thesis",
	"RPRT": "Report",
	"GEN":  "Generic",
	"MGZN": "Magazine Article",
	"NEWS": "Newspaper Article",
	"ABST": "Abstract",
	"PAT":  "Patent",
	"DATA": "Dataset",
	"ELEC": "Electronic Source",
	"COMP": "Computer Program",
	"UNPB": "Unpublished Work",
}

func risTypeName(code string) string {
	if name, ok := risTypeNames[code]; ok {
		return name
	}
	return code
}

// tagValue is one accumulated RIS tag/value pair, in source order.
// Continuation lines extend the value of the most recently accumulated
// entry.
type tagValue struct {
	tag   string
	value string
}

// Parse implements the two-state (Outside/InRecord) machine from spec
// §4.C over the input's lines.
func (Format) Parse(input string) ([]citation.Citation, *citation.ParseError) {
	input = helpers.StripBOM(input)
	lines := helpers.ScanLines(input)

	var citations []citation.Citation
	inRecord := false
	var entries []tagValue
	var recordStartLine, recordStartOffset int

	for _, line := range lines {
		m := tagLinePattern.FindStringSubmatch(line.Text)

		if !inRecord {
			if m != nil && m[1] == "TY" {
				inRecord = true
				recordStartLine = line.Number
				recordStartOffset = line.Start
				entries = []tagValue{{tag: "TY", value: m[2]}}
			}
			continue
		}

		switch {
		case m != nil && m[1] == "ER":
			c, perr := buildCitation(entries, recordStartLine, recordStartOffset, line.End)
			if perr != nil {
				return nil, perr
			}
			citations = append(citations, c)
			inRecord = false
			entries = nil

		case m != nil:
			entries = append(entries, tagValue{tag: m[1], value: m[2]})

		default:
			if strings.TrimSpace(line.Text) == "" || len(entries) == 0 {
				continue
			}
			last := &entries[len(entries)-1]
			if last.value == "" {
				last.value = line.Text
			} else {
				last.value = last.value + " " + line.Text
			}
		}
	}

	if inRecord {
		endOffset := len(input)
		if c, err := buildCitation(entries, recordStartLine, recordStartOffset, endOffset); err == nil {
			citations = append(citations, c)
		}
	}

	return citations, nil
}

func buildCitation(entries []tagValue, lineNo, startOffset, endOffset int) (citation.Citation, *citation.ParseError) {
	var c citation.Citation

	const unset = 99
	typeCode := ""
	titlePriority := unset
	journalPriority := unset
	journalAbbrPriority := unset
	datePriority := unset
	abstractPriority := unset
	var dateRaw, dateTag, startPage, endPage string
	var authorsRaw, issnRaw []string

	for _, e := range entries {
		switch e.tag {
		case "TY":
			typeCode = e.value
		case "TI":
			if titlePriority > 1 {
				c.Title = e.value
				titlePriority = 1
			}
		case "T1":
			if titlePriority > 2 {
				c.Title = e.value
				titlePriority = 2
			}
		case "AU", "A1", "A2", "A3", "A4":
			authorsRaw = append(authorsRaw, e.value)
		case "JF":
			if journalPriority > 1 {
				c.Journal = e.value
				journalPriority = 1
			}
		case "T2":
			if journalPriority > 2 {
				c.Journal = e.value
				journalPriority = 2
			}
		case "JO":
			if journalPriority > 3 {
				c.Journal = e.value
				journalPriority = 3
			}
		case "JA":
			if journalAbbrPriority > 1 {
				c.JournalAbbr = e.value
				journalAbbrPriority = 1
			}
		case "J2":
			if journalAbbrPriority > 2 {
				c.JournalAbbr = e.value
				journalAbbrPriority = 2
			}
		case "PY":
			if datePriority > 1 {
				dateRaw, dateTag, datePriority = e.value, "PY", 1
			}
		case "Y1":
			if datePriority > 2 {
				dateRaw, dateTag, datePriority = e.value, "Y1", 2
			}
		case "VL":
			c.Volume = e.value
		case "IS":
			c.Issue = e.value
		case "SP":
			startPage = e.value
		case "EP":
			endPage = e.value
		case "DO":
			if n := helpers.NormalizeDOI(e.value); helpers.IsValidDOI(n) {
				c.DOI = n
			}
		case "AB":
			if abstractPriority > 1 {
				c.AbstractText = e.value
				abstractPriority = 1
			}
		case "N2":
			if abstractPriority > 2 {
				c.AbstractText = e.value
				abstractPriority = 2
			}
		case "KW":
			c.Keywords = append(c.Keywords, e.value)
		case "SN":
			issnRaw = append(issnRaw, e.value)
		case "UR", "L1", "L2", "L3", "L4", "LK":
			c.URLs = append(c.URLs, e.value)
		}
	}

	if titlePriority == unset {
		return citation.Citation{}, citation.AtLine(lineNo, citation.FormatRIS,
			citation.NewMissingValue("title", "TI")).WithSpan(citation.SourceSpan{Start: startOffset, End: endOffset})
	}

	for _, raw := range authorsRaw {
		for _, piece := range helpers.SplitRISAuthors(raw) {
			c.Authors = append(c.Authors, citation.NewAuthor(piece))
		}
	}

	c.CitationType = risTypeName(typeCode)
	c.Pages = helpers.FormatPages(startPage, endPage)

	for _, raw := range issnRaw {
		c.ISSN = append(c.ISSN, helpers.SplitISSN(raw)...)
	}

	if dateRaw != "" {
		date, ve := parseRISDate(dateRaw, dateTag)
		if ve != nil {
			return citation.Citation{}, citation.AtLine(lineNo, citation.FormatRIS, *ve).
				WithSpan(citation.SourceSpan{Start: startOffset, End: endOffset})
		}
		c.Date = date
	}

	if c.DOI == "" {
		const doiURLMarker = "doi.org/"
		for _, u := range c.URLs {
			idx := strings.Index(u, doiURLMarker)
			if idx < 0 {
				continue
			}
			norm := helpers.NormalizeDOI(u[idx+len(doiURLMarker):])
			if helpers.IsValidDOI(norm) {
				c.DOI = norm
				break
			}
		}
	}

	return c, nil
}

// parseRISDate parses the RIS "YYYY[/MM[/DD[/rest]]]" date grammar. Trailing
// slash segments beyond day are ignored; an unparseable month or day is
// silently dropped rather than erroring, but a non-4-digit year is a
// BadValue.
func parseRISDate(raw, tag string) (*citation.Date, *citation.ValueError) {
	parts := strings.Split(raw, "/")

	yearPart := parts[0]
	if len(yearPart) != 4 {
		ve := citation.NewBadValue("date", tag, raw, "year must be a 4-digit integer")
		return nil, &ve
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		ve := citation.NewBadValue("date", tag, raw, "year must be a 4-digit integer")
		return nil, &ve
	}

	month, day := 0, 0
	if len(parts) > 1 && parts[1] != "" {
		if m, err := strconv.Atoi(parts[1]); err == nil {
			month = m
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if d, err := strconv.Atoi(parts[2]); err == nil {
			day = d
		}
	}

	return citation.NewDateFromYMD(year, month, day), nil
}
