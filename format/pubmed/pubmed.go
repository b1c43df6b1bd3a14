// Package pubmed implements the PubMed/MEDLINE tag+continuation citation
// format (spec §4.D).
package pubmed

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/citeparse/citeparse/citation"
	"github.com/citeparse/citeparse/format"
	"github.com/citeparse/citeparse/helpers"
)

// Format implements format.Parser for PubMed/MEDLINE.
type Format struct{}

func (Format) ID() citation.Format { return citation.FormatPubMed }

func init() {
	format.Register(Format{})
}

var (
	tagLinePattern = regexp.MustCompile(`^([A-Z]{1,4})\s*- (.*)$`)
	sniffPattern   = regexp.MustCompile(`(?m)^(PMID|TI|AU)- `)
)

// CanParse implements spec §4.G's PubMed sniff.
func (Format) CanParse(peek []byte) bool {
	return sniffPattern.Match(peek)
}

var monthAbbrevs = map[string]int{
	"Jan": 1, "Feb": 2, "Mar": 3, "Apr": 4, "May": 5, "Jun": 6,
	"Jul": 7, "Aug": 8, "Sep": 9, "Oct": 10, "Nov": 11, "Dec": 12,
}

var dateParsePattern = regexp.MustCompile(`^(\d{4})(?: (\w+)(?: (\d+))?)?`)

type tagValue struct {
	tag   string
	value string
}

// Parse implements the tag+continuation grammar and record boundary rule
// from spec §4.D: records are separated by blank lines; continuation lines
// begin with six spaces.
func (Format) Parse(input string) ([]citation.Citation, *citation.ParseError) {
	input = helpers.StripBOM(input)
	lines := helpers.ScanLines(input)

	var citations []citation.Citation
	var entries []tagValue
	recording := false
	var recordStartLine, recordStartOffset int

	emit := func(endOffset int) *citation.ParseError {
		if len(entries) == 0 {
			return nil
		}
		c, err := buildCitation(entries, recordStartLine, recordStartOffset, endOffset)
		if err != nil {
			return err
		}
		citations = append(citations, c)
		return nil
	}

	for _, line := range lines {
		if strings.TrimSpace(line.Text) == "" {
			if recording {
				if err := emit(line.Start); err != nil {
					return nil, err
				}
				entries = nil
				recording = false
			}
			continue
		}

		if strings.HasPrefix(line.Text, "      ") {
			if len(entries) > 0 {
				last := &entries[len(entries)-1]
				last.value = last.value + " " + strings.TrimSpace(line.Text)
			}
			continue
		}

		m := tagLinePattern.FindStringSubmatch(line.Text)
		if m == nil {
			continue
		}

		if !recording {
			recording = true
			recordStartLine = line.Number
			recordStartOffset = line.Start
		}
		entries = append(entries, tagValue{tag: m[1], value: m[2]})
	}

	if recording {
		if err := emit(len(input)); err != nil {
			return nil, err
		}
	}

	return citations, nil
}

func buildCitation(entries []tagValue, lineNo, startOffset, endOffset int) (citation.Citation, *citation.ParseError) {
	var c citation.Citation

	titleSet := false
	var btiTitle, dateRaw string
	var pendingFullName string
	havePending := false

	flushPending := func() {
		if havePending {
			c.Authors = append(c.Authors, citation.NewAuthor(pendingFullName))
			havePending = false
			pendingFullName = ""
		}
	}

	for _, e := range entries {
		switch e.tag {
		case "PMID":
			c.PMID = e.value
		case "TI":
			c.Title = e.value
			titleSet = true
		case "BTI":
			btiTitle = e.value
		case "AB":
			c.AbstractText = e.value
		case "JT":
			c.Journal = e.value
		case "TA":
			c.JournalAbbr = e.value
		case "VI":
			c.Volume = e.value
		case "IP":
			c.Issue = e.value
		case "PG":
			c.Pages = e.value
		case "IS":
			c.ISSN = append(c.ISSN, helpers.SplitISSN(e.value)...)
		case "PMC":
			c.PMCID = e.value
		case "LA":
			c.Language = e.value
		case "MH":
			c.MeshTerms = append(c.MeshTerms, e.value)
		case "OT":
			c.Keywords = append(c.Keywords, e.value)
		case "DP":
			dateRaw = e.value
		case "FAU":
			flushPending()
			pendingFullName = e.value
			havePending = true
		case "AU":
			if havePending && sameSurname(pendingFullName, e.value) {
				c.Authors = append(c.Authors, citation.NewAuthor(pendingFullName))
				havePending = false
				pendingFullName = ""
			} else {
				flushPending()
				c.Authors = append(c.Authors, citation.NewAuthor(e.value))
			}
		case "AD":
			if n := len(c.Authors); n > 0 {
				c.Authors[n-1].Affiliations = append(c.Authors[n-1].Affiliations, e.value)
			}
		case "LID":
			if c.DOI == "" && strings.HasSuffix(e.value, " [doi]") {
				if n := helpers.NormalizeDOI(strings.TrimSuffix(e.value, " [doi]")); helpers.IsValidDOI(n) {
					c.DOI = n
				}
			}
		case "AID":
			if c.DOI == "" && strings.HasSuffix(e.value, " [doi]") {
				if n := helpers.NormalizeDOI(strings.TrimSuffix(e.value, " [doi]")); helpers.IsValidDOI(n) {
					c.DOI = n
				}
			}
		}
	}
	flushPending()

	if !titleSet {
		if btiTitle != "" {
			c.Title = btiTitle
		} else {
			return citation.Citation{}, citation.AtLine(lineNo, citation.FormatPubMed,
				citation.NewMissingValue("title", "TI")).WithSpan(citation.SourceSpan{Start: startOffset, End: endOffset})
		}
	}

	if dateRaw != "" {
		date, ve := parseDP(dateRaw)
		if ve != nil {
			return citation.Citation{}, citation.AtLine(lineNo, citation.FormatPubMed, *ve).
				WithSpan(citation.SourceSpan{Start: startOffset, End: endOffset})
		}
		c.Date = date
	}

	return c, nil
}

// sameSurname implements step 3 of the FAU/AU algorithm (spec §4.D):
// pending's first whitespace-separated token (the surname in "Surname,
// Given") compared case-insensitively to au's first token.
func sameSurname(fau, au string) bool {
	fauFields := strings.Fields(strings.TrimSuffix(fau, ","))
	auFields := strings.Fields(au)
	if len(fauFields) == 0 || len(auFields) == 0 {
		return false
	}
	fauSurname := strings.TrimSuffix(fauFields[0], ",")
	return strings.EqualFold(fauSurname, auFields[0])
}

func parseDP(raw string) (*citation.Date, *citation.ValueError) {
	m := dateParsePattern.FindStringSubmatch(raw)
	if m == nil {
		ve := citation.NewBadValue("date", "DP", raw, "expected a 4-digit year")
		return nil, &ve
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		ve := citation.NewBadValue("date", "DP", raw, "expected a 4-digit year")
		return nil, &ve
	}

	date := citation.NewDateFromYear(year)
	if m[2] != "" {
		if month, ok := monthAbbrevs[m[2]]; ok {
			mm := month
			date.Month = &mm
			if m[3] != "" {
				if day, err := strconv.Atoi(m[3]); err == nil && day >= 1 && day <= 31 {
					dd := day
					date.Day = &dd
				}
			}
		}
	}
	return date, nil
}
