package csv

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/citeparse/citeparse/citation"
	"github.com/citeparse/citeparse/helpers"
)

// Parse implements spec §4.F's row-to-Citation mapping over a header-driven
// encoding/csv.Reader. The first row is always the header; every later row
// is one candidate Citation.
func (f *Format) Parse(input string) ([]citation.Citation, *citation.ParseError) {
	input = helpers.StripBOM(input)
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	cfg := f.Config
	delim := cfg.Delimiter
	if cfg.AutoDetect {
		delim = sniffDelimiter(input)
	}

	r := csv.NewReader(strings.NewReader(input))
	r.Comma = rune(delim)
	r.FieldsPerRecord = 0
	if cfg.Flexible {
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
	}

	headerRow, err := r.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, csvSyntaxError(err, 0, len(input))
	}

	headers := make([]string, len(headerRow))
	for i, h := range headerRow {
		if cfg.Trim {
			h = strings.TrimSpace(h)
		}
		headers[i] = h
	}

	var citations []citation.Citation
	prevOffset := r.InputOffset()

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, csvSyntaxError(err, int(prevOffset), len(input))
		}

		line, _ := r.FieldPos(0)
		endOffset := r.InputOffset()
		span := citation.SourceSpan{Start: int(prevOffset), End: int(endOffset)}

		c, verr := rowToCitation(row, headers, cfg)
		if verr != nil {
			return nil, citation.AtLine(line, citation.FormatCSV, *verr).WithSpan(span)
		}
		citations = append(citations, c)
		prevOffset = endOffset
	}

	return citations, nil
}

// csvSyntaxError adapts an encoding/csv error into a ParseError, using the
// line number encoding/csv's own *csv.ParseError carries when available.
func csvSyntaxError(err error, start, end int) *citation.ParseError {
	span := citation.SourceSpan{Start: start, End: end}
	if pe, ok := err.(*csv.ParseError); ok {
		return citation.AtLine(pe.Line, citation.FormatCSV, citation.NewSyntaxError(err.Error())).WithSpan(span)
	}
	return citation.WithoutPosition(citation.FormatCSV, citation.NewSyntaxError(err.Error()))
}

// rowToCitation maps one data row to a Citation using the header's
// canonical-field resolution. Columns that resolve to no canonical field
// are stashed in ExtraFields under their raw header text.
func rowToCitation(row, headers []string, cfg Config) (citation.Citation, *citation.ValueError) {
	var c citation.Citation

	for i, header := range headers {
		if i >= len(row) {
			break
		}
		cell := row[i]
		if cfg.Trim {
			cell = strings.TrimSpace(cell)
		}
		if cell == "" {
			continue
		}

		canon, ok := "", false
		if cfg.HeaderAliases != nil {
			canon, ok = cfg.HeaderAliases.Canonicalize(header)
		}
		if !ok {
			c.AddExtra(header, cell)
			continue
		}

		switch canon {
		case "title":
			c.Title = cell
		case "authors":
			for _, piece := range splitSemicolon(cell) {
				c.Authors = append(c.Authors, citation.NewAuthor(piece))
			}
		case "year":
			if y, err := strconv.Atoi(cell); err == nil {
				c.Date = citation.NewDateFromYear(y)
			}
		case "journal":
			c.Journal = cell
		case "volume":
			c.Volume = cell
		case "issue":
			c.Issue = cell
		case "pages":
			c.Pages = cell
		case "doi":
			norm := helpers.NormalizeDOI(cell)
			if helpers.IsValidDOI(norm) {
				c.DOI = norm
			}
		case "abstract":
			c.AbstractText = cell
		case "keywords":
			c.Keywords = append(c.Keywords, splitSemicolon(cell)...)
		}
	}

	if strings.TrimSpace(c.Title) == "" {
		ve := citation.NewMissingValue("title", "title")
		return citation.Citation{}, &ve
	}

	return c, nil
}

// splitSemicolon implements spec §4.F: authors and keywords cells split on
// ";" only — no "&"/"and" splitting, unlike RIS (spec §9's second Open
// Question; the current ";"-only behavior was kept as-is).
func splitSemicolon(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ";") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
