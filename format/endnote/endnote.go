// Package endnote implements the EndNote XML citation format (spec §4.E)
// using a streaming, SAX-style element walk over encoding/xml.Decoder.
package endnote

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/citeparse/citeparse/citation"
	"github.com/citeparse/citeparse/format"
	"github.com/citeparse/citeparse/helpers"
)

// Format implements format.Parser for EndNote XML.
type Format struct{}

func (Format) ID() citation.Format { return citation.FormatEndNoteXML }

func init() {
	format.Register(Format{})
}

// CanParse implements spec §4.G's EndNote XML sniff: the peek, after
// optional BOM/whitespace, starts with "<?xml", "<xml", or "<records".
func (Format) CanParse(peek []byte) bool {
	s := strings.TrimSpace(string(bytes.TrimPrefix(peek, []byte("\xef\xbb\xbf"))))
	return strings.HasPrefix(s, "<?xml") || strings.HasPrefix(s, "<xml") || strings.HasPrefix(s, "<records")
}

// Title priority values, lower wins (spec §4.E: title > alt-title > secondary-title).
const (
	titlePrioTitle = 1
	titlePrioAlt   = 2
	titlePrioSec   = 3
	titlePrioUnset = 99
)

// Parse walks <records><record>...</record></records>, building one
// Citation per <record> element.
func (Format) Parse(input string) ([]citation.Citation, *citation.ParseError) {
	input = helpers.StripBOM(input)
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	dec := xml.NewDecoder(strings.NewReader(input))

	var citations []citation.Citation

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, citation.WithoutPosition(citation.FormatEndNoteXML, citation.NewSyntaxError(err.Error()))
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "record" {
			continue
		}

		recordLine, _ := dec.InputPos()
		c, perr := parseRecord(dec, recordLine)
		if perr != nil {
			return nil, perr
		}
		citations = append(citations, c)
	}

	return citations, nil
}

// parseRecord walks the tokens of one already-opened <record> element,
// maintaining a stack of element names (path) alongside a parallel stack of
// text builders. A child's accumulated text is, on its closing tag,
// appended to its parent's builder as well as dispatched to applyElement —
// this is what makes an element's "text" the concatenation of all of its
// text/CDATA descendants (spec §4.E), with any nested markup tags (e.g.
// <style>) contributing no text of their own.
func parseRecord(dec *xml.Decoder, recordLine int) (citation.Citation, *citation.ParseError) {
	var c citation.Citation
	titlePriority := titlePrioUnset

	var path []string
	var frames []*strings.Builder

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return citation.Citation{}, citation.AtLine(recordLine, citation.FormatEndNoteXML,
				citation.NewSyntaxError("unexpected end of input inside <record>"))
		}
		if err != nil {
			return citation.Citation{}, citation.AtLine(recordLine, citation.FormatEndNoteXML,
				citation.NewSyntaxError(err.Error()))
		}

		switch t := tok.(type) {
		case xml.StartElement:
			path = append(path, t.Name.Local)
			frames = append(frames, &strings.Builder{})
			if t.Name.Local == "ref-type" {
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						c.CitationType = attr.Value
					}
				}
			}

		case xml.CharData:
			if len(frames) > 0 {
				frames[len(frames)-1].WriteString(string(t))
			}

		case xml.EndElement:
			// The <record> StartElement itself was consumed by Parse before
			// parseRecord was called, so it never got a frame pushed here —
			// its matching EndElement must be handled before touching
			// frames, not after popping the last child off an empty stack.
			if t.Name.Local == "record" {
				if titlePriority == titlePrioUnset {
					return citation.Citation{}, citation.AtLine(recordLine, citation.FormatEndNoteXML,
						citation.NewMissingValue("title", "title"))
				}
				return c, nil
			}

			text := strings.TrimSpace(frames[len(frames)-1].String())
			applyElement(&c, path, text, &titlePriority)

			frames = frames[:len(frames)-1]
			path = path[:len(path)-1]
			if len(frames) > 0 {
				frames[len(frames)-1].WriteString(text)
			}
		}
	}
}

// applyElement dispatches the text content of the element at the top of
// path (spec §4.E's element mapping). path always ends in the element that
// just closed; its parent context (path[len(path)-2]) disambiguates
// elements like <author> or <title> that appear at multiple nesting depths.
func applyElement(c *citation.Citation, path []string, text string, titlePriority *int) {
	if text == "" || len(path) == 0 {
		return
	}
	leaf := path[len(path)-1]
	parent := ""
	if len(path) >= 2 {
		parent = path[len(path)-2]
	}

	switch leaf {
	case "author":
		if parent == "authors" {
			c.Authors = append(c.Authors, citation.NewAuthor(text))
		}
	case "title":
		if parent == "titles" && *titlePriority > titlePrioTitle {
			c.Title = text
			*titlePriority = titlePrioTitle
		}
	case "alt-title":
		if parent == "titles" && *titlePriority > titlePrioAlt {
			c.Title = text
			*titlePriority = titlePrioAlt
		}
	case "secondary-title":
		if parent == "titles" {
			if *titlePriority > titlePrioSec {
				c.Title = text
				*titlePriority = titlePrioSec
			}
			c.Journal = text
		}
	case "full-title":
		if parent == "periodical" {
			c.Journal = text
		}
	case "abbr-1":
		if parent == "periodical" {
			c.JournalAbbr = text
		}
	case "year":
		if parent == "dates" {
			if y, err := strconv.Atoi(text); err == nil {
				c.Date = citation.NewDateFromYear(y)
			}
		}
	case "volume":
		c.Volume = text
	case "number":
		c.Issue = text
	case "pages":
		c.Pages = text
	case "abstract":
		c.AbstractText = text
	case "isbn":
		if matches := helpers.SplitISSN(text); len(matches) > 0 {
			c.ISSN = append(c.ISSN, matches...)
		} else {
			c.ISSN = append(c.ISSN, text)
		}
	case "electronic-resource-num":
		if n := helpers.NormalizeDOI(text); helpers.IsValidDOI(n) {
			c.DOI = n
		}
	case "url":
		if parent == "urls" || parent == "related-urls" || parent == "web-urls" {
			c.URLs = append(c.URLs, text)
		}
	case "keyword":
		c.Keywords = append(c.Keywords, text)
	case "custom2":
		if strings.Contains(text, "PMC") {
			c.PMCID = text
		} else {
			c.AddExtra("custom2", text)
		}
	}
}
