// Package citeparse is the public facade spec §4.I and §6 describe: it
// wires the format registry's sniff-then-parse dispatch into a single
// DetectAndParse entry point, and adapts any format.Parser into the
// optional diagnostic-rendering path.
package citeparse

import (
	"github.com/citeparse/citeparse/citation"
	"github.com/citeparse/citeparse/format"

	_ "github.com/citeparse/citeparse/format/csv"
	_ "github.com/citeparse/citeparse/format/endnote"
	_ "github.com/citeparse/citeparse/format/pubmed"
	_ "github.com/citeparse/citeparse/format/ris"
)

// sniffWindow is the number of leading bytes the format detector samples
// (spec §4.G).
const sniffWindow = 4096

// DetectAndParse implements spec §6: classify content by sniffing its
// first bytes against every registered format, then parse it with the
// matching one. Returns CitationError wrapping ErrUnknownFormat when no
// format recognizes the input.
func DetectAndParse(content string) ([]citation.Citation, citation.Format, *citation.CitationError) {
	peek := []byte(content)
	if len(peek) > sniffWindow {
		peek = peek[:sniffWindow]
	}

	parser, f, ok := format.Detect(peek)
	if !ok {
		return nil, citation.FormatUnknown, &citation.CitationError{}
	}

	citations, perr := parser.Parse(content)
	if perr != nil {
		return nil, f, citation.WrapParseError(perr)
	}
	return citations, f, nil
}

// DiagnosticRenderer formats a parse failure into a human-readable string.
// This is the capability boundary spec §9 keeps out of core: the core
// never implements or imports one, it only accepts one as a parameter
// (see the diagnostics package for a concrete implementation).
type DiagnosticRenderer func(filename, source string, err *citation.ParseError) string

// DiagnosticError wraps a rendered diagnostic string so it can be returned
// as a Go error; its message IS the full rendered diagnostic.
type DiagnosticError string

func (e DiagnosticError) Error() string { return string(e) }

// ParseWithDiagnostics implements spec §6's parse_with_diagnostics: it
// runs parser.Parse(input) and, on failure, returns a DiagnosticError
// built by render instead of the raw *ParseError.
func ParseWithDiagnostics(parser format.Parser, input, filename string, render DiagnosticRenderer) ([]citation.Citation, error) {
	citations, perr := parser.Parse(input)
	if perr != nil {
		return nil, DiagnosticError(render(filename, input, perr))
	}
	return citations, nil
}
