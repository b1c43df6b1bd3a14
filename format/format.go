// Package format defines the plugin boundary every citation format parser
// implements, and a registry that dispatches raw input to the right one.
package format

import "github.com/citeparse/citeparse/citation"

// Format identifies a supported input format and tells whether a given
// buffer looks like one.
type Format interface {
	// ID returns the CitationFormat this plugin produces.
	ID() citation.Format

	// CanParse sniffs a peek of the input (see spec §4.G) and reports
	// whether this format's parser should be tried.
	CanParse(peek []byte) bool
}

// Parser parses a complete input string into citations. Parse is a pure
// function of input: no I/O, no shared state, single-threaded (spec §5).
type Parser interface {
	Format

	Parse(input string) ([]citation.Citation, *citation.ParseError)
}

// CitationParser is the public parsing capability every format parser
// satisfies (spec §6).
type CitationParser = Parser
