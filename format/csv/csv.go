// Package csv implements the configurable delimited citation format (spec
// §4.F): a header-driven reader that maps columns to canonical Citation
// fields by alias, optionally tolerates variable column counts, and can auto-detect
// its own delimiter.
package csv

import (
	"strings"

	"github.com/citeparse/citeparse/citation"
	"github.com/citeparse/citeparse/config"
	"github.com/citeparse/citeparse/format"
)

// Config configures the CSV parser, matching spec §4.F's CsvConfig.
type Config struct {
	// Delimiter is the field separator used when AutoDetect is false.
	Delimiter byte
	// Quote is accepted for API completeness; encoding/csv (which this
	// parser is built on) only ever recognizes '"' as a quote character,
	// so a non-default value here has no effect.
	Quote byte
	// Trim trims leading/trailing whitespace from every header and cell.
	Trim bool
	// Flexible tolerates rows with a different column count than the
	// header and also relaxes quote strictness (encoding/csv's
	// LazyQuotes); when false, such a row is a Syntax error. It does not relax the title-required invariant (spec §3): a
	// Citation with no title never leaves this parser successfully,
	// resolving the apparent tension in spec §4.F's error section per
	// the uniform-MissingValue decision in spec §9's first Open Question.
	Flexible bool
	// HeaderAliases resolves a raw header cell to a canonical field name.
	HeaderAliases *config.HeaderAliasProfile
	// AutoDetect samples the first few non-empty lines to choose a
	// delimiter among ',', ';', and '\t' (spec §4.F), ignoring Delimiter.
	AutoDetect bool
}

// DefaultConfig returns the CSV parser's default configuration: comma
// delimiter with auto-detection on, trimming on, and the embedded header
// alias profile.
func DefaultConfig() Config {
	profile, err := config.DefaultHeaderAliasProfile()
	if err != nil {
		profile = &config.HeaderAliasProfile{}
	}
	return Config{
		Delimiter:     ',',
		Quote:         '"',
		Trim:          true,
		Flexible:      false,
		HeaderAliases: profile,
		AutoDetect:    true,
	}
}

// Format implements format.Parser for CSV.
type Format struct {
	Config Config
}

// NewFormat builds a CSV Format with an explicit configuration.
func NewFormat(cfg Config) *Format {
	return &Format{Config: cfg}
}

func (f *Format) ID() citation.Format { return citation.FormatCSV }

func init() {
	format.Register(NewFormat(DefaultConfig()))
}

// sniffDelimiters are the candidates CanParse checks a header line against,
// in the priority order spec §4.G implies (comma first).
var sniffDelimiters = []byte{',', ';', '\t'}

// CanParse implements spec §4.G's CSV sniff: the first non-empty line
// contains a cell matching a canonical header or one of its aliases, under
// any of the candidate delimiters.
func (f *Format) CanParse(peek []byte) bool {
	if f.Config.HeaderAliases == nil {
		return false
	}
	firstLine := firstNonEmptyLine(string(peek))
	if firstLine == "" {
		return false
	}
	for _, d := range sniffDelimiters {
		for _, cell := range strings.Split(firstLine, string(d)) {
			if f.Config.HeaderAliases.IsCanonicalOrAliased(strings.TrimSpace(cell)) {
				return true
			}
		}
	}
	return false
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) != "" {
			return line
		}
	}
	return ""
}
