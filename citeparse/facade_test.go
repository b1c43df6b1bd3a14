package citeparse

import (
	"errors"
	"testing"

	"github.com/citeparse/citeparse/citation"
	"github.com/citeparse/citeparse/format"
)

func TestDetectAndParseRIS(t *testing.T) {
	input := "TY  - JOUR\nTI  - Detected RIS\nAU  - Smith, John\nPY  - 2022\nER  - \n"
	got, f, cerr := DetectAndParse(input)
	if cerr != nil {
		t.Fatalf("DetectAndParse returned error: %v", cerr)
	}
	if f != citation.FormatRIS {
		t.Errorf("format = %v, want FormatRIS", f)
	}
	if len(got) != 1 || got[0].Title != "Detected RIS" {
		t.Errorf("citations = %+v", got)
	}
}

func TestDetectAndParseUnknownFormat(t *testing.T) {
	_, f, cerr := DetectAndParse("this is not any recognized citation format at all")
	if cerr == nil {
		t.Fatal("expected a CitationError for unrecognized input")
	}
	if !errors.Is(cerr, citation.ErrUnknownFormat) {
		t.Errorf("expected errors.Is to match ErrUnknownFormat, err = %v", cerr)
	}
	if f != citation.FormatUnknown {
		t.Errorf("format = %v, want FormatUnknown", f)
	}
}

func TestDetectAndParsePropagatesParseError(t *testing.T) {
	input := "TY  - JOUR\nAU  - Smith, John\nER  - \n"
	_, _, cerr := DetectAndParse(input)
	if cerr == nil {
		t.Fatal("expected a CitationError wrapping a parse failure")
	}
	var pe *citation.ParseError
	if !errors.As(cerr, &pe) {
		t.Fatal("expected errors.As to recover the underlying *ParseError")
	}
	if pe.Err.Kind != citation.ErrMissingValue {
		t.Errorf("Kind = %v, want ErrMissingValue", pe.Err.Kind)
	}
}

func TestParseWithDiagnosticsRendersFailure(t *testing.T) {
	parser, ok := format.DefaultRegistry.Get(citation.FormatRIS)
	if !ok {
		t.Fatal("expected RIS parser to be registered")
	}

	input := "TY  - JOUR\nAU  - Smith, John\nER  - \n"
	rendered := ""
	render := func(filename, source string, err *citation.ParseError) string {
		rendered = filename + ":" + err.Error()
		return rendered
	}

	_, err := ParseWithDiagnostics(parser, input, "sample.ris", render)
	if err == nil {
		t.Fatal("expected an error")
	}
	var de DiagnosticError
	if !errors.As(err, &de) {
		t.Fatal("expected a DiagnosticError")
	}
	if string(de) != rendered {
		t.Errorf("DiagnosticError = %q, want %q", string(de), rendered)
	}
}

func TestParseWithDiagnosticsSuccess(t *testing.T) {
	parser, ok := format.DefaultRegistry.Get(citation.FormatRIS)
	if !ok {
		t.Fatal("expected RIS parser to be registered")
	}

	input := "TY  - JOUR\nTI  - All Good\nER  - \n"
	got, err := ParseWithDiagnostics(parser, input, "sample.ris", Render)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Title != "All Good" {
		t.Errorf("citations = %+v", got)
	}
}

// Render is a minimal local stand-in implementing DiagnosticRenderer's
// signature, used only to exercise the success path above without
// importing the diagnostics package.
func Render(filename, source string, err *citation.ParseError) string {
	return err.Error()
}
