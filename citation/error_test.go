package citation

import "testing"

func TestParseErrorWithSpanIsABuilderCopy(t *testing.T) {
	base := AtLine(3, FormatRIS, NewMissingValue("title", "TI"))
	spanned := base.WithSpan(SourceSpan{Start: 10, End: 20})

	if base.Span != nil {
		t.Error("AtLine should not itself carry a span")
	}
	if spanned.Span == nil || spanned.Span.Start != 10 || spanned.Span.End != 20 {
		t.Errorf("WithSpan() span = %v", spanned.Span)
	}
	if spanned.Line == nil || *spanned.Line != 3 {
		t.Errorf("WithSpan() should preserve Line, got %v", spanned.Line)
	}
}

func TestParseErrorUnwrapExposesValueError(t *testing.T) {
	ve := NewBadValue("date", "PY", "21AB", "year must be a 4-digit integer")
	perr := AtLine(1, FormatRIS, ve)
	unwrapped := perr.Unwrap()
	got, ok := unwrapped.(ValueError)
	if !ok {
		t.Fatalf("Unwrap() returned %T, want ValueError", unwrapped)
	}
	if got.Kind != ErrBadValue {
		t.Errorf("Kind = %v, want ErrBadValue", got.Kind)
	}
}

func TestCitationErrorUnwrapUnknownFormat(t *testing.T) {
	var err CitationError
	if err.Unwrap() != ErrUnknownFormat {
		t.Error("zero-value CitationError should unwrap to ErrUnknownFormat")
	}
}

func TestCitationErrorUnwrapParseError(t *testing.T) {
	perr := AtLine(1, FormatCSV, NewMissingValue("title", "title"))
	err := WrapParseError(perr)
	if err.Unwrap() != error(perr) {
		t.Error("WrapParseError's Unwrap should return the wrapped *ParseError")
	}
}

func TestFormatString(t *testing.T) {
	cases := map[Format]string{
		FormatRIS:        "RIS",
		FormatPubMed:     "PubMed",
		FormatEndNoteXML: "EndNote XML",
		FormatCSV:        "CSV",
		FormatUnknown:    "unknown",
	}
	for f, want := range cases {
		if got := f.String(); got != want {
			t.Errorf("Format(%d).String() = %q, want %q", f, got, want)
		}
	}
}
