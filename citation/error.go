package citation

import (
	"errors"
	"fmt"
)

// Format identifies which of the four supported input formats produced (or
// failed to produce) a Citation.
type Format int

const (
	FormatUnknown Format = iota
	FormatRIS
	FormatPubMed
	FormatEndNoteXML
	FormatCSV
)

// String returns the display name used in error messages and diagnostics.
func (f Format) String() string {
	switch f {
	case FormatRIS:
		return "RIS"
	case FormatPubMed:
		return "PubMed"
	case FormatEndNoteXML:
		return "EndNote XML"
	case FormatCSV:
		return "CSV"
	default:
		return "unknown"
	}
}

// ValueErrorKind discriminates the ValueError variants described in spec §3.
type ValueErrorKind string

const (
	// ErrSyntax marks malformed input: a bad tag line, mismatched XML, an
	// unterminated CSV quote.
	ErrSyntax ValueErrorKind = "syntax"
	// ErrMissingValue marks a required field absent from an otherwise
	// well-formed record.
	ErrMissingValue ValueErrorKind = "missing_value"
	// ErrBadValue marks a field present but semantically unparseable (a
	// non-integer year, an out-of-range month).
	ErrBadValue ValueErrorKind = "bad_value"
	// ErrMultipleValues marks a scalar-only field that appeared more than
	// once. Reserved: no current parser emits this, but it is part of the
	// error contract.
	ErrMultipleValues ValueErrorKind = "multiple_values"
)

// ValueError is the leaf error type every ParseError carries. Exactly one of
// its variant-specific fields is meaningful, selected by Kind.
type ValueError struct {
	Kind ValueErrorKind

	// Msg is set for ErrSyntax.
	Msg string

	// Field and Key are set for ErrMissingValue, ErrBadValue, and
	// ErrMultipleValues. Field names the normalized Citation field (e.g.
	// "title", "date"); Key names the source tag that should have supplied
	// it (e.g. "TI", "PY").
	Field string
	Key   string

	// Value and Reason are set for ErrBadValue.
	Value  string
	Reason string

	// Values is set for ErrMultipleValues.
	Values []string
}

func (e ValueError) Error() string {
	switch e.Kind {
	case ErrSyntax:
		return fmt.Sprintf("syntax error: %s", e.Msg)
	case ErrMissingValue:
		return fmt.Sprintf("missing required field %q (key %q)", e.Field, e.Key)
	case ErrBadValue:
		return fmt.Sprintf("invalid value for field %q (key %q): %q: %s", e.Field, e.Key, e.Value, e.Reason)
	case ErrMultipleValues:
		return fmt.Sprintf("field %q (key %q) may only appear once, got %d values", e.Field, e.Key, len(e.Values))
	default:
		return "unknown value error"
	}
}

// NewSyntaxError builds an ErrSyntax ValueError.
func NewSyntaxError(msg string) ValueError {
	return ValueError{Kind: ErrSyntax, Msg: msg}
}

// NewMissingValue builds an ErrMissingValue ValueError.
func NewMissingValue(field, key string) ValueError {
	return ValueError{Kind: ErrMissingValue, Field: field, Key: key}
}

// NewBadValue builds an ErrBadValue ValueError.
func NewBadValue(field, key, value, reason string) ValueError {
	return ValueError{Kind: ErrBadValue, Field: field, Key: key, Value: value, Reason: reason}
}

// NewMultipleValues builds an ErrMultipleValues ValueError.
func NewMultipleValues(field, key string, values []string) ValueError {
	return ValueError{Kind: ErrMultipleValues, Field: field, Key: key, Values: values}
}

// SourceSpan is a half-open byte range [Start, End) into the original input.
type SourceSpan struct {
	Start int
	End   int
}

// ParseError is the error a format parser returns when it cannot build a
// complete Citation for the record it is currently assembling. Line is
// 1-based. Span, when present, covers the entire offending record — not
// just the field that triggered the error — so a caller can skip past it
// and retry.
type ParseError struct {
	Line   *int
	Column *int
	Span   *SourceSpan
	Format Format
	Err    ValueError
}

func (e *ParseError) Error() string {
	loc := ""
	if e.Line != nil {
		if e.Column != nil {
			loc = fmt.Sprintf(" at line %d, column %d", *e.Line, *e.Column)
		} else {
			loc = fmt.Sprintf(" at line %d", *e.Line)
		}
	}
	return fmt.Sprintf("%s parse error%s: %s", e.Format, loc, e.Err.Error())
}

// Unwrap exposes the underlying ValueError to errors.As/errors.Is callers.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func intPtr(v int) *int { return &v }

// AtLine builds a ParseError tied to a record starting at line (1-based),
// with no column and no span.
func AtLine(line int, format Format, err ValueError) *ParseError {
	return &ParseError{Line: intPtr(line), Format: format, Err: err}
}

// AtPosition builds a ParseError tied to a specific line and column.
func AtPosition(line, column int, format Format, err ValueError) *ParseError {
	return &ParseError{Line: intPtr(line), Column: intPtr(column), Format: format, Err: err}
}

// WithoutPosition builds a ParseError with no location information at all,
// for errors detected before any record boundary is known.
func WithoutPosition(format Format, err ValueError) *ParseError {
	return &ParseError{Format: format, Err: err}
}

// New builds a ParseError from optional line/column pointers, for callers
// that already have them in pointer form.
func New(line, column *int, format Format, err ValueError) *ParseError {
	return &ParseError{Line: line, Column: column, Format: format, Err: err}
}

// WithSpan returns a copy of e with Span set to span (builder style).
func (e *ParseError) WithSpan(span SourceSpan) *ParseError {
	cp := *e
	cp.Span = &span
	return &cp
}

// ErrUnknownFormat is returned by DetectAndParse when the input cannot be
// classified as any of the four supported formats.
var ErrUnknownFormat = errors.New("citeparse: unknown citation format")

// CitationError is the top-level error type returned at the public facade
// boundary: either ErrUnknownFormat (use errors.Is) or a wrapped
// *ParseError (use errors.As).
type CitationError struct {
	Parse *ParseError
}

func (e *CitationError) Error() string {
	if e.Parse != nil {
		return e.Parse.Error()
	}
	return ErrUnknownFormat.Error()
}

func (e *CitationError) Unwrap() error {
	if e.Parse != nil {
		return e.Parse
	}
	return ErrUnknownFormat
}

// WrapParseError builds a CitationError around a parse failure.
func WrapParseError(err *ParseError) *CitationError {
	return &CitationError{Parse: err}
}
