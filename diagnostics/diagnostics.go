// Package diagnostics provides a concrete (but swappable) implementation
// of the renderer contract spec §9 describes: a pure function of
// (filename, source, ParseError) producing a formatted, line-pointer
// diagnostic string, in the field-qualified style of the teacher's
// validation error messages. No core package imports this one — callers
// wire it in explicitly, either by passing Render to
// citeparse.ParseWithDiagnostics or by calling it directly (as cmd does).
package diagnostics

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/citeparse/citeparse/citation"
)

// Render formats err against source, labeled by filename, as a
// human-readable diagnostic with a location pointer and, when the error
// carries a span, the offending record's text.
func Render(filename, source string, err *citation.ParseError) string {
	var b strings.Builder

	loc := filename
	if err.Line != nil {
		loc = fmt.Sprintf("%s:%d", loc, *err.Line)
		if err.Column != nil {
			loc = fmt.Sprintf("%s:%d", loc, *err.Column)
		}
	}

	fmt.Fprintf(&b, "error[%s]: %s\n", err.Format, err.Err.Error())
	fmt.Fprintf(&b, "  --> %s\n", loc)

	if err.Span != nil {
		if snippet := recordSnippet(source, *err.Span); snippet != "" {
			b.WriteString("   |\n")
			for _, line := range strings.Split(snippet, "\n") {
				fmt.Fprintf(&b, "   | %s\n", line)
			}
		}
	}

	return b.String()
}

func recordSnippet(source string, span citation.SourceSpan) string {
	if span.Start < 0 || span.End > len(source) || span.Start > span.End {
		return ""
	}
	return strings.TrimRight(source[span.Start:span.End], "\n")
}

// MachineReadable serializes err into a structpb.Struct: a dependency-free
// shape a caller (e.g. a JSON API wrapping this library) can ship over the
// wire without depending on citeparse's Go error types.
func MachineReadable(err *citation.ParseError) (*structpb.Struct, error) {
	fields := map[string]any{
		"format": err.Format.String(),
		"kind":   string(err.Err.Kind),
	}
	if err.Line != nil {
		fields["line"] = float64(*err.Line)
	}
	if err.Column != nil {
		fields["column"] = float64(*err.Column)
	}
	if err.Span != nil {
		fields["span_start"] = float64(err.Span.Start)
		fields["span_end"] = float64(err.Span.End)
	}

	switch err.Err.Kind {
	case citation.ErrSyntax:
		fields["message"] = err.Err.Msg
	case citation.ErrMissingValue:
		fields["field"] = err.Err.Field
		fields["key"] = err.Err.Key
	case citation.ErrBadValue:
		fields["field"] = err.Err.Field
		fields["key"] = err.Err.Key
		fields["value"] = err.Err.Value
		fields["reason"] = err.Err.Reason
	case citation.ErrMultipleValues:
		fields["field"] = err.Err.Field
		fields["key"] = err.Err.Key
		values := make([]any, len(err.Err.Values))
		for i, v := range err.Err.Values {
			values[i] = v
		}
		fields["values"] = values
	}

	return structpb.NewStruct(fields)
}
