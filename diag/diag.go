// Package diag holds the source-position and error types shared by every
// compiler stage, mirroring the SourceError type the WGSL front end uses
// for caret-annotated diagnostics.
package diag

import (
	"fmt"
	"strings"
)

// Span locates a diagnostic in the original program text.
type Span struct {
	Line   int
	Column int
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d", s.Line, s.Column)
}

// SourceError is a single diagnostic tied to a span in a source string.
type SourceError struct {
	Message string
	Span    Span
	Source  string
}

func NewSourceError(message string, span Span, source string) *SourceError {
	return &SourceError{Message: message, Span: span, Source: source}
}

func NewSourceErrorf(span Span, source string, format string, args ...interface{}) *SourceError {
	return NewSourceError(fmt.Sprintf(format, args...), span, source)
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Span.Line, e.Span.Column, e.Message)
}

// FormatWithContext renders the error with a caret pointing at the
// offending column, the way a reader expects from a command-line compiler.
func (e *SourceError) FormatWithContext() string {
	lines := strings.Split(e.Source, "\n")
	var b strings.Builder
	fmt.Fprintf(&b, "error: %s\n", e.Message)
	fmt.Fprintf(&b, "  --> line %d:%d\n", e.Span.Line, e.Span.Column)
	if e.Span.Line >= 1 && e.Span.Line <= len(lines) {
		line := lines[e.Span.Line-1]
		fmt.Fprintf(&b, "   | %s\n", line)
		col := e.Span.Column
		if col < 1 {
			col = 1
		}
		fmt.Fprintf(&b, "   | %s^\n", strings.Repeat(" ", col-1))
	}
	return b.String()
}

// InvariantError reports a condition that a correct pipeline should never
// produce. It is never recovered from a panic; every stage returns it
// through the normal error path instead.
type InvariantError struct {
	Stage  string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal invariant violated in %s: %s", e.Stage, e.Detail)
}

func NewInvariantError(stage, detail string, args ...interface{}) *InvariantError {
	return &InvariantError{Stage: stage, Detail: fmt.Sprintf(detail, args...)}
}
