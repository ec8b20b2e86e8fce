package surface

import (
	"errors"
	"fmt"

	"github.com/simmsb/schemec/diag"
)

// ErrParse is wrapped by every syntax error the lexer or parser raises.
var ErrParse = errors.New("parse error")

// ErrIllFormedBody is wrapped by the two distinct ways a body can be
// malformed: it is empty, or it ends in a define rather than an
// expression. Both reasons are kept distinct (rather than a single
// generic message) so a reader knows which one happened.
var ErrIllFormedBody = errors.New("ill-formed body")

var (
	ErrEmptyBody      = fmt.Errorf("%w: body has no expressions", ErrIllFormedBody)
	ErrTrailingDefine = fmt.Errorf("%w: body ends in a define, not an expression", ErrIllFormedBody)
)

// ParseError wraps a positioned SourceError so both errors.Is(err,
// ErrParse) and FormatWithContext() work on the same value.
type ParseError struct {
	*diag.SourceError
}

func (e *ParseError) Unwrap() error { return ErrParse }

func parseErrorf(span diag.Span, source string, format string, args ...interface{}) error {
	return &ParseError{diag.NewSourceErrorf(span, source, format, args...)}
}
