package schoolname

import (
	"errors"
	"fmt"
)

// ErrMalformedInput is matched by every error returned from Normalize.
var ErrMalformedInput = errors.New("malformed input")

// Kind tells why a name could not be normalized.
type Kind int

const (
	// KindUnknownCharacter: the rune at Pos is neither a letter nor a separator.
	KindUnknownCharacter Kind = iota + 1
	// KindUnterminatedQuote: a quote opened at Pos is never closed.
	KindUnterminatedQuote
	// KindStrayQuote: a quote glyph sits inside a separator instead of ending it.
	KindStrayQuote
	// KindQuotedSpan: the failure happened inside the quoted span opened at Pos.
	KindQuotedSpan
)

func (k Kind) String() string {
	switch k {
	case KindUnknownCharacter:
		return "unknown character"
	case KindUnterminatedQuote:
		return "unterminated quote"
	case KindStrayQuote:
		return "stray quote"
	case KindQuotedSpan:
		return "quoted span"
	default:
		return "unknown"
	}
}

// MalformedInputError describes where normalization stopped. Pos is a rune
// offset into the pre-normalized text being scanned (for a nested error, into
// the quoted span).
type MalformedInputError struct {
	Kind   Kind
	Pos    int
	Char   rune
	Span   string               // content of the quoted span, KindQuotedSpan only
	Quoted *MalformedInputError // failure inside Span, KindQuotedSpan only
}

func (e *MalformedInputError) Error() string {
	return "malformed input: " + e.detail()
}

func (e *MalformedInputError) detail() string {
	if e.Kind == KindQuotedSpan && e.Quoted != nil {
		return fmt.Sprintf("in quoted span %q at %d: %s", e.Span, e.Pos, e.Quoted.detail())
	}
	return fmt.Sprintf("%s %q at %d", e.Kind, e.Char, e.Pos)
}

// Is makes errors.Is(err, ErrMalformedInput) hold.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// Innermost returns the deepest error in a chain of quoted spans.
func (e *MalformedInputError) Innermost() *MalformedInputError {
	for e.Quoted != nil {
		e = e.Quoted
	}
	return e
}

// Offset returns the rune offset of the innermost cause within the
// pre-normalized input.
func (e *MalformedInputError) Offset() int {
	off := 0
	for e.Quoted != nil {
		off += e.Pos
		e = e.Quoted
	}
	return off + e.Pos
}
