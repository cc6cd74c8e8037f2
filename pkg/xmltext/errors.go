package xmltext

import (
	"errors"
	"fmt"
)

var (
	errNilReader      = errors.New("nil XML reader")
	errNilToken       = errors.New("nil token")
	errUnexpectedEOF  = errors.New("unexpected EOF")
	errInvalidName    = errors.New("invalid XML name")
	errInvalidChar    = errors.New("invalid XML character")
	errInvalidToken   = errors.New("invalid XML token")
	errInvalidComment = errors.New("invalid XML comment")
	errInvalidPI      = errors.New("invalid XML processing instruction")
	errTokenTooLarge  = errors.New("token exceeds MaxTokenSize")
	errAttrLimit      = errors.New("attribute count exceeds MaxAttrs")
	errDuplicateAttr  = errors.New("duplicate attribute name")
)

var (
	// ErrInvalidEntity reports a malformed or unknown entity reference.
	ErrInvalidEntity = errors.New("invalid entity reference")
	// ErrInvalidCharRef reports a numeric character reference outside the XML character range.
	ErrInvalidCharRef = errors.New("invalid character reference")
)

// SyntaxError reports a well-formedness error with location context.
type SyntaxError struct {
	Offset  int64
	Line    int
	Column  int
	Snippet []byte
	Err     error
}

// Error formats the syntax error with location and cause.
func (e *SyntaxError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("xml syntax error at line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("xml syntax error at offset %d: %v", e.Offset, e.Err)
}

// Unwrap exposes the underlying error.
func (e *SyntaxError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
