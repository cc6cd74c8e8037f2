// Package errors defines the faults reported while decoding revision dumps.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacoelho/mwdump/pkg/mwtag"
)

// ErrStop is returned by a page callback to end decoding early.
// The decode call then reports success.
var ErrStop = errors.New("mwdump: stop")

// Position locates a fault in the decoded input.
// Line and Column are zero when line tracking is unavailable.
type Position struct {
	Offset int64
	Line   int
	Column int
}

func (p Position) String() string {
	if p.Line > 0 && p.Column > 0 {
		return fmt.Sprintf("offset %d (line %d, column %d)", p.Offset, p.Line, p.Column)
	}
	return fmt.Sprintf("offset %d", p.Offset)
}

// FormatError reports a deviation from the export grammar, including
// malformed XML and invalid text encoding.
type FormatError struct {
	Err      error
	Position Position
}

func (e *FormatError) Error() string {
	if e == nil {
		return "format error <nil>"
	}
	var b strings.Builder
	b.WriteString("format error at ")
	b.WriteString(e.Position.String())
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes the underlying error.
func (e *FormatError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// TagMismatchError reports a recognized tag where a different one was required.
type TagMismatchError struct {
	Position Position
	Expected mwtag.Tag
	Actual   mwtag.Tag
}

func (e *TagMismatchError) Error() string {
	if e == nil {
		return "tag mismatch <nil>"
	}
	return fmt.Sprintf("tag mismatch at %s: expected <%s>, found <%s>", e.Position, e.Expected, e.Actual)
}

// DecodeError reports a payload that could not be decoded, such as a bad
// entity reference or a value that does not parse as its declared type.
type DecodeError struct {
	Err      error
	Position Position
}

func (e *DecodeError) Error() string {
	if e == nil {
		return "decode error <nil>"
	}
	return fmt.Sprintf("decode error at %s: %v", e.Position, e.Err)
}

// Unwrap exposes the underlying error.
func (e *DecodeError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UnrecognizedTagError reports a name outside the schema registry.
type UnrecognizedTagError struct {
	Name     string
	Position Position
}

func (e *UnrecognizedTagError) Error() string {
	if e == nil {
		return "unrecognized tag <nil>"
	}
	return fmt.Sprintf("unrecognized tag %q at %s", e.Name, e.Position)
}

// IOError reports a failure to open or read the dump source.
type IOError struct {
	Err    error
	Action string
	Path   string
}

func (e *IOError) Error() string {
	if e == nil {
		return "io error <nil>"
	}
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Action, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Action, e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *IOError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// DecompressionError reports a decompressor that could not be initialized.
type DecompressionError struct {
	Err  error
	Path string
}

func (e *DecompressionError) Error() string {
	if e == nil {
		return "decompression error <nil>"
	}
	return fmt.Sprintf("decompress %s: %v", e.Path, e.Err)
}

// Unwrap exposes the underlying error.
func (e *DecompressionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// AsPosition extracts the input position carried by a positional fault.
func AsPosition(err error) (Position, bool) {
	if err == nil {
		return Position{}, false
	}
	var format *FormatError
	if errors.As(err, &format) && format != nil {
		return format.Position, true
	}
	var mismatch *TagMismatchError
	if errors.As(err, &mismatch) && mismatch != nil {
		return mismatch.Position, true
	}
	var decode *DecodeError
	if errors.As(err, &decode) && decode != nil {
		return decode.Position, true
	}
	var unknown *UnrecognizedTagError
	if errors.As(err, &unknown) && unknown != nil {
		return unknown.Position, true
	}
	return Position{}, false
}
