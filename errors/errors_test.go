package errors

import (
	"errors"
	"io"
	"testing"

	"github.com/jacoelho/mwdump/pkg/mwtag"
)

func TestErrorFormatting(t *testing.T) {
	pos := Position{Offset: 42, Line: 3, Column: 7}
	tests := []struct {
		err  error
		name string
		want string
	}{
		{
			name: "format with line",
			err:  &FormatError{Position: pos, Err: errors.New("expected whitespace")},
			want: "format error at offset 42 (line 3, column 7): expected whitespace",
		},
		{
			name: "format offset only",
			err:  &FormatError{Position: Position{Offset: 9}},
			want: "format error at offset 9",
		},
		{
			name: "tag mismatch",
			err:  &TagMismatchError{Position: Position{Offset: 5}, Expected: mwtag.Title, Actual: mwtag.NS},
			want: "tag mismatch at offset 5: expected <title>, found <ns>",
		},
		{
			name: "decode",
			err:  &DecodeError{Position: Position{Offset: 1}, Err: errors.New("bad entity")},
			want: "decode error at offset 1: bad entity",
		},
		{
			name: "unrecognized",
			err:  &UnrecognizedTagError{Name: "bogus", Position: Position{Offset: 2}},
			want: `unrecognized tag "bogus" at offset 2`,
		},
		{
			name: "io",
			err:  &IOError{Action: "open", Path: "dump.xml", Err: io.ErrUnexpectedEOF},
			want: "open dump.xml: unexpected EOF",
		},
		{
			name: "io without path",
			err:  &IOError{Action: "read", Err: io.ErrUnexpectedEOF},
			want: "read: unexpected EOF",
		},
		{
			name: "decompression",
			err:  &DecompressionError{Path: "dump.7z", Err: errors.New("bad header")},
			want: "decompress dump.7z: bad header",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNilErrors(t *testing.T) {
	var format *FormatError
	var decode *DecodeError
	var ioErr *IOError
	var decomp *DecompressionError
	if format.Unwrap() != nil || decode.Unwrap() != nil || ioErr.Unwrap() != nil || decomp.Unwrap() != nil {
		t.Fatalf("nil Unwrap returned non-nil")
	}
	if format.Error() == "" {
		t.Fatalf("nil FormatError.Error() is empty")
	}
}

func TestUnwrapChain(t *testing.T) {
	cause := errors.New("cause")
	err := error(&IOError{Action: "read", Err: cause})
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(IOError, cause) = false")
	}
	err = &DecompressionError{Path: "x", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(DecompressionError, cause) = false")
	}
}

func TestAsPosition(t *testing.T) {
	pos := Position{Offset: 11}
	tests := []error{
		&FormatError{Position: pos},
		&TagMismatchError{Position: pos},
		&DecodeError{Position: pos},
		&UnrecognizedTagError{Position: pos},
	}
	for _, err := range tests {
		got, ok := AsPosition(err)
		if !ok || got != pos {
			t.Fatalf("AsPosition(%T) = %v, %v; want %v, true", err, got, ok, pos)
		}
	}
	if _, ok := AsPosition(&IOError{Action: "open"}); ok {
		t.Fatalf("AsPosition(IOError) ok = true")
	}
	if _, ok := AsPosition(nil); ok {
		t.Fatalf("AsPosition(nil) ok = true")
	}
}
