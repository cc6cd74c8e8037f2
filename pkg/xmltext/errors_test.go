package xmltext

import (
	"errors"
	"testing"
)

func TestSyntaxErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  *SyntaxError
		want string
	}{
		{
			name: "nil",
			want: "<nil>",
		},
		{
			name: "line and column",
			err:  &SyntaxError{Offset: 40, Line: 3, Column: 7, Err: errTokenTooLarge},
			want: "xml syntax error at line 3, column 7: token exceeds MaxTokenSize",
		},
		{
			name: "offset only",
			err:  &SyntaxError{Offset: 1024, Err: ErrInvalidEntity},
			want: "xml syntax error at offset 1024: invalid entity reference",
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

func TestSyntaxErrorUnwrap(t *testing.T) {
	var nilErr *SyntaxError
	if nilErr.Unwrap() != nil {
		t.Fatal("nil SyntaxError must unwrap to nil")
	}
	var err error = &SyntaxError{Line: 1, Column: 1, Err: ErrInvalidCharRef}
	if !errors.Is(err, ErrInvalidCharRef) {
		t.Fatalf("errors.Is(%v, ErrInvalidCharRef) = false", err)
	}
}
