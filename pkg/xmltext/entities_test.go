package xmltext

import (
	"errors"
	"testing"
)

func TestUnescapeInto(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "abc", want: "abc"},
		{name: "predefined", input: "&lt;a&gt; &amp; &quot;b&quot; &apos;", want: `<a> & "b" '`},
		{name: "decimal", input: "&#65;&#66;", want: "AB"},
		{name: "hex", input: "&#x263A;", want: "☺"},
		{name: "adjacent", input: "A&amp;B&amp;C", want: "A&B&C"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UnescapeInto([]byte("prefix:"), []byte(tt.input))
			if err != nil {
				t.Fatalf("UnescapeInto error = %v", err)
			}
			if string(got) != "prefix:"+tt.want {
				t.Fatalf("UnescapeInto = %q, want %q", got, "prefix:"+tt.want)
			}
		})
	}
}

func TestUnescapeIntoErrors(t *testing.T) {
	tests := []struct {
		err   error
		name  string
		input string
	}{
		{name: "unknown entity", input: "&nbsp;", err: ErrInvalidEntity},
		{name: "unterminated", input: "a &amp b", err: ErrInvalidEntity},
		{name: "empty", input: "&;", err: ErrInvalidEntity},
		{name: "bare ampersand", input: "&", err: ErrInvalidEntity},
		{name: "nul char ref", input: "&#0;", err: ErrInvalidCharRef},
		{name: "surrogate", input: "&#xD800;", err: ErrInvalidCharRef},
		{name: "bad digit", input: "&#12a;", err: ErrInvalidCharRef},
		{name: "too large", input: "&#x110000;", err: ErrInvalidCharRef},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnescapeInto(nil, []byte(tt.input))
			if !errors.Is(err, tt.err) {
				t.Fatalf("UnescapeInto error = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestUnescapeIntoLimit(t *testing.T) {
	if _, err := unescapeInto(nil, []byte("&amp;&amp;&amp;"), 2); !errors.Is(err, errTokenTooLarge) {
		t.Fatalf("unescapeInto error = %v, want %v", err, errTokenTooLarge)
	}
}
