package xmltext

// Token is an allocation-free view of the next XML token.
// Byte slices alias the decoder buffer and are only valid until the next read.
type Token struct {
	kind      Kind
	name      []byte
	attrs     []Attr
	text      []byte
	textNeeds bool
	offset    int64
	line      int
	column    int
}

// Attr is a single attribute of a start or empty element.
// Value is the raw attribute content between the quotes.
type Attr struct {
	Name  []byte
	Value []byte
	needs bool
}

// NeedsUnescape reports whether Value contains entity references.
func (a Attr) NeedsUnescape() bool {
	return a.needs
}

// Kind reports the token kind.
func (t Token) Kind() Kind {
	return t.kind
}

// Name returns the element name for start, empty, and end elements.
func (t Token) Name() []byte {
	return t.name
}

// Attrs returns the attributes of a start or empty element.
func (t Token) Attrs() []Attr {
	return t.attrs
}

// Text returns the raw content of character data and CDATA tokens.
func (t Token) Text() []byte {
	return t.text
}

// TextNeedsUnescape reports whether Text contains entity references.
func (t Token) TextNeedsUnescape() bool {
	return t.textNeeds
}

// Offset reports the input offset of the first byte of the token.
func (t Token) Offset() int64 {
	return t.offset
}

// Line reports the 1-based line where the token starts.
// It is zero when line tracking is disabled.
func (t Token) Line() int {
	return t.line
}

// Column reports the 1-based column where the token starts.
func (t Token) Column() int {
	return t.column
}
