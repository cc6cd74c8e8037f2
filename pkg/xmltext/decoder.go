package xmltext

import (
	"io"
)

const defaultBufferSize = 64 * 1024

// Decoder streams XML tokens with zero-copy views into its read buffer.
// Comments, processing instructions, and directives are validated and skipped.
type Decoder struct {
	r          io.Reader
	err        error
	buf        []byte
	attrs      []Attr
	attrIdx    []attrIndex
	opts       decoderOptions
	optsRaw    Options
	pos        int
	baseOffset int64
	line       int
	column     int
	eof        bool
	started    bool
}

type attrIndex struct {
	nameStart  int
	nameEnd    int
	valueStart int
	valueEnd   int
	needs      bool
}

// NewDecoder creates a new XML decoder for the reader.
func NewDecoder(r io.Reader, opts ...Options) *Decoder {
	dec := &Decoder{}
	dec.Reset(r, opts...)
	return dec
}

// Reset prepares the decoder for reading from r with new options.
// The read buffer is reused when it is large enough.
func (d *Decoder) Reset(r io.Reader, opts ...Options) {
	if d == nil {
		return
	}
	joined := JoinOptions(opts...)
	d.optsRaw = joined
	d.opts = resolveOptions(joined)

	if cap(d.buf) < d.opts.bufferSize {
		d.buf = make([]byte, 0, d.opts.bufferSize)
	}
	d.buf = d.buf[:0]
	d.attrs = d.attrs[:0]
	d.attrIdx = d.attrIdx[:0]
	d.pos = 0
	d.baseOffset = d.opts.baseOffset
	d.eof = false
	d.started = false
	d.err = nil

	if d.opts.trackLineColumn {
		d.line = 1
		d.column = 1
	} else {
		d.line = 0
		d.column = 0
	}

	d.r = r
	if r == nil {
		d.err = errNilReader
	}
}

// Options returns the immutable options snapshot.
func (d *Decoder) Options() Options {
	var zero Options
	if d == nil {
		return zero
	}
	return d.optsRaw
}

// ReadTokenInto reads the next XML token into dst.
// Slices in dst are only valid until the next read call.
// It returns io.EOF once the input is exhausted between tokens.
func (d *Decoder) ReadTokenInto(dst *Token) error {
	if dst == nil {
		return errNilToken
	}
	if d == nil {
		return errNilReader
	}
	if d.err != nil {
		return d.err
	}
	return d.readTokenInto(dst)
}

// ReadToken returns the next XML token.
func (d *Decoder) ReadToken() (Token, error) {
	var tok Token
	if err := d.ReadTokenInto(&tok); err != nil {
		return Token{}, err
	}
	return tok, nil
}

// InputOffset reports the offset of the next unread input byte.
func (d *Decoder) InputOffset() int64 {
	if d == nil {
		return 0
	}
	return d.baseOffset + int64(d.pos)
}

// Position reports the line and column of the next unread input byte.
// Both are zero when line tracking is disabled.
func (d *Decoder) Position() (line, column int) {
	if d == nil {
		return 0, 0
	}
	return d.line, d.column
}
