package mwdump

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	mwerrors "github.com/jacoelho/mwdump/errors"
	"github.com/jacoelho/mwdump/pkg/mwtag"
	"github.com/jacoelho/mwdump/pkg/xmltext"
)

// TokenReader supplies XML tokens to the decoder.
// *xmltext.Decoder implements it.
type TokenReader interface {
	ReadTokenInto(dst *xmltext.Token) error
	InputOffset() int64
}

var (
	errExpectedWhitespace = errors.New("expected whitespace")
	errUnexpectedEnd      = errors.New("unexpected end of input")
	errRedirectNotEmpty   = errors.New("redirect must be a self-closing tag")
	errRedirectNoTarget   = errors.New("redirect without target attribute")
	errBadDeletedMarker   = errors.New(`self-closing tag must carry exactly deleted="deleted"`)
	errDuplicateOrigin    = errors.New("origin given twice")
)

// decoder walks the export grammar with one token of lookahead.
// Functions that peek return the event they consumed so callers can route it.
type decoder struct {
	r      TokenReader
	fn     PageFunc
	logger *zap.Logger
	path   string
	tok    xmltext.Token
	arena  []byte
	pages  int
	revs   int
}

// event is a token with its element name resolved against the registry.
// It aliases tokenizer memory and is only valid until the next read.
type event struct {
	tok xmltext.Token
	tag mwtag.Tag
}

func (e event) kind() xmltext.Kind {
	return e.tok.Kind()
}

func (e event) isStart(tag mwtag.Tag) bool {
	return e.tok.Kind() == xmltext.KindStartElement && e.tag == tag
}

func (e event) isEmpty(tag mwtag.Tag) bool {
	return e.tok.Kind() == xmltext.KindEmptyElement && e.tag == tag
}

func (e event) isEnd(tag mwtag.Tag) bool {
	return e.tok.Kind() == xmltext.KindEndElement && e.tag == tag
}

func (e event) position() mwerrors.Position {
	return positionOf(e.tok)
}

func positionOf(tok xmltext.Token) mwerrors.Position {
	return mwerrors.Position{Offset: tok.Offset(), Line: tok.Line(), Column: tok.Column()}
}

func newDecoder(r TokenReader, fn PageFunc, path string, scratchSize int, logger *zap.Logger) *decoder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &decoder{
		r:      r,
		fn:     fn,
		logger: logger,
		path:   path,
		arena:  make([]byte, 0, scratchSize),
	}
}

// read advances the tokenizer and maps its failures onto the fault taxonomy.
func (d *decoder) read() error {
	err := d.r.ReadTokenInto(&d.tok)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return &mwerrors.FormatError{
			Position: mwerrors.Position{Offset: d.r.InputOffset()},
			Err:      errUnexpectedEnd,
		}
	}
	var syntax *xmltext.SyntaxError
	if errors.As(err, &syntax) {
		return &mwerrors.FormatError{
			Position: mwerrors.Position{Offset: syntax.Offset, Line: syntax.Line, Column: syntax.Column},
			Err:      syntax,
		}
	}
	return &mwerrors.IOError{Action: "read", Path: d.path, Err: err}
}

// next reads one token and resolves element names.
func (d *decoder) next() (event, error) {
	if err := d.read(); err != nil {
		return event{}, err
	}
	ev := event{tok: d.tok}
	if d.tok.Kind().IsElement() {
		tag, ok := mwtag.Resolve(d.tok.Name())
		if !ok {
			return event{}, &mwerrors.UnrecognizedTagError{
				Name:     string(d.tok.Name()),
				Position: positionOf(d.tok),
			}
		}
		ev.tag = tag
	}
	return ev, nil
}

// skipSpace consumes the whitespace run that follows every element.
func (d *decoder) skipSpace() error {
	if err := d.read(); err != nil {
		return err
	}
	if d.tok.Kind() != xmltext.KindCharData {
		return &mwerrors.FormatError{
			Position: positionOf(d.tok),
			Err:      fmt.Errorf("%w, found %s", errExpectedWhitespace, describe(d.tok)),
		}
	}
	text := d.tok.Text()
	for i, b := range text {
		if b != ' ' && b != '\t' && b != '\n' && b != '\r' {
			return &mwerrors.FormatError{
				Position: advancePosition(positionOf(d.tok), text[:i]),
				Err:      fmt.Errorf("%w, found %q", errExpectedWhitespace, b),
			}
		}
	}
	return nil
}

// skipElement discards the element opened by the current token without
// resolving any names inside it.
func (d *decoder) skipElement() error {
	depth := 1
	for depth > 0 {
		if err := d.read(); err != nil {
			return err
		}
		switch d.tok.Kind() {
		case xmltext.KindStartElement:
			depth++
		case xmltext.KindEndElement:
			depth--
		}
	}
	return nil
}

// expectStart reads the next token and requires it to open tag.
func (d *decoder) expectStart(tag mwtag.Tag) error {
	ev, err := d.next()
	if err != nil {
		return err
	}
	return d.requireStart(ev, tag)
}

func (d *decoder) requireStart(ev event, tag mwtag.Tag) error {
	if ev.isStart(tag) {
		return nil
	}
	return unexpected(ev, tag, "start tag")
}

func (d *decoder) expectEnd(tag mwtag.Tag) error {
	ev, err := d.next()
	if err != nil {
		return err
	}
	if ev.isEnd(tag) {
		return nil
	}
	return unexpected(ev, tag, "end tag")
}

// unexpected builds the sharpest fault for ev when tag was required.
func unexpected(ev event, tag mwtag.Tag, want string) error {
	if ev.kind().IsElement() && ev.tag != tag {
		return &mwerrors.TagMismatchError{Position: ev.position(), Expected: tag, Actual: ev.tag}
	}
	return &mwerrors.FormatError{
		Position: ev.position(),
		Err:      fmt.Errorf("expected <%s> %s, found %s", tag, want, describe(ev.tok)),
	}
}

// readText collects the content of tag up to its end tag into the scratch arena.
// The returned slice is valid until the next readText call.
func (d *decoder) readText(tag mwtag.Tag) ([]byte, mwerrors.Position, error) {
	d.arena = d.arena[:0]
	var start mwerrors.Position
	first := true
	for {
		ev, err := d.next()
		if err != nil {
			return nil, start, err
		}
		if first {
			start = ev.position()
			first = false
		}
		switch ev.kind() {
		case xmltext.KindCharData:
			if !ev.tok.TextNeedsUnescape() {
				d.arena = append(d.arena, ev.tok.Text()...)
				continue
			}
			d.arena, err = xmltext.UnescapeInto(d.arena, ev.tok.Text())
			if err != nil {
				return nil, start, &mwerrors.DecodeError{Position: ev.position(), Err: err}
			}
		case xmltext.KindCDATA:
			d.arena = append(d.arena, ev.tok.Text()...)
		default:
			if ev.isEnd(tag) {
				return d.arena, start, nil
			}
			return nil, start, unexpected(ev, tag, "end tag")
		}
	}
}

func (d *decoder) readString(tag mwtag.Tag) (string, error) {
	text, _, err := d.readText(tag)
	if err != nil {
		return "", err
	}
	return string(text), nil
}

// readOptionalString reads the content of ev, which may be self-closing.
func (d *decoder) readOptionalString(ev event, tag mwtag.Tag) (string, error) {
	if ev.isEmpty(tag) {
		return "", nil
	}
	if err := d.requireStart(ev, tag); err != nil {
		return "", err
	}
	return d.readString(tag)
}

// attrValue returns the decoded value of attr.
func (d *decoder) attrValue(ev event, attr xmltext.Attr) (string, error) {
	if !attr.NeedsUnescape() {
		return string(attr.Value), nil
	}
	d.arena = d.arena[:0]
	out, err := xmltext.UnescapeInto(d.arena, attr.Value)
	if err != nil {
		return "", &mwerrors.DecodeError{Position: ev.position(), Err: err}
	}
	d.arena = out
	return string(out), nil
}

// isDeletedMarker reports whether ev carries exactly deleted="deleted".
func isDeletedMarker(ev event) bool {
	attrs := ev.tok.Attrs()
	if len(attrs) != 1 {
		return false
	}
	tag, ok := mwtag.Resolve(attrs[0].Name)
	return ok && tag == mwtag.Deleted && string(attrs[0].Value) == mwtag.Deleted.String()
}

func describe(tok xmltext.Token) string {
	switch tok.Kind() {
	case xmltext.KindStartElement:
		return fmt.Sprintf("<%s>", tok.Name())
	case xmltext.KindEmptyElement:
		return fmt.Sprintf("<%s/>", tok.Name())
	case xmltext.KindEndElement:
		return fmt.Sprintf("</%s>", tok.Name())
	default:
		return "text"
	}
}

// advancePosition moves pos past data, tracking line breaks when lines are known.
func advancePosition(pos mwerrors.Position, data []byte) mwerrors.Position {
	pos.Offset += int64(len(data))
	if pos.Line == 0 {
		return pos
	}
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			pos.Line++
			pos.Column = 1
		case '\r':
			pos.Line++
			pos.Column = 1
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
		default:
			pos.Column++
		}
	}
	return pos
}
