package xmltext

import (
	"bytes"
	"io"
)

var (
	litBOM      = []byte{0xEF, 0xBB, 0xBF}
	litPIEnd    = []byte("?>")
	litComStart = []byte("<!--")
	litComEnd   = []byte("-->")
	litDDash    = []byte("--")
	litCDStart  = []byte("<![CDATA[")
	litCDEnd    = []byte("]]>")
)

const snippetRadius = 24

func (d *Decoder) readTokenInto(dst *Token) error {
	if !d.started {
		d.started = true
		if err := d.skipBOM(); err != nil {
			return d.fail(err)
		}
	}
	for {
		d.compactIfNeeded()
		start := d.pos
		if err := d.ensureIndex(start); err != nil {
			if err == io.EOF {
				d.err = io.EOF
				return io.EOF
			}
			return d.fail(err)
		}
		if d.buf[start] != '<' {
			return d.scanCharDataInto(dst)
		}
		if err := d.fill(start, start+1); err != nil {
			return d.errAt(start, err)
		}
		switch d.buf[start+1] {
		case '/':
			return d.scanEndTagInto(dst)
		case '?':
			if err := d.skipPI(); err != nil {
				return err
			}
		case '!':
			isCDATA, err := d.matchLiteral(start, litCDStart)
			if err != nil {
				return d.errAt(start, err)
			}
			if isCDATA {
				return d.scanCDATAInto(dst)
			}
			isComment, err := d.matchLiteral(start, litComStart)
			if err != nil {
				return d.errAt(start, err)
			}
			if isComment {
				err = d.skipComment()
			} else {
				err = d.skipDirective()
			}
			if err != nil {
				return err
			}
		default:
			return d.scanStartTagInto(dst)
		}
	}
}

func (d *Decoder) skipBOM() error {
	for len(d.buf) < len(litBOM) && !d.eof {
		if err := d.readMore(); err != nil && err != io.EOF {
			return err
		}
	}
	if bytes.HasPrefix(d.buf, litBOM) {
		d.pos = len(litBOM)
	}
	return nil
}

func (d *Decoder) scanCharDataInto(dst *Token) error {
	start := d.pos
	i := start
	end := -1
	for end < 0 {
		if idx := bytes.IndexByte(d.buf[i:], '<'); idx >= 0 {
			end = i + idx
			break
		}
		i = len(d.buf)
		if err := d.fill(start, i); err != nil {
			if err != io.EOF {
				return d.errAt(start, err)
			}
			end = len(d.buf)
		}
	}
	if d.opts.maxTokenSize > 0 && end-start > d.opts.maxTokenSize {
		return d.errAt(start, errTokenTooLarge)
	}
	data := d.buf[start:end]
	bad, needs, err := scanCharData(data)
	if err != nil {
		return d.errAt(start+bad, err)
	}
	d.beginToken(dst, KindCharData, start)
	dst.text = data
	dst.textNeeds = needs
	d.advanceTo(end)
	return nil
}

func (d *Decoder) scanCDATAInto(dst *Token) error {
	start := d.pos
	textStart := start + len(litCDStart)
	textEnd, err := d.scanUntil(start, textStart, litCDEnd)
	if err != nil {
		return d.errAt(start, err)
	}
	data := d.buf[textStart:textEnd]
	if bad := validateXMLChars(data); bad >= 0 {
		return d.errAt(textStart+bad, errInvalidChar)
	}
	d.beginToken(dst, KindCDATA, start)
	dst.text = data
	dst.textNeeds = false
	d.advanceTo(textEnd + len(litCDEnd))
	return nil
}

func (d *Decoder) scanStartTagInto(dst *Token) error {
	start := d.pos
	d.attrIdx = d.attrIdx[:0]

	nameEnd, err := d.scanName(start, start+1)
	if err != nil {
		return err
	}
	i := nameEnd
	kind := KindStartElement
	for {
		next, space, err := d.skipSpace(start, i)
		if err != nil {
			return d.errAt(next, err)
		}
		i = next
		b := d.buf[i]
		if b == '>' {
			i++
			break
		}
		if b == '/' {
			if err := d.fill(start, i+1); err != nil {
				return d.errAt(i, err)
			}
			if d.buf[i+1] != '>' {
				return d.errAt(i+1, errInvalidToken)
			}
			i += 2
			kind = KindEmptyElement
			break
		}
		if !space {
			return d.errAt(i, errInvalidToken)
		}
		i, err = d.scanAttr(start, i)
		if err != nil {
			return err
		}
	}
	if d.opts.maxTokenSize > 0 && i-start > d.opts.maxTokenSize {
		return d.errAt(start, errTokenTooLarge)
	}

	d.attrs = d.attrs[:0]
	for _, idx := range d.attrIdx {
		d.attrs = append(d.attrs, Attr{
			Name:  d.buf[idx.nameStart:idx.nameEnd],
			Value: d.buf[idx.valueStart:idx.valueEnd],
			needs: idx.needs,
		})
	}
	d.beginToken(dst, kind, start)
	dst.name = d.buf[start+1 : nameEnd]
	dst.attrs = d.attrs
	d.advanceTo(i)
	return nil
}

// scanAttr scans name="value" at i and returns the index after the closing quote.
func (d *Decoder) scanAttr(start, i int) (int, error) {
	nameStart := i
	nameEnd, err := d.scanName(start, i)
	if err != nil {
		return 0, err
	}
	name := d.buf[nameStart:nameEnd]
	for _, prev := range d.attrIdx {
		if bytes.Equal(d.buf[prev.nameStart:prev.nameEnd], name) {
			return 0, d.errAt(nameStart, errDuplicateAttr)
		}
	}
	if d.opts.maxAttrs > 0 && len(d.attrIdx) >= d.opts.maxAttrs {
		return 0, d.errAt(nameStart, errAttrLimit)
	}

	i, _, err = d.skipSpace(start, nameEnd)
	if err != nil {
		return 0, d.errAt(i, err)
	}
	if d.buf[i] != '=' {
		return 0, d.errAt(i, errInvalidToken)
	}
	i, _, err = d.skipSpace(start, i+1)
	if err != nil {
		return 0, d.errAt(i, err)
	}
	quote := d.buf[i]
	if quote != '"' && quote != '\'' {
		return 0, d.errAt(i, errInvalidToken)
	}
	valueStart := i + 1
	j := valueStart
	valueEnd := -1
	for valueEnd < 0 {
		data := d.buf[j:]
		quoteIdx := bytes.IndexByte(data, quote)
		ltIdx := bytes.IndexByte(data, '<')
		if ltIdx >= 0 && (quoteIdx < 0 || ltIdx < quoteIdx) {
			return 0, d.errAt(j+ltIdx, errInvalidToken)
		}
		if quoteIdx >= 0 {
			valueEnd = j + quoteIdx
			break
		}
		j = len(d.buf)
		if err := d.fill(start, j); err != nil {
			return 0, d.errAt(j, err)
		}
	}
	value := d.buf[valueStart:valueEnd]
	if bad := validateXMLChars(value); bad >= 0 {
		return 0, d.errAt(valueStart+bad, errInvalidChar)
	}
	d.attrIdx = append(d.attrIdx, attrIndex{
		nameStart:  nameStart,
		nameEnd:    nameEnd,
		valueStart: valueStart,
		valueEnd:   valueEnd,
		needs:      bytes.IndexByte(value, '&') >= 0,
	})
	return valueEnd + 1, nil
}

func (d *Decoder) scanEndTagInto(dst *Token) error {
	start := d.pos
	nameEnd, err := d.scanName(start, start+2)
	if err != nil {
		return err
	}
	i, _, err := d.skipSpace(start, nameEnd)
	if err != nil {
		return d.errAt(i, err)
	}
	if d.buf[i] != '>' {
		return d.errAt(i, errInvalidToken)
	}
	d.beginToken(dst, KindEndElement, start)
	dst.name = d.buf[start+2 : nameEnd]
	d.advanceTo(i + 1)
	return nil
}

func (d *Decoder) skipPI() error {
	start := d.pos
	nameEnd, err := d.scanName(start, start+2)
	if err != nil {
		return err
	}
	end, err := d.scanUntil(start, nameEnd, litPIEnd)
	if err != nil {
		return d.errAt(start, err)
	}
	if end > nameEnd && !isWhitespace(d.buf[nameEnd]) {
		return d.errAt(nameEnd, errInvalidPI)
	}
	if bad := validateXMLChars(d.buf[nameEnd:end]); bad >= 0 {
		return d.errAt(nameEnd+bad, errInvalidChar)
	}
	d.advanceTo(end + len(litPIEnd))
	return nil
}

func (d *Decoder) skipComment() error {
	start := d.pos
	textStart := start + len(litComStart)
	end, err := d.scanUntil(start, textStart, litComEnd)
	if err != nil {
		return d.errAt(start, err)
	}
	text := d.buf[textStart:end]
	if idx := bytes.Index(text, litDDash); idx >= 0 {
		return d.errAt(textStart+idx, errInvalidComment)
	}
	if len(text) > 0 && text[len(text)-1] == '-' {
		return d.errAt(end-1, errInvalidComment)
	}
	if bad := validateXMLChars(text); bad >= 0 {
		return d.errAt(textStart+bad, errInvalidChar)
	}
	d.advanceTo(end + len(litComEnd))
	return nil
}

// skipDirective skips <!...> declarations, honoring quotes and internal subsets.
func (d *Decoder) skipDirective() error {
	start := d.pos
	i := start + 2
	depth := 0
	quote := byte(0)
	for {
		if err := d.fill(start, i); err != nil {
			return d.errAt(i, err)
		}
		b := d.buf[i]
		i++
		if quote != 0 {
			if b == quote {
				quote = 0
			}
			continue
		}
		switch b {
		case '\'', '"':
			quote = b
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '>':
			if depth == 0 {
				if bad := validateXMLChars(d.buf[start:i]); bad >= 0 {
					return d.errAt(start+bad, errInvalidChar)
				}
				d.advanceTo(i)
				return nil
			}
		}
	}
}

// scanName scans an XML name at i for the token starting at start
// and returns the index just past it.
func (d *Decoder) scanName(start, i int) (int, error) {
	for {
		if err := d.fill(start, i); err != nil {
			return 0, d.errAt(i, err)
		}
		n, complete := nameLen(d.buf[i:])
		if complete || d.eof {
			if n == 0 {
				return 0, d.errAt(i, errInvalidName)
			}
			return i + n, nil
		}
		if err := d.fill(start, len(d.buf)); err != nil && err != io.EOF {
			return 0, d.errAt(i, err)
		}
	}
}

// skipSpace skips whitespace at i and returns the next non-space index,
// which is guaranteed to be buffered.
func (d *Decoder) skipSpace(start, i int) (int, bool, error) {
	consumed := false
	for {
		if err := d.fill(start, i); err != nil {
			return i, consumed, err
		}
		if !isWhitespace(d.buf[i]) {
			return i, consumed, nil
		}
		consumed = true
		i++
	}
}

// scanUntil returns the index of seq at or after from.
func (d *Decoder) scanUntil(start, from int, seq []byte) (int, error) {
	for {
		if idx := bytes.Index(d.buf[from:], seq); idx >= 0 {
			end := from + idx
			if d.opts.maxTokenSize > 0 && end+len(seq)-start > d.opts.maxTokenSize {
				return 0, errTokenTooLarge
			}
			return end, nil
		}
		// Rescan the tail in case seq straddles the read boundary.
		from = max(from, len(d.buf)-len(seq)+1)
		if err := d.fill(start, len(d.buf)); err != nil {
			return 0, err
		}
	}
}

func (d *Decoder) matchLiteral(start int, lit []byte) (bool, error) {
	end := start + len(lit)
	for end > len(d.buf) {
		if !bytes.HasPrefix(lit, d.buf[start:]) {
			return false, nil
		}
		if err := d.fill(start, len(d.buf)); err != nil {
			return false, err
		}
	}
	return bytes.Equal(d.buf[start:end], lit), nil
}

// fill ensures buf[idx] is readable for the token starting at start.
func (d *Decoder) fill(start, idx int) error {
	for idx >= len(d.buf) {
		if d.opts.maxTokenSize > 0 && idx-start > d.opts.maxTokenSize {
			return errTokenTooLarge
		}
		if err := d.readMore(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) ensureIndex(idx int) error {
	for idx >= len(d.buf) {
		if err := d.readMore(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Decoder) readMore() error {
	if d.eof {
		return io.EOF
	}
	if len(d.buf) == cap(d.buf) {
		d.growBuffer()
	}
	for {
		n, err := d.r.Read(d.buf[len(d.buf):cap(d.buf)])
		if n > 0 {
			d.buf = d.buf[:len(d.buf)+n]
			if err == io.EOF {
				d.eof = true
			}
			return nil
		}
		if err == io.EOF {
			d.eof = true
			return io.EOF
		}
		if err != nil {
			return err
		}
	}
}

func (d *Decoder) growBuffer() {
	newCap := max(cap(d.buf)*2, d.opts.bufferSize)
	newBuf := make([]byte, len(d.buf), newCap)
	copy(newBuf, d.buf)
	d.buf = newBuf
}

// compactIfNeeded drops consumed bytes once the unread tail is small
// and the buffer is nearly full. Views from the previous token become invalid.
func (d *Decoder) compactIfNeeded() {
	if d.pos == 0 {
		return
	}
	if d.pos >= len(d.buf) {
		d.baseOffset += int64(d.pos)
		d.buf = d.buf[:0]
		d.pos = 0
		return
	}
	remaining := len(d.buf) - d.pos
	if remaining >= cap(d.buf)/4 {
		return
	}
	if cap(d.buf)-len(d.buf) >= cap(d.buf)/4 {
		return
	}
	copy(d.buf, d.buf[d.pos:])
	d.buf = d.buf[:remaining]
	d.baseOffset += int64(d.pos)
	d.pos = 0
}

func (d *Decoder) beginToken(dst *Token, kind Kind, start int) {
	dst.kind = kind
	dst.name = nil
	dst.attrs = nil
	dst.text = nil
	dst.textNeeds = false
	dst.offset = d.baseOffset + int64(start)
	dst.line = d.line
	dst.column = d.column
}

func (d *Decoder) advanceTo(pos int) {
	if pos <= d.pos {
		return
	}
	if d.opts.trackLineColumn {
		data := d.buf[d.pos:pos]
		if bytes.IndexByte(data, '\n') < 0 && bytes.IndexByte(data, '\r') < 0 {
			d.column += len(data)
		} else {
			d.advanceWithNewlines(data)
		}
	}
	d.pos = pos
}

// advanceWithNewlines handles line tracking when newlines are present.
func (d *Decoder) advanceWithNewlines(data []byte) {
	for i := 0; i < len(data); i++ {
		switch data[i] {
		case '\n':
			d.line++
			d.column = 1
		case '\r':
			d.line++
			d.column = 1
			if i+1 < len(data) && data[i+1] == '\n' {
				i++
			}
		default:
			d.column++
		}
	}
}

// errAt reports err at buffer index idx. Read failures pass through unchanged.
func (d *Decoder) errAt(idx int, err error) error {
	if err == io.EOF {
		err = errUnexpectedEOF
	}
	if !isSyntaxCause(err) {
		return d.fail(err)
	}
	idx = min(idx, len(d.buf))
	d.advanceTo(idx)
	return d.fail(&SyntaxError{
		Offset:  d.baseOffset + int64(idx),
		Line:    d.line,
		Column:  d.column,
		Snippet: d.snippet(idx),
		Err:     err,
	})
}

func (d *Decoder) fail(err error) error {
	d.err = err
	return err
}

func (d *Decoder) snippet(pos int) []byte {
	start := max(pos-snippetRadius, 0)
	end := min(pos+snippetRadius, len(d.buf))
	if start >= end {
		return nil
	}
	out := make([]byte, end-start)
	copy(out, d.buf[start:end])
	return out
}

func isSyntaxCause(err error) bool {
	switch err {
	case errUnexpectedEOF, errInvalidName, errInvalidChar, errInvalidToken,
		errInvalidComment, errInvalidPI, errTokenTooLarge, errAttrLimit, errDuplicateAttr:
		return true
	default:
		return false
	}
}
