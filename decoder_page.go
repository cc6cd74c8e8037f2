package mwdump

import (
	"strconv"

	"go.uber.org/zap"

	mwerrors "github.com/jacoelho/mwdump/errors"
	"github.com/jacoelho/mwdump/pkg/mwtag"
	"github.com/jacoelho/mwdump/pkg/xmltext"
)

// run decodes pages until the closing root tag and hands each one to the callback.
func (d *decoder) run(headerless bool) error {
	var (
		ev  event
		err error
	)
	if headerless {
		ev, err = d.next()
	} else {
		ev, err = d.skipHeader()
	}
	for {
		if err != nil {
			return err
		}
		switch {
		case ev.isStart(mwtag.Page):
			page, err := d.readPage()
			if err != nil {
				return err
			}
			d.pages++
			d.revs += len(page.Revisions)
			if ce := d.logger.Check(zap.DebugLevel, "page decoded"); ce != nil {
				ce.Write(
					zap.Uint64("id", page.ID),
					zap.String("title", page.Title),
					zap.Int("revisions", len(page.Revisions)),
				)
			}
			if err := d.fn(page); err != nil {
				return err
			}
			if err := d.skipSpace(); err != nil {
				return err
			}
		case ev.isEnd(mwtag.MediaWiki):
			return nil
		default:
			return unexpected(ev, mwtag.Page, "start tag")
		}
		ev, err = d.next()
	}
}

// skipHeader consumes the root start tag and the optional site info block.
// It returns the first event after the header.
func (d *decoder) skipHeader() (event, error) {
	ev, err := d.next()
	if err != nil {
		return event{}, err
	}
	if ev.kind() == xmltext.KindCharData && xmltext.IsWhitespace(ev.tok.Text()) {
		if ev, err = d.next(); err != nil {
			return event{}, err
		}
	}
	if err := d.requireStart(ev, mwtag.MediaWiki); err != nil {
		return event{}, err
	}
	if err := d.skipSpace(); err != nil {
		return event{}, err
	}
	if ev, err = d.next(); err != nil {
		return event{}, err
	}
	if !ev.isStart(mwtag.SiteInfo) {
		return ev, nil
	}
	if err := d.skipElement(); err != nil {
		return event{}, err
	}
	d.logger.Debug("site info skipped", zap.Int64("offset", d.r.InputOffset()))
	if err := d.skipSpace(); err != nil {
		return event{}, err
	}
	return d.next()
}

// readPage decodes a page after its start tag, through </page>.
func (d *decoder) readPage() (*Page, error) {
	page := &Page{}
	if err := d.skipSpace(); err != nil {
		return nil, err
	}

	if err := d.expectStart(mwtag.Title); err != nil {
		return nil, err
	}
	title, err := d.readString(mwtag.Title)
	if err != nil {
		return nil, err
	}
	page.Title = title
	if err := d.skipSpace(); err != nil {
		return nil, err
	}

	if err := d.expectStart(mwtag.NS); err != nil {
		return nil, err
	}
	ns, err := d.readInt(mwtag.NS)
	if err != nil {
		return nil, err
	}
	page.Namespace = ns
	if err := d.skipSpace(); err != nil {
		return nil, err
	}

	if err := d.expectStart(mwtag.ID); err != nil {
		return nil, err
	}
	if page.ID, err = d.readUint(mwtag.ID); err != nil {
		return nil, err
	}
	if err := d.skipSpace(); err != nil {
		return nil, err
	}

	ev, err := d.next()
	if err != nil {
		return nil, err
	}
	if ev.tag == mwtag.Redirect && ev.kind().IsElement() {
		target, err := d.readRedirect(ev)
		if err != nil {
			return nil, err
		}
		page.RedirectTarget = &target
		if err := d.skipSpace(); err != nil {
			return nil, err
		}
		if ev, err = d.next(); err != nil {
			return nil, err
		}
	}
	if ev.isStart(mwtag.Restrictions) || ev.isEmpty(mwtag.Restrictions) {
		restrictions, err := d.readOptionalString(ev, mwtag.Restrictions)
		if err != nil {
			return nil, err
		}
		page.Restrictions = &restrictions
		if err := d.skipSpace(); err != nil {
			return nil, err
		}
		if ev, err = d.next(); err != nil {
			return nil, err
		}
	}

	for {
		if ev.isEnd(mwtag.Page) && len(page.Revisions) > 0 {
			return page, nil
		}
		if err := d.requireStart(ev, mwtag.Revision); err != nil {
			return nil, err
		}
		rev, err := d.readRevision()
		if err != nil {
			return nil, err
		}
		page.Revisions = append(page.Revisions, rev)
		if err := d.skipSpace(); err != nil {
			return nil, err
		}
		if ev, err = d.next(); err != nil {
			return nil, err
		}
	}
}

// readRedirect returns the target title carried by a self-closing redirect.
// The first attribute holds the target whatever its name.
func (d *decoder) readRedirect(ev event) (string, error) {
	if !ev.isEmpty(mwtag.Redirect) {
		return "", &mwerrors.FormatError{Position: ev.position(), Err: errRedirectNotEmpty}
	}
	attrs := ev.tok.Attrs()
	if len(attrs) == 0 {
		return "", &mwerrors.FormatError{Position: ev.position(), Err: errRedirectNoTarget}
	}
	return d.attrValue(ev, attrs[0])
}

func (d *decoder) readInt(tag mwtag.Tag) (int, error) {
	text, pos, err := d.readText(tag)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(string(text))
	if err != nil {
		return 0, &mwerrors.DecodeError{Position: pos, Err: err}
	}
	return v, nil
}

func (d *decoder) readUint(tag mwtag.Tag) (uint64, error) {
	text, pos, err := d.readText(tag)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(string(text), 10, 64)
	if err != nil {
		return 0, &mwerrors.DecodeError{Position: pos, Err: err}
	}
	return v, nil
}
