package mwdump

import (
	"net/netip"
	"time"

	mwerrors "github.com/jacoelho/mwdump/errors"
	"github.com/jacoelho/mwdump/pkg/mwtag"
)

// readRevision decodes a revision after its start tag, through </revision>.
func (d *decoder) readRevision() (Revision, error) {
	var rev Revision
	if err := d.skipSpace(); err != nil {
		return rev, err
	}

	if err := d.expectStart(mwtag.ID); err != nil {
		return rev, err
	}
	id, err := d.readUint(mwtag.ID)
	if err != nil {
		return rev, err
	}
	rev.ID = id
	if err := d.skipSpace(); err != nil {
		return rev, err
	}

	ev, err := d.next()
	if err != nil {
		return rev, err
	}
	if ev.isStart(mwtag.ParentID) {
		parentID, err := d.readUint(mwtag.ParentID)
		if err != nil {
			return rev, err
		}
		rev.ParentID = &parentID
		if err := d.skipSpace(); err != nil {
			return rev, err
		}
		if ev, err = d.next(); err != nil {
			return rev, err
		}
	}

	if err := d.requireStart(ev, mwtag.Timestamp); err != nil {
		return rev, err
	}
	if rev.Timestamp, err = d.readTimestamp(); err != nil {
		return rev, err
	}
	if err := d.skipSpace(); err != nil {
		return rev, err
	}

	if ev, err = d.next(); err != nil {
		return rev, err
	}
	if rev.Contributor, err = d.readContributor(ev); err != nil {
		return rev, err
	}
	if err := d.skipSpace(); err != nil {
		return rev, err
	}

	if ev, err = d.next(); err != nil {
		return rev, err
	}
	if ev.isEmpty(mwtag.Minor) {
		rev.Minor = true
		if err := d.skipSpace(); err != nil {
			return rev, err
		}
		if ev, err = d.next(); err != nil {
			return rev, err
		}
	}
	if ev, err = d.readOrigin(ev, &rev); err != nil {
		return rev, err
	}
	if ev, rev.Comment, err = d.readComment(ev); err != nil {
		return rev, err
	}
	if ev, err = d.readOrigin(ev, &rev); err != nil {
		return rev, err
	}

	if err := d.requireStart(ev, mwtag.Model); err != nil {
		return rev, err
	}
	if rev.Model, err = d.readString(mwtag.Model); err != nil {
		return rev, err
	}
	if err := d.skipSpace(); err != nil {
		return rev, err
	}

	if err := d.expectStart(mwtag.Format); err != nil {
		return rev, err
	}
	if rev.Format, err = d.readString(mwtag.Format); err != nil {
		return rev, err
	}
	if err := d.skipSpace(); err != nil {
		return rev, err
	}

	if ev, err = d.next(); err != nil {
		return rev, err
	}
	if rev.Text, err = d.readOptionalString(ev, mwtag.Text); err != nil {
		return rev, err
	}
	if err := d.skipSpace(); err != nil {
		return rev, err
	}

	if ev, err = d.next(); err != nil {
		return rev, err
	}
	if rev.SHA1, err = d.readOptionalString(ev, mwtag.SHA1); err != nil {
		return rev, err
	}
	if err := d.skipSpace(); err != nil {
		return rev, err
	}

	if err := d.expectEnd(mwtag.Revision); err != nil {
		return rev, err
	}
	return rev, nil
}

func (d *decoder) readTimestamp() (time.Time, error) {
	text, pos, err := d.readText(mwtag.Timestamp)
	if err != nil {
		return time.Time{}, err
	}
	ts, err := time.Parse(time.RFC3339, string(text))
	if err != nil {
		return time.Time{}, &mwerrors.DecodeError{Position: pos, Err: err}
	}
	return ts.UTC(), nil
}

// readContributor decodes the contributor opened by ev.
func (d *decoder) readContributor(ev event) (Contributor, error) {
	if ev.isEmpty(mwtag.Contributor) {
		if !isDeletedMarker(ev) {
			return nil, &mwerrors.FormatError{Position: ev.position(), Err: errBadDeletedMarker}
		}
		return DeletedContributor{}, nil
	}
	if err := d.requireStart(ev, mwtag.Contributor); err != nil {
		return nil, err
	}
	if err := d.skipSpace(); err != nil {
		return nil, err
	}

	ev, err := d.next()
	if err != nil {
		return nil, err
	}
	var contributor Contributor
	switch {
	case ev.isStart(mwtag.Username):
		username, err := d.readString(mwtag.Username)
		if err != nil {
			return nil, err
		}
		if err := d.skipSpace(); err != nil {
			return nil, err
		}
		if err := d.expectStart(mwtag.ID); err != nil {
			return nil, err
		}
		id, err := d.readUint(mwtag.ID)
		if err != nil {
			return nil, err
		}
		contributor = UserContributor{Username: username, ID: id}
	case ev.isStart(mwtag.IP):
		text, pos, err := d.readText(mwtag.IP)
		if err != nil {
			return nil, err
		}
		addr, err := netip.ParseAddr(string(text))
		if err != nil {
			return nil, &mwerrors.DecodeError{Position: pos, Err: err}
		}
		contributor = IPContributor{Addr: addr}
	default:
		return nil, unexpected(ev, mwtag.Username, "start tag")
	}
	if err := d.skipSpace(); err != nil {
		return nil, err
	}
	if err := d.expectEnd(mwtag.Contributor); err != nil {
		return nil, err
	}
	return contributor, nil
}

// readComment branches on ev. When ev is not a comment it is returned
// unchanged and the comment is absent; otherwise the event after the
// comment is returned.
func (d *decoder) readComment(ev event) (event, Comment, error) {
	switch {
	case ev.isStart(mwtag.Comment):
		text, err := d.readString(mwtag.Comment)
		if err != nil {
			return event{}, nil, err
		}
		next, err := d.afterElement()
		if err != nil {
			return event{}, nil, err
		}
		return next, VisibleComment{Text: text}, nil
	case ev.isEmpty(mwtag.Comment):
		if !isDeletedMarker(ev) {
			return event{}, nil, &mwerrors.FormatError{Position: ev.position(), Err: errBadDeletedMarker}
		}
		next, err := d.afterElement()
		if err != nil {
			return event{}, nil, err
		}
		return next, DeletedOrAbsentComment{Deleted: true}, nil
	default:
		return ev, DeletedOrAbsentComment{Deleted: false}, nil
	}
}

// readOrigin consumes an origin element when ev opens one.
// It may appear before or after the comment, but only once.
func (d *decoder) readOrigin(ev event, rev *Revision) (event, error) {
	if !ev.isStart(mwtag.Origin) {
		return ev, nil
	}
	if rev.Origin != nil {
		return event{}, &mwerrors.FormatError{Position: ev.position(), Err: errDuplicateOrigin}
	}
	origin, err := d.readUint(mwtag.Origin)
	if err != nil {
		return event{}, err
	}
	rev.Origin = &origin
	return d.afterElement()
}

// afterElement skips the trailing whitespace run and returns the next event.
func (d *decoder) afterElement() (event, error) {
	if err := d.skipSpace(); err != nil {
		return event{}, err
	}
	return d.next()
}
