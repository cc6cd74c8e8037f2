package main

import (
	"time"

	"github.com/jacoelho/mwdump"
)

// pageRecord is the JSON form of a page.
type pageRecord struct {
	Redirect     *string          `json:"redirect,omitempty"`
	Restrictions *string          `json:"restrictions,omitempty"`
	Title        string           `json:"title"`
	Revisions    []revisionRecord `json:"revisions"`
	ID           uint64           `json:"id"`
	Namespace    int              `json:"ns"`
}

type revisionRecord struct {
	Timestamp   time.Time         `json:"timestamp"`
	ParentID    *uint64           `json:"parent_id,omitempty"`
	Origin      *uint64           `json:"origin,omitempty"`
	Text        *string           `json:"text,omitempty"`
	Contributor contributorRecord `json:"contributor"`
	Comment     commentRecord     `json:"comment"`
	Model       string            `json:"model"`
	Format      string            `json:"format"`
	SHA1        string            `json:"sha1"`
	ID          uint64            `json:"id"`
	Minor       bool              `json:"minor,omitempty"`
}

type contributorRecord struct {
	Kind     string `json:"kind"`
	Username string `json:"username,omitempty"`
	IP       string `json:"ip,omitempty"`
	ID       uint64 `json:"id,omitempty"`
}

type commentRecord struct {
	Kind string `json:"kind"`
	Text string `json:"text,omitempty"`
}

func newPageRecord(p *mwdump.Page, withText bool) pageRecord {
	rec := pageRecord{
		Redirect:     p.RedirectTarget,
		Restrictions: p.Restrictions,
		Title:        p.Title,
		ID:           p.ID,
		Namespace:    p.Namespace,
		Revisions:    make([]revisionRecord, len(p.Revisions)),
	}
	for i := range p.Revisions {
		rev := &p.Revisions[i]
		out := revisionRecord{
			Timestamp:   rev.Timestamp,
			ParentID:    rev.ParentID,
			Origin:      rev.Origin,
			Contributor: newContributorRecord(rev.Contributor),
			Comment:     newCommentRecord(rev.Comment),
			Model:       rev.Model,
			Format:      rev.Format,
			SHA1:        rev.SHA1,
			ID:          rev.ID,
			Minor:       rev.Minor,
		}
		if withText {
			out.Text = &rev.Text
		}
		rec.Revisions[i] = out
	}
	return rec
}

func newContributorRecord(c mwdump.Contributor) contributorRecord {
	switch c := c.(type) {
	case mwdump.UserContributor:
		return contributorRecord{Kind: "user", Username: c.Username, ID: c.ID}
	case mwdump.IPContributor:
		return contributorRecord{Kind: "ip", IP: c.Addr.String()}
	default:
		return contributorRecord{Kind: "deleted"}
	}
}

func newCommentRecord(c mwdump.Comment) commentRecord {
	switch c := c.(type) {
	case mwdump.VisibleComment:
		return commentRecord{Kind: "visible", Text: c.Text}
	case mwdump.DeletedOrAbsentComment:
		if c.Deleted {
			return commentRecord{Kind: "deleted"}
		}
	}
	return commentRecord{Kind: "absent"}
}
