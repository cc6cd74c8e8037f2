package mwdump

import (
	"net/netip"
	"time"
)

// Page is one page of a dump with its revisions in document order.
type Page struct {
	// RedirectTarget is set when the page is a redirect.
	RedirectTarget *string
	// Restrictions holds the legacy free-text protection field.
	Restrictions *string
	Title        string
	Revisions    []Revision
	Namespace    int
	ID           uint64
}

// IsRedirect reports whether the page redirects to another title.
func (p *Page) IsRedirect() bool {
	return p != nil && p.RedirectTarget != nil
}

// Revision is a single edit of a page.
type Revision struct {
	Timestamp   time.Time
	Contributor Contributor
	Comment     Comment
	ParentID    *uint64
	// Origin is only present in newer dump generations.
	Origin *uint64
	Model  string
	Format string
	Text   string
	SHA1   string
	ID     uint64
	Minor  bool
}

// Contributor identifies who made a revision.
// It is one of DeletedContributor, IPContributor, or UserContributor.
type Contributor interface {
	isContributor()
}

// DeletedContributor marks a contributor suppressed by an administrator.
type DeletedContributor struct{}

// IPContributor is an anonymous edit.
type IPContributor struct {
	Addr netip.Addr
}

// UserContributor is an edit by a registered account.
type UserContributor struct {
	Username string
	ID       uint64
}

func (DeletedContributor) isContributor() {}
func (IPContributor) isContributor()      {}
func (UserContributor) isContributor()    {}

// Comment is the edit summary of a revision.
// It is either DeletedOrAbsentComment or VisibleComment.
type Comment interface {
	isComment()
}

// DeletedOrAbsentComment is a comment that cannot be shown.
// Deleted is true when the element was present but suppressed,
// and false when the revision had no comment element at all.
type DeletedOrAbsentComment struct {
	Deleted bool
}

// VisibleComment is a comment with readable text.
type VisibleComment struct {
	Text string
}

func (DeletedOrAbsentComment) isComment() {}
func (VisibleComment) isComment()         {}
