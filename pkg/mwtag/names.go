package mwtag

// Tag identifies an element or attribute name of the export schema.
type Tag uint8

const (
	// Unknown is the zero Tag. Resolve never returns it with ok set.
	Unknown Tag = iota
	Action
	Base
	Case
	Comment
	Contributor
	DBName
	Deleted
	DiscussionThreadingInfo
	Filename
	Format
	Generator
	ID
	IP
	LogItem
	LogTitle
	MediaWiki
	Minor
	Model
	Namespace
	Namespaces
	NS
	Origin
	Page
	Params
	ParentID
	Redirect
	Restrictions
	Revision
	SHA1
	SiteInfo
	SiteName
	Size
	Src
	Text
	ThreadAncestor
	ThreadAuthor
	ThreadEditStatus
	ThreadID
	ThreadPage
	ThreadParent
	ThreadSubject
	ThreadType
	Timestamp
	Title
	Type
	Upload
	Username
)

var names = [...]string{
	Unknown:                 "",
	Action:                  "action",
	Base:                    "base",
	Case:                    "case",
	Comment:                 "comment",
	Contributor:             "contributor",
	DBName:                  "dbname",
	Deleted:                 "deleted",
	DiscussionThreadingInfo: "discussionthreadinginfo",
	Filename:                "filename",
	Format:                  "format",
	Generator:               "generator",
	ID:                      "id",
	IP:                      "ip",
	LogItem:                 "logitem",
	LogTitle:                "logtitle",
	MediaWiki:               "mediawiki",
	Minor:                   "minor",
	Model:                   "model",
	Namespace:               "namespace",
	Namespaces:              "namespaces",
	NS:                      "ns",
	Origin:                  "origin",
	Page:                    "page",
	Params:                  "params",
	ParentID:                "parentid",
	Redirect:                "redirect",
	Restrictions:            "restrictions",
	Revision:                "revision",
	SHA1:                    "sha1",
	SiteInfo:                "siteinfo",
	SiteName:                "sitename",
	Size:                    "size",
	Src:                     "src",
	Text:                    "text",
	ThreadAncestor:          "ThreadAncestor",
	ThreadAuthor:            "ThreadAuthor",
	ThreadEditStatus:        "ThreadEditStatus",
	ThreadID:                "ThreadID",
	ThreadPage:              "ThreadPage",
	ThreadParent:            "ThreadParent",
	ThreadSubject:           "ThreadSubject",
	ThreadType:              "ThreadType",
	Timestamp:               "timestamp",
	Title:                   "title",
	Type:                    "type",
	Upload:                  "upload",
	Username:                "username",
}

