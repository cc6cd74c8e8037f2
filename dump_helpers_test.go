package mwdump_test

import (
	"fmt"
	"strings"
)

const dumpHeader = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/" version="0.10" xml:lang="en">
  <siteinfo>
    <sitename>Wikipedia</sitename>
    <dbname>enwiki</dbname>
    <namespaces>
      <namespace key="0" case="first-letter" />
      <namespace key="1" case="first-letter">Talk</namespace>
    </namespaces>
  </siteinfo>
`

const dumpFooter = "</mediawiki>\n"

// revisionFields is the body of a revision between its id and </revision>.
type revisionFields struct {
	parent      string
	timestamp   string
	contributor string
	middle      string
	model       string
	text        string
	sha1        string
}

const userContributor = "      <contributor>\n" +
	"        <username>Alice</username>\n" +
	"        <id>7</id>\n" +
	"      </contributor>\n"

func defaultRevision() revisionFields {
	return revisionFields{
		parent:      "      <parentid>99</parentid>\n",
		timestamp:   "2001-01-15T13:15:00Z",
		contributor: userContributor,
		middle:      "      <comment>first</comment>\n",
		model:       "wikitext",
		text:        `      <text bytes="19" xml:space="preserve">Hello &amp; welcome</text>` + "\n",
		sha1:        "      <sha1>abc123</sha1>\n",
	}
}

func (r revisionFields) xml(id uint64) string {
	var b strings.Builder
	b.WriteString("    <revision>\n")
	fmt.Fprintf(&b, "      <id>%d</id>\n", id)
	b.WriteString(r.parent)
	fmt.Fprintf(&b, "      <timestamp>%s</timestamp>\n", r.timestamp)
	b.WriteString(r.contributor)
	b.WriteString(r.middle)
	fmt.Fprintf(&b, "      <model>%s</model>\n", r.model)
	b.WriteString("      <format>text/x-wiki</format>\n")
	b.WriteString(r.text)
	b.WriteString(r.sha1)
	b.WriteString("    </revision>\n")
	return b.String()
}

// pageXML renders a page. extra is inserted between </id> and the first revision.
func pageXML(title string, ns int, id uint64, extra string, revisions ...string) string {
	var b strings.Builder
	b.WriteString("  <page>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", title)
	fmt.Fprintf(&b, "    <ns>%d</ns>\n", ns)
	fmt.Fprintf(&b, "    <id>%d</id>\n", id)
	b.WriteString(extra)
	for _, rev := range revisions {
		b.WriteString(rev)
	}
	b.WriteString("  </page>\n")
	return b.String()
}

func dumpXML(pages ...string) string {
	return dumpHeader + strings.Join(pages, "") + dumpFooter
}

// singleRevisionDump wraps one revision built from fields into a one-page dump.
func singleRevisionDump(fields revisionFields) string {
	return dumpXML(pageXML("Example", 0, 1, "", fields.xml(100)))
}
