package mwdump_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jacoelho/mwdump"
	mwerrors "github.com/jacoelho/mwdump/errors"
)

const exampleDump = `<mediawiki>
  <page>
    <title>Go</title>
    <ns>0</ns>
    <id>1</id>
    <revision>
      <id>10</id>
      <timestamp>2009-11-10T23:00:00Z</timestamp>
      <contributor>
        <username>gopher</username>
        <id>42</id>
      </contributor>
      <comment>initial</comment>
      <model>wikitext</model>
      <format>text/x-wiki</format>
      <text>Go is a programming language.</text>
      <sha1>0123abcd</sha1>
    </revision>
  </page>
  <page>
    <title>Golang</title>
    <ns>0</ns>
    <id>2</id>
    <redirect title="Go" />
    <revision>
      <id>11</id>
      <timestamp>2009-11-11T08:00:00Z</timestamp>
      <contributor>
        <ip>192.0.2.7</ip>
      </contributor>
      <model>wikitext</model>
      <format>text/x-wiki</format>
      <text>#REDIRECT [[Go]]</text>
      <sha1>4567ef01</sha1>
    </revision>
  </page>
</mediawiki>
`

func ExampleParse() {
	err := mwdump.Parse(strings.NewReader(exampleDump), func(p *mwdump.Page) error {
		rev := p.Revisions[0]
		switch c := rev.Contributor.(type) {
		case mwdump.UserContributor:
			fmt.Printf("%s by %s\n", p.Title, c.Username)
		case mwdump.IPContributor:
			fmt.Printf("%s by %s -> %s\n", p.Title, c.Addr, *p.RedirectTarget)
		}
		return nil
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
	}
	// Output:
	// Go by gopher
	// Golang by 192.0.2.7 -> Go
}

func ExampleParse_stop() {
	err := mwdump.Parse(strings.NewReader(exampleDump), func(p *mwdump.Page) error {
		fmt.Println(p.Title)
		return mwdump.ErrStop
	})
	fmt.Println(err)
	// Output:
	// Go
	// <nil>
}

func ExampleParse_error() {
	broken := strings.Replace(exampleDump, "<ns>0</ns>", "<ns>main</ns>", 1)
	err := mwdump.Parse(strings.NewReader(broken), func(*mwdump.Page) error { return nil })

	var decodeErr *mwerrors.DecodeError
	if errors.As(err, &decodeErr) {
		fmt.Printf("bad value at line %d, column %d\n", decodeErr.Position.Line, decodeErr.Position.Column)
	}
	// Output: bad value at line 4, column 9
}

func ExampleFindPage() {
	page, err := mwdump.FindPage([]byte(exampleDump), "Golang")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(page.ID, page.IsRedirect())
	// Output: 2 true
}
