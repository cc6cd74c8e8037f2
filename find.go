package mwdump

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/jacoelho/mwdump/pkg/mwtag"
	"github.com/jacoelho/mwdump/pkg/xmltext"
)

// ErrPageNotFound is returned by FindPage when no page carries the title.
var ErrPageNotFound = errors.New("mwdump: page not found")

var titleEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"<", "&lt;",
	">", "&gt;",
)

// FindPage returns the page titled title from an uncompressed dump held in data.
//
// The title is located by a literal search for its escaped <title> element and
// decoding starts at the nearest preceding "<page>". A "<page>" sequence
// occurring verbatim inside revision text can misanchor that decode; the
// decoded title is compared with title, but no other guard is applied.
func FindPage(data []byte, title string) (*Page, error) {
	return FindPageWithOptions(data, title, ParseOptions{})
}

// FindPageWithOptions is FindPage with explicit configuration.
// Headerless and ExtendedCodecs are ignored.
func FindPageWithOptions(data []byte, title string, opts ParseOptions) (*Page, error) {
	limits, err := resolveParseLimits(opts.MaxTokenSize, opts.ScratchSize)
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}
	needle := titleNeedle(title)
	pageOpen := []byte("<" + mwtag.Page.String() + ">")

	for from := 0; from < len(data); {
		idx := bytes.Index(data[from:], needle)
		if idx < 0 {
			break
		}
		hit := from + idx
		if start := bytes.LastIndex(data[:hit], pageOpen); start >= 0 {
			page, err := decodePageAt(data, start, title, limits, opts)
			if err != nil {
				return nil, err
			}
			if page != nil {
				return page, nil
			}
		}
		from = hit + len(needle)
	}
	return nil, ErrPageNotFound
}

func titleNeedle(title string) []byte {
	tag := mwtag.Title.String()
	var b strings.Builder
	b.Grow(len(title) + 2*len(tag) + 5)
	b.WriteString("<" + tag + ">")
	titleEscaper.WriteString(&b, title)
	b.WriteString("</" + tag + ">")
	return []byte(b.String())
}

// decodePageAt decodes the single page starting at data[start:].
// It returns nil when that page has a different title.
func decodePageAt(data []byte, start int, title string, limits parseLimits, opts ParseOptions) (*Page, error) {
	tokOpts := append(limits.options(),
		xmltext.TrackLineColumn(false),
		xmltext.BaseOffset(int64(start)),
	)
	tr := xmltext.NewDecoder(bytes.NewReader(data[start:]), tokOpts...)

	var found *Page
	d := newDecoder(tr, func(page *Page) error {
		if page.Title == title {
			found = page
		}
		return ErrStop
	}, "", limits.scratchSize, opts.Logger)
	if err := d.run(true); err != nil && !errors.Is(err, ErrStop) {
		return nil, err
	}
	return found, nil
}
