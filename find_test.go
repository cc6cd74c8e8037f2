package mwdump_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jacoelho/mwdump"
	mwerrors "github.com/jacoelho/mwdump/errors"
)

func escapedTitlesDump() []byte {
	return []byte(dumpXML(
		pageXML("A&amp;B&amp;C", 0, 3, "", defaultRevision().xml(30)),
		pageXML("A&amp;B", 0, 2, "", defaultRevision().xml(20)),
		pageXML("A", 0, 1, "", defaultRevision().xml(10)),
	))
}

func TestFindPageEscapedTitles(t *testing.T) {
	data := escapedTitlesDump()
	tests := []struct {
		title string
		id    uint64
	}{
		{title: "A", id: 1},
		{title: "A&B", id: 2},
		{title: "A&B&C", id: 3},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			page, err := mwdump.FindPage(data, tt.title)
			require.NoError(t, err)
			require.NotNil(t, page)
			assert.Equal(t, tt.title, page.Title)
			assert.Equal(t, tt.id, page.ID)
			require.Len(t, page.Revisions, 1)
			assert.Equal(t, tt.id*10, page.Revisions[0].ID)
		})
	}
}

func TestFindPageNotFound(t *testing.T) {
	data := escapedTitlesDump()
	for _, title := range []string{"B", "A&", "a", ""} {
		page, err := mwdump.FindPage(data, title)
		assert.ErrorIs(t, err, mwdump.ErrPageNotFound)
		assert.Nil(t, page)
	}

	page, err := mwdump.FindPage(nil, "A")
	assert.ErrorIs(t, err, mwdump.ErrPageNotFound)
	assert.Nil(t, page)
}

func TestFindPageQuotesAndAngles(t *testing.T) {
	data := []byte(dumpXML(
		pageXML("Say &quot;hi&quot; &lt;now&gt;", 0, 9, "", defaultRevision().xml(90)),
	))
	page, err := mwdump.FindPage(data, `Say "hi" <now>`)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), page.ID)
}

func TestFindPageRevalidatesTitle(t *testing.T) {
	ghost := defaultRevision()
	ghost.text = "      <text><![CDATA[<title>Ghost</title>]]></text>\n"
	data := []byte(dumpXML(pageXML("Host", 0, 1, "", ghost.xml(10))))

	page, err := mwdump.FindPage(data, "Ghost")
	assert.ErrorIs(t, err, mwdump.ErrPageNotFound)
	assert.Nil(t, page)
}

func TestFindPageSkipsFalseHitAndContinues(t *testing.T) {
	ghost := defaultRevision()
	ghost.text = "      <text><![CDATA[<title>Target</title>]]></text>\n"
	data := []byte(dumpXML(
		pageXML("Host", 0, 1, "", ghost.xml(10)),
		pageXML("Target", 0, 2, "", defaultRevision().xml(20)),
	))

	page, err := mwdump.FindPage(data, "Target")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), page.ID)
}

func TestFindPageFaultOffsetsAreAbsolute(t *testing.T) {
	broken := pageXML("Broken", 0, 5, "", defaultRevision().xml(50))
	broken = strings.Replace(broken, "<ns>0</ns>", "<ns>x</ns>", 1)
	doc := dumpXML(pageXML("Fine", 0, 4, "", defaultRevision().xml(40)), broken)

	_, err := mwdump.FindPage([]byte(doc), "Broken")
	var decodeErr *mwerrors.DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, int64(strings.Index(doc, "x</ns>")), decodeErr.Position.Offset)
	assert.Zero(t, decodeErr.Position.Line)
}

func TestFindPageOptionsValidation(t *testing.T) {
	_, err := mwdump.FindPageWithOptions(escapedTitlesDump(), "A", mwdump.ParseOptions{MaxTokenSize: -1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, mwdump.ErrPageNotFound)
}
