package mwdump_test

import (
	"io"
	"runtime"
	"testing"

	"github.com/jacoelho/mwdump"
)

var (
	streamRootStart = []byte("<mediawiki>\n")
	streamPage      = []byte(`  <page>
    <title>Streamed</title>
    <ns>0</ns>
    <id>1</id>
    <revision>
      <id>2</id>
      <timestamp>2001-01-15T13:15:00Z</timestamp>
      <contributor>
        <ip>192.0.2.1</ip>
      </contributor>
      <comment>c</comment>
      <model>wikitext</model>
      <format>text/x-wiki</format>
      <text>some text &amp; more</text>
      <sha1>abc</sha1>
    </revision>
  </page>
`)
	streamRootEnd = []byte("</mediawiki>\n")
)

type pageStream struct {
	remaining int
	state     int
	buf       []byte
	offset    int
}

const (
	streamStateStart = iota
	streamStatePages
	streamStateEnd
	streamStateDone
)

func newPageStream(count int) io.Reader {
	return &pageStream{
		remaining: count,
		state:     streamStateStart,
	}
}

func (s *pageStream) Read(p []byte) (int, error) {
	if s.state == streamStateDone {
		return 0, io.EOF
	}
	if len(p) == 0 {
		return 0, nil
	}

	if s.offset >= len(s.buf) {
		switch s.state {
		case streamStateStart:
			s.buf = streamRootStart
		case streamStatePages:
			if s.remaining == 0 {
				s.state = streamStateEnd
				s.buf = streamRootEnd
			} else {
				s.buf = streamPage
				s.remaining--
			}
		case streamStateEnd:
			s.state = streamStateDone
			return 0, io.EOF
		}
		s.offset = 0
	}

	n := copy(p, s.buf[s.offset:])
	s.offset += n
	if s.offset >= len(s.buf) {
		switch s.state {
		case streamStateStart:
			s.state = streamStatePages
		case streamStateEnd:
			s.state = streamStateDone
		}
	}
	return n, nil
}

func TestStreamParseConstantMemory(t *testing.T) {
	if testing.Short() {
		t.Skip("heap measurement")
	}
	runStreamParse(t, 5)
	runtime.GC()

	heap10 := measureStreamHeapDelta(t, 10)
	heap1000 := measureStreamHeapDelta(t, 1000)

	const maxDelta = 512 * 1024
	if heap1000 > heap10+maxDelta {
		t.Fatalf("heap usage grew: 10 pages=%d bytes, 1000 pages=%d bytes (delta=%d)",
			heap10, heap1000, heap1000-heap10)
	}
}

func runStreamParse(t *testing.T, count int) {
	t.Helper()

	pages := 0
	err := mwdump.Parse(newPageStream(count), func(*mwdump.Page) error {
		pages++
		return nil
	})
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if pages != count {
		t.Fatalf("Parse() pages = %d, want %d", pages, count)
	}
}

func measureStreamHeapDelta(t *testing.T, count int) uint64 {
	t.Helper()

	runtime.GC()
	var before runtime.MemStats
	runtime.ReadMemStats(&before)

	runStreamParse(t, count)

	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	if after.HeapAlloc < before.HeapAlloc {
		return 0
	}
	return after.HeapAlloc - before.HeapAlloc
}
