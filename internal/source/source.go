// Package source opens dump files and selects a decompressor from the file name.
package source

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/ulikunitz/xz/lzma"

	mwerrors "github.com/jacoelho/mwdump/errors"
)

// Codec is the compression applied to a dump file.
type Codec uint8

const (
	Raw Codec = iota
	Bzip2
	LZMA
	Gzip
	Zstd
)

func (c Codec) String() string {
	switch c {
	case Raw:
		return "raw"
	case Bzip2:
		return "bzip2"
	case LZMA:
		return "lzma"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// Options configures codec selection.
type Options struct {
	// ExtendedCodecs recognizes .gz and .zst in addition to .bz2 and .7z.
	ExtendedCodecs bool
}

const peekSize = 4

var (
	bzip2Magic = []byte("BZh")
	zstdMagic  = []byte{0x28, 0xB5, 0x2F, 0xFD}

	errBadMagic = errors.New("bad magic number")
)

// CodecFor selects the codec from the final suffix of path.
// A .7z suffix selects a bare LZMA stream, not a 7z archive container.
func CodecFor(path string, opts Options) Codec {
	switch filepath.Ext(path) {
	case ".bz2":
		return Bzip2
	case ".7z":
		return LZMA
	case ".gz":
		if opts.ExtendedCodecs {
			return Gzip
		}
	case ".zst":
		if opts.ExtendedCodecs {
			return Zstd
		}
	}
	return Raw
}

// Open opens path and wraps it in the decompressor selected by CodecFor.
// Decompressor setup runs before Open returns, so a corrupt header is
// reported here rather than on the first read.
func Open(path string, opts Options) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &mwerrors.IOError{Action: "open", Path: path, Err: err}
	}
	rc, err := Wrap(f, path, CodecFor(path, opts))
	if err != nil {
		if closeErr := f.Close(); closeErr != nil {
			return nil, errors.Join(err, &mwerrors.IOError{Action: "close", Path: path, Err: closeErr})
		}
		return nil, err
	}
	return rc, nil
}

// Wrap layers codec over rc. Closing the result closes rc.
// path is only used to label errors.
func Wrap(rc io.ReadCloser, path string, codec Codec) (io.ReadCloser, error) {
	if rc == nil {
		return nil, fmt.Errorf("wrap %s: nil reader", path)
	}
	if codec == Raw {
		return rc, nil
	}
	br := bufio.NewReader(rc)
	switch codec {
	case Bzip2:
		if err := checkMagic(br, path, func(head []byte) bool {
			return len(head) == peekSize && bytes.HasPrefix(head, bzip2Magic) && head[3] >= '1' && head[3] <= '9'
		}); err != nil {
			return nil, err
		}
		return &readCloser{Reader: bzip2.NewReader(br), closers: []io.Closer{rc}}, nil
	case LZMA:
		zr, err := lzma.NewReader(br)
		if err != nil {
			return nil, &mwerrors.DecompressionError{Path: path, Err: err}
		}
		return &readCloser{Reader: zr, closers: []io.Closer{rc}}, nil
	case Gzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, &mwerrors.DecompressionError{Path: path, Err: err}
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, rc}}, nil
	case Zstd:
		if err := checkMagic(br, path, func(head []byte) bool {
			return bytes.Equal(head, zstdMagic)
		}); err != nil {
			return nil, err
		}
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, &mwerrors.DecompressionError{Path: path, Err: err}
		}
		zrc := zr.IOReadCloser()
		return &readCloser{Reader: zrc, closers: []io.Closer{zrc, rc}}, nil
	default:
		return nil, &mwerrors.DecompressionError{Path: path, Err: fmt.Errorf("unsupported codec %s", codec)}
	}
}

func checkMagic(br *bufio.Reader, path string, valid func([]byte) bool) error {
	head, err := br.Peek(peekSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return &mwerrors.DecompressionError{Path: path, Err: err}
	}
	if !valid(head) {
		return &mwerrors.DecompressionError{Path: path, Err: errBadMagic}
	}
	return nil
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

// Close closes every layer and reports all failures.
func (r *readCloser) Close() error {
	var errs []error
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
