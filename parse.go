package mwdump

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	mwerrors "github.com/jacoelho/mwdump/errors"
	"github.com/jacoelho/mwdump/internal/source"
	"github.com/jacoelho/mwdump/pkg/xmltext"
)

// PageFunc receives each decoded page. The page belongs to the callee.
// Returning ErrStop ends decoding without error; any other error is
// returned unchanged by the decode call.
type PageFunc func(*Page) error

// ErrStop requests a clean early stop from a PageFunc.
var ErrStop = mwerrors.ErrStop

// ParseOptions configures dump decoding.
type ParseOptions struct {
	// Logger receives debug events per page and a completion summary.
	// A nil Logger discards everything.
	Logger *zap.Logger
	// MaxTokenSize caps a single XML token. Zero selects 16 MiB.
	MaxTokenSize int
	// ScratchSize is the initial capacity of the text arena. Zero selects 3 MiB.
	ScratchSize int
	// Headerless starts decoding at the first <page> instead of <mediawiki>.
	Headerless bool
	// ExtendedCodecs lets ParseFile recognize .gz and .zst files.
	ExtendedCodecs bool
}

// Parse decodes a dump from r and calls fn once per page.
func Parse(r io.Reader, fn PageFunc) error {
	return ParseWithOptions(r, fn, ParseOptions{})
}

// ParseWithOptions decodes a dump from r with explicit configuration.
func ParseWithOptions(r io.Reader, fn PageFunc, opts ParseOptions) error {
	if r == nil {
		return fmt.Errorf("parse dump: nil reader")
	}
	limits, err := resolveParseLimits(opts.MaxTokenSize, opts.ScratchSize)
	if err != nil {
		return fmt.Errorf("parse dump: %w", err)
	}
	_, err = decode(xmltext.NewDecoder(r, limits.options()...), fn, "", limits, opts)
	return err
}

// Decode runs the page decoder over an existing token source.
// MaxTokenSize is ignored since tr is already configured.
func Decode(tr TokenReader, fn PageFunc, opts ParseOptions) error {
	if tr == nil {
		return fmt.Errorf("decode dump: nil token reader")
	}
	limits, err := resolveParseLimits(opts.MaxTokenSize, opts.ScratchSize)
	if err != nil {
		return fmt.Errorf("decode dump: %w", err)
	}
	_, err = decode(tr, fn, "", limits, opts)
	return err
}

// ParseFile decodes the dump at path, decompressing by file suffix.
func ParseFile(path string, fn PageFunc) error {
	return ParseFileWithOptions(path, fn, ParseOptions{})
}

// ParseFileWithOptions decodes the dump at path with explicit configuration.
// The file is closed on every return path.
func ParseFileWithOptions(path string, fn PageFunc, opts ParseOptions) (err error) {
	limits, err := resolveParseLimits(opts.MaxTokenSize, opts.ScratchSize)
	if err != nil {
		return fmt.Errorf("parse dump %s: %w", path, err)
	}
	rc, err := source.Open(path, source.Options{ExtendedCodecs: opts.ExtendedCodecs})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := rc.Close(); closeErr != nil && err == nil {
			err = &mwerrors.IOError{Action: "close", Path: path, Err: closeErr}
		}
	}()

	tr := xmltext.NewDecoder(rc, limits.options()...)
	d, err := decode(tr, fn, path, limits, opts)
	if err != nil {
		return err
	}
	d.logger.Info("dump decoded",
		zap.String("path", path),
		zap.Int("pages", d.pages),
		zap.Int("revisions", d.revs),
		zap.Int64("bytes", tr.InputOffset()),
	)
	return nil
}

func decode(tr TokenReader, fn PageFunc, path string, limits parseLimits, opts ParseOptions) (*decoder, error) {
	if fn == nil {
		return nil, fmt.Errorf("decode dump: nil page callback")
	}
	d := newDecoder(tr, fn, path, limits.scratchSize, opts.Logger)
	if err := d.run(opts.Headerless); err != nil {
		if errors.Is(err, ErrStop) {
			d.logger.Debug("decode stopped by callback", zap.Int("pages", d.pages))
			return d, nil
		}
		return d, err
	}
	return d, nil
}
