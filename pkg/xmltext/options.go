package xmltext

// Options holds decoder configuration values.
// The zero value means no overrides.
type Options struct {
	trackLineColumn bool
	maxAttrs        int
	maxTokenSize    int
	bufferSize      int
	baseOffset      int64

	trackLineColumnSet bool
	maxAttrsSet        bool
	maxTokenSizeSet    bool
	bufferSizeSet      bool
	baseOffsetSet      bool
}

// JoinOptions combines multiple option sets into one in declaration order.
// Later options override earlier ones when set.
func JoinOptions(srcs ...Options) Options {
	var merged Options
	for _, src := range srcs {
		merged.merge(src)
	}
	return merged
}

func (opts *Options) merge(src Options) {
	if src.trackLineColumnSet {
		opts.trackLineColumn = src.trackLineColumn
		opts.trackLineColumnSet = true
	}
	if src.maxAttrsSet {
		opts.maxAttrs = src.maxAttrs
		opts.maxAttrsSet = true
	}
	if src.maxTokenSizeSet {
		opts.maxTokenSize = src.maxTokenSize
		opts.maxTokenSizeSet = true
	}
	if src.bufferSizeSet {
		opts.bufferSize = src.bufferSize
		opts.bufferSizeSet = true
	}
	if src.baseOffsetSet {
		opts.baseOffset = src.baseOffset
		opts.baseOffsetSet = true
	}
}

// TrackLineColumn controls whether line and column tracking is enabled.
func TrackLineColumn(value bool) Options {
	return Options{trackLineColumn: value, trackLineColumnSet: true}
}

// MaxAttrs limits the number of attributes on a start element.
func MaxAttrs(value int) Options {
	return Options{maxAttrs: value, maxAttrsSet: true}
}

// MaxTokenSize limits the maximum size of a single token in bytes.
// Tokens exactly MaxTokenSize bytes long are allowed.
func MaxTokenSize(value int) Options {
	return Options{maxTokenSize: value, maxTokenSizeSet: true}
}

// BufferSize sets the initial read buffer capacity.
func BufferSize(value int) Options {
	return Options{bufferSize: value, bufferSizeSet: true}
}

// BaseOffset sets the offset reported for the first input byte.
// It lets callers decoding a window of a larger buffer report absolute offsets.
func BaseOffset(value int64) Options {
	return Options{baseOffset: value, baseOffsetSet: true}
}

type decoderOptions struct {
	maxAttrs        int
	maxTokenSize    int
	bufferSize      int
	baseOffset      int64
	trackLineColumn bool
}

func resolveOptions(opts Options) decoderOptions {
	resolved := decoderOptions{
		trackLineColumn: true,
		bufferSize:      defaultBufferSize,
	}
	if opts.trackLineColumnSet {
		resolved.trackLineColumn = opts.trackLineColumn
	}
	if opts.maxAttrsSet {
		resolved.maxAttrs = normalizeLimit(opts.maxAttrs)
	}
	if opts.maxTokenSizeSet {
		resolved.maxTokenSize = normalizeLimit(opts.maxTokenSize)
	}
	if opts.bufferSizeSet && opts.bufferSize > 0 {
		resolved.bufferSize = opts.bufferSize
	}
	if opts.baseOffsetSet && opts.baseOffset > 0 {
		resolved.baseOffset = opts.baseOffset
	}
	return resolved
}

func normalizeLimit(value int) int {
	if value < 0 {
		return 0
	}
	return value
}
