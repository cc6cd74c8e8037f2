package xmltext

import "testing"

func TestJoinOptionsLaterWins(t *testing.T) {
	opts := JoinOptions(MaxTokenSize(10), TrackLineColumn(false), MaxTokenSize(20))
	resolved := resolveOptions(opts)
	if resolved.maxTokenSize != 20 {
		t.Fatalf("maxTokenSize = %d, want 20", resolved.maxTokenSize)
	}
	if resolved.trackLineColumn {
		t.Fatalf("trackLineColumn = true, want false")
	}
}

func TestResolveOptionsDefaults(t *testing.T) {
	resolved := resolveOptions(Options{})
	if !resolved.trackLineColumn {
		t.Fatalf("trackLineColumn default = false, want true")
	}
	if resolved.bufferSize != defaultBufferSize {
		t.Fatalf("bufferSize = %d, want %d", resolved.bufferSize, defaultBufferSize)
	}
	resolved = resolveOptions(JoinOptions(MaxAttrs(-1), BufferSize(-5), BaseOffset(-3)))
	if resolved.maxAttrs != 0 || resolved.bufferSize != defaultBufferSize || resolved.baseOffset != 0 {
		t.Fatalf("negative values not normalized: %+v", resolved)
	}
}

func TestDecoderOptionsSnapshot(t *testing.T) {
	opts := JoinOptions(MaxAttrs(4))
	dec := NewDecoder(nil, opts)
	if got := dec.Options(); got != opts {
		t.Fatalf("Options() = %+v, want %+v", got, opts)
	}
}
