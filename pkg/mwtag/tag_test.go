package mwtag

import "testing"

func TestResolveRoundTrip(t *testing.T) {
	all := All()
	if len(all) != 47 {
		t.Fatalf("len(All()) = %d, want 47", len(all))
	}
	seen := make(map[string]Tag, len(all))
	for _, tag := range all {
		name := tag.String()
		if prev, dup := seen[name]; dup {
			t.Fatalf("name %q shared by %d and %d", name, prev, tag)
		}
		seen[name] = tag
		got, ok := Resolve([]byte(name))
		if !ok || got != tag {
			t.Fatalf("Resolve(%q) = %v, %v; want %v, true", name, got, ok, tag)
		}
	}
}

func TestResolveUnrecognized(t *testing.T) {
	tests := []string{"", "Page", "threadid", "THREADID", "revisions", "text ", "xml:space"}
	for _, name := range tests {
		if tag, ok := Resolve([]byte(name)); ok {
			t.Fatalf("Resolve(%q) = %v, want unrecognized", name, tag)
		}
	}
}

func TestResolveCaseSensitiveLegacyNames(t *testing.T) {
	tag, ok := Resolve([]byte("ThreadID"))
	if !ok || tag != ThreadID {
		t.Fatalf("Resolve(ThreadID) = %v, %v", tag, ok)
	}
}

func TestStringUnknown(t *testing.T) {
	if got := Unknown.String(); got != "unknown" {
		t.Fatalf("Unknown.String() = %q, want unknown", got)
	}
	if got := Tag(200).String(); got != "unknown" {
		t.Fatalf("Tag(200).String() = %q, want unknown", got)
	}
}
