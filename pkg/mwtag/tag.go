// Package mwtag is the closed registry of names used by the revision export schema.
package mwtag

var byName = func() map[string]Tag {
	m := make(map[string]Tag, len(names)-1)
	for tag := Unknown + 1; int(tag) < len(names); tag++ {
		m[names[tag]] = tag
	}
	return m
}()

// Resolve maps a raw name to its Tag. Matching is exact and case-sensitive.
// ok is false when the name is not part of the schema.
func Resolve(raw []byte) (tag Tag, ok bool) {
	tag, ok = byName[string(raw)]
	return tag, ok
}

// String returns the canonical name of the tag.
func (t Tag) String() string {
	if int(t) >= len(names) || t == Unknown {
		return "unknown"
	}
	return names[t]
}

// All returns every registered tag in declaration order.
func All() []Tag {
	out := make([]Tag, 0, len(names)-1)
	for tag := Unknown + 1; int(tag) < len(names); tag++ {
		out = append(out, tag)
	}
	return out
}
