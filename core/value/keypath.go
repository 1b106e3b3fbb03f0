package value

import (
	"strconv"
	"strings"
)

// Segment is one element of a KeyPath: either a named key or an integer
// position within a sequence slot.
type Segment struct {
	Name    string
	Index   int
	IsIndex bool
}

// NameSegment builds a named key-path segment.
func NameSegment(name string) Segment {
	return Segment{Name: name}
}

// IndexSegment builds an integer key-path segment.
func IndexSegment(i int) Segment {
	return Segment{Index: i, IsIndex: true}
}

// String renders a single segment the way it appears in a dotted path.
func (s Segment) String() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Name
}

// KeyPath is an ordered sequence of segments addressing a location in a
// nested input record, e.g. [:circles, 0, :radius].
type KeyPath []Segment

// NewKeyPath builds a KeyPath from plain names, for the common all-name case.
func NewKeyPath(names ...string) KeyPath {
	segs := make(KeyPath, len(names))
	for i, n := range names {
		segs[i] = NameSegment(n)
	}
	return segs
}

// String renders the path as "a.b.2.c", a stable canonical form used as a
// map key for bad-input aggregation and for test fixtures.
func (p KeyPath) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = s.String()
	}
	return strings.Join(parts, ".")
}

// HasPrefix reports whether p starts with the given prefix path.
func (p KeyPath) HasPrefix(prefix KeyPath) bool {
	if len(prefix) > len(p) {
		return false
	}
	for i, s := range prefix {
		if s.IsIndex != p[i].IsIndex {
			return false
		}
		if s.IsIndex {
			continue // any integer position matches a sequence slot
		}
		if s.Name != p[i].Name {
			return false
		}
	}
	return true
}

// Append returns a new KeyPath with segs appended, leaving p untouched.
func (p KeyPath) Append(segs ...Segment) KeyPath {
	out := make(KeyPath, 0, len(p)+len(segs))
	out = append(out, p...)
	out = append(out, segs...)
	return out
}

// Head returns the first segment and the remaining tail.
func (p KeyPath) Head() (Segment, KeyPath, bool) {
	if len(p) == 0 {
		return Segment{}, nil, false
	}
	return p[0], p[1:], true
}
