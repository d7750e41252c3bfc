// Package datapath implements dotted, jq-like selectors over record
// values: `.outer.inner.2` walks into a map key, then a map key, then an
// array index.
package datapath

import (
	"strconv"
	"strings"

	"github.com/wgoodall01/monch/record"
)

// Segment is one path component: either an array index or a map key.
// Parse only ever produces non-negative indices, matching the original
// grammar (a bare integer segment is always treated as an index).
type Segment struct {
	IsIndex bool
	Index   int
	Key     string
}

// Path is a sequence of segments evaluated left to right by Get.
type Path []Segment

// Parse splits a `.`-separated string into a Path. Empty segments (from a
// leading dot or repeated dots) are dropped, so ".outer..inner" and
// "outer.inner" parse identically.
func Parse(s string) Path {
	parts := strings.Split(s, ".")
	path := make(Path, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		if n, err := strconv.ParseUint(part, 10, 64); err == nil {
			path = append(path, Segment{IsIndex: true, Index: int(n)})
			continue
		}
		path = append(path, Segment{Key: part})
	}
	return path
}

// String renders the path back in dotted form.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		if seg.IsIndex {
			parts[i] = strconv.Itoa(seg.Index)
		} else {
			parts[i] = seg.Key
		}
	}
	return strings.Join(parts, ".")
}

// Get walks v according to p, returning record.Null() if any segment does
// not apply (index out of bounds, key absent, or the current value is a
// scalar). Tags are transparent: Get unwraps them before consulting the
// next segment, regardless of where in the path they appear.
func Get(v record.Value, p Path) record.Value {
	cur := unwrap(v)
	for _, seg := range p {
		cur = unwrap(step(cur, seg))
	}
	return cur
}

// unwrap strips any leading tags, exposing the tagged value underneath.
func unwrap(v record.Value) record.Value {
	for v.Kind == record.KindTag {
		v = *v.TagVal.Inner
	}
	return v
}

func step(v record.Value, seg Segment) record.Value {
	v = unwrap(v)

	switch v.Kind {
	case record.KindArray:
		if !seg.IsIndex || seg.Index < 0 || seg.Index >= len(v.ArrayVal) {
			return record.Null()
		}
		return v.ArrayVal[seg.Index]

	case record.KindMap:
		key := record.Text(seg.Key)
		if seg.IsIndex {
			key = record.Int(int64(seg.Index))
		}
		for _, entry := range v.MapVal {
			if record.Equal(entry.Key, key) {
				return entry.Value
			}
		}
		return record.Null()

	default:
		// Scalars (and Null itself) have no children; any further
		// segment resolves to Null, which lets a miss like
		// `.notfound.whatever` chain without erroring.
		return record.Null()
	}
}
