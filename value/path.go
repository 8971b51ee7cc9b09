package value

import (
	"errors"
	"strconv"
	"strings"
)

// ErrPathOutOfRange is returned by [Value.Insert] when a path segment
// addresses an array index that is not already populated.
var ErrPathOutOfRange = errors.New("path index out of range")

// ErrPathInvalid is returned when a path string cannot be parsed.
var ErrPathInvalid = errors.New("invalid path")

// segment is one step of a dotted path: either a map key or an array index.
type segment struct {
	key     string
	index   int
	isIndex bool
}

// parsePath splits a dotted path like "a.b[3].c" into segments. Paths are
// evaluated against Map children and 0-indexed Array children only.
func parsePath(path string) ([]segment, error) {
	if path == "" {
		return nil, nil
	}

	var segments []segment

	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, ErrPathInvalid
		}

		name, indices, err := splitIndices(part)
		if err != nil {
			return nil, err
		}

		if name != "" {
			segments = append(segments, segment{key: name})
		}

		for _, idx := range indices {
			segments = append(segments, segment{index: idx, isIndex: true})
		}
	}

	return segments, nil
}

// splitIndices splits "key[0][1]" into "key" and []int{0, 1}. A bare "[0]"
// part (no leading key name) returns name == "".
func splitIndices(part string) (string, []int, error) {
	name := part

	var indices []int

	for {
		open := strings.IndexByte(name, '[')
		if open < 0 {
			break
		}

		close := strings.IndexByte(name, ']')
		if close < open {
			return "", nil, ErrPathInvalid
		}

		idxStr := name[open+1 : close]

		idx, err := strconv.Atoi(idxStr)
		if err != nil || idx < 0 {
			return "", nil, ErrPathInvalid
		}

		indices = append(indices, idx)
		name = name[:open] + name[close+1:]
	}

	return name, indices, nil
}

// At resolves a dotted path against v. A missing intermediate key, a
// negative or too-large array index, or a path segment applied to a
// scalar yields (Value{}, false) -- it never panics.
func (v Value) At(path string) (Value, bool) {
	segments, err := parsePath(path)
	if err != nil {
		return Value{}, false
	}

	cur := v

	for _, seg := range segments {
		if seg.isIndex {
			if cur.kind != KindArray || seg.index >= len(cur.arr) {
				return Value{}, false
			}

			cur = cur.arr[seg.index]

			continue
		}

		if cur.kind != KindMap {
			return Value{}, false
		}

		next, ok := cur.m.Get(seg.key)
		if !ok {
			return Value{}, false
		}

		cur = next
	}

	return cur, true
}

// Insert writes val at path, creating intermediate maps as needed. Arrays
// are never implicitly grown: writing to "a[5]" when the array at "a" has
// fewer than 6 elements returns [ErrPathOutOfRange].
func (v *Value) Insert(path string, val Value) error {
	segments, err := parsePath(path)
	if err != nil {
		return err
	}

	if len(segments) == 0 {
		*v = val

		return nil
	}

	return insertSegments(v, segments, val)
}

func insertSegments(cur *Value, segments []segment, val Value) error {
	seg := segments[0]
	last := len(segments) == 1

	if seg.isIndex {
		if cur.kind != KindArray {
			return ErrPathOutOfRange
		}

		if seg.index >= len(cur.arr) {
			return ErrPathOutOfRange
		}

		if last {
			cur.arr[seg.index] = val

			return nil
		}

		child := cur.arr[seg.index]
		if err := insertSegments(&child, segments[1:], val); err != nil {
			return err
		}

		cur.arr[seg.index] = child

		return nil
	}

	if cur.kind == KindNull {
		*cur = Map(NewOrderedMap())
	}

	if cur.kind != KindMap {
		return ErrPathInvalid
	}

	if last {
		cur.m.Set(seg.key, val)

		return nil
	}

	child, ok := cur.m.Get(seg.key)
	if !ok {
		child = Map(NewOrderedMap())
	}

	if err := insertSegments(&child, segments[1:], val); err != nil {
		return err
	}

	cur.m.Set(seg.key, child)

	return nil
}
