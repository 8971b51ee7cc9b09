package aggregate

import (
	"strings"

	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/value"
)

// derivedSeg is one step of an x-derived-from path: either a map key or the
// "[]" marker, meaning "iterate the array here and continue on each
// element."
type derivedSeg struct {
	key        string
	isArrayAll bool
}

// parseDerivedPath splits a path like "tags[]" or "a[][].b" into segments.
func parseDerivedPath(nodePath, raw string) ([]derivedSeg, error) {
	if raw == "" {
		return nil, fmerr.InvalidDirectivePayload(nodePath, "x-derived-from", "empty path")
	}

	var segs []derivedSeg

	for _, part := range strings.Split(raw, ".") {
		markers := 0
		for strings.HasSuffix(part, "[]") {
			part = strings.TrimSuffix(part, "[]")
			markers++
		}

		if part == "" && markers == 0 {
			return nil, fmerr.InvalidDirectivePayload(nodePath, "x-derived-from", "empty path segment")
		}

		if part != "" {
			segs = append(segs, derivedSeg{key: part})
		}

		for range markers {
			segs = append(segs, derivedSeg{isArrayAll: true})
		}
	}

	return segs, nil
}

// collectDerived walks segs against v, appending every terminal value
// reached to out. Missing intermediates and "[]" applied to a non-array
// contribute nothing -- never an error, per spec.
func collectDerived(segs []derivedSeg, v value.Value, out *[]value.Value) {
	if len(segs) == 0 {
		*out = append(*out, v)

		return
	}

	seg := segs[0]

	if seg.isArrayAll {
		if v.Kind() != value.KindArray {
			return
		}

		for _, elem := range v.Array() {
			collectDerived(segs[1:], elem, out)
		}

		return
	}

	if v.Kind() != value.KindMap {
		return
	}

	next, ok := v.Map().Get(seg.key)
	if !ok {
		return
	}

	collectDerived(segs[1:], next, out)
}
