package directive

import (
	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/value"
)

// Site is one schema node carrying at least one directive, located at
// NodePath (a dotted path, matching [value.Value.At] syntax).
type Site struct {
	NodePath   string
	Node       value.Value
	Directives []Directive
}

// Walker performs the depth-first traversal described in spec §4.3: it
// enumerates every node in a resolved schema tree that carries a
// recognized x-* keyword, in document (key) order.
type Walker struct{}

// NewWalker returns a stateless Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// structuralKeys are JSON Schema vocabulary the Walker never treats as a
// nested field when falling back to flat traversal (see walk).
var structuralKeys = map[string]bool{
	"type": true, "properties": true, "items": true, "$ref": true,
	"$defs": true, "definitions": true, "required": true,
	"additionalProperties": true, "description": true, "title": true,
	"default": true,
}

func isDirectiveKey(key string) bool {
	_, ok := registry[Kind(key)]
	return ok
}

// IsStructuralKey reports whether key is JSON Schema vocabulary rather than
// a nested field name, using the same table the Walker uses internally.
// The Renderer uses this to walk the same schema tree consistently.
func IsStructuralKey(key string) bool {
	return structuralKeys[key]
}

// IsDirectiveKey reports whether key names one of the six recognized
// directives.
func IsDirectiveKey(key string) bool {
	return isDirectiveKey(key)
}

// Walk traverses schema depth-first and returns every directive [Site], in
// document order. It returns [fmerr.ErrDirectiveConflict] if the same node
// carries both x-derived-from and x-merge-arrays, or if the resolved tree
// contains a structural cycle -- the latter should never trigger given a
// genuinely $ref-resolved schema (see schemaref), and exists only as
// defense in depth.
func (w *Walker) Walk(schema value.Value) ([]Site, error) {
	var sites []Site

	ancestors := make(map[*value.OrderedMap]bool)

	if err := w.walk(schema, "", ancestors, &sites); err != nil {
		return nil, err
	}

	return sites, nil
}

func (w *Walker) walk(node value.Value, path string, ancestors map[*value.OrderedMap]bool, sites *[]Site) error {
	if node.Kind() != value.KindMap {
		return nil
	}

	m := node.Map()
	if ancestors[m] {
		return fmerr.DirectiveConflict(path, "cyclic schema reference")
	}

	ancestors[m] = true
	defer delete(ancestors, m)

	directives, err := extractDirectives(node, path)
	if err != nil {
		return err
	}

	if len(directives) > 0 {
		*sites = append(*sites, Site{NodePath: path, Node: node, Directives: directives})
	}

	if props, ok := node.At("properties"); ok && props.Kind() == value.KindMap {
		for _, key := range props.Map().Keys() {
			child, _ := props.Map().Get(key)
			if err := w.walk(child, joinPath(path, key), ancestors, sites); err != nil {
				return err
			}
		}
	} else if len(directives) == 0 {
		var rangeErr error

		m.Range(func(key string, child value.Value) bool {
			if structuralKeys[key] || isDirectiveKey(key) {
				return true
			}

			rangeErr = w.walk(child, joinPath(path, key), ancestors, sites)

			return rangeErr == nil
		})

		if rangeErr != nil {
			return rangeErr
		}
	}

	if items, ok := node.At("items"); ok {
		if err := w.walk(items, path, ancestors, sites); err != nil {
			return err
		}
	}

	return nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + "." + key
}

// extractDirectives scans node's own keys for recognized x-* directives, in
// stage order, and validates the combination found.
func extractDirectives(node value.Value, path string) ([]Directive, error) {
	m := node.Map()
	if m == nil {
		return nil, nil
	}

	var directives []Directive

	present := make(map[Kind]Directive)

	for _, kind := range allKinds {
		payload, ok := m.Get(string(kind))
		if !ok {
			continue
		}

		d := Directive{Kind: kind, Payload: payload}
		directives = append(directives, d)
		present[kind] = d
	}

	if len(directives) == 0 {
		return nil, nil
	}

	if _, hasDerived := present[KindDerivedFrom]; hasDerived {
		if _, hasMerge := present[KindMergeArrays]; hasMerge {
			return nil, fmerr.DirectiveConflict(path, "x-derived-from and x-merge-arrays on same node")
		}
	}

	if _, hasUnique := present[KindDerivedUnique]; hasUnique {
		if _, hasDerived := present[KindDerivedFrom]; !hasDerived {
			return nil, fmerr.DirectiveDependencyMissing(path, string(KindDerivedUnique), string(KindDerivedFrom))
		}
	}

	if d, hasPart := present[KindFrontmatterPart]; hasPart {
		if _, hasItems := m.Get("items"); !hasItems {
			return nil, fmerr.InvalidDirectivePayload(path, string(d.Kind), "missing items template")
		}
	}

	if err := validatePayloadKinds(path, present); err != nil {
		return nil, err
	}

	return directives, nil
}

func validatePayloadKinds(path string, present map[Kind]Directive) error {
	if d, ok := present[KindJMESPathFilter]; ok && d.Payload.Kind() != value.KindString {
		return fmerr.InvalidDirectivePayload(path, string(d.Kind), "expected a string expression")
	}

	if d, ok := present[KindDerivedFrom]; ok && d.Payload.Kind() != value.KindString {
		return fmerr.InvalidDirectivePayload(path, string(d.Kind), "expected a string path")
	}

	if d, ok := present[KindMergeArrays]; ok {
		if d.Payload.Kind() != value.KindBool && d.Payload.Kind() != value.KindMap {
			return fmerr.InvalidDirectivePayload(path, string(d.Kind), "expected a bool or {flatten: bool}")
		}
	}

	return nil
}
