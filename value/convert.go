package value

import "sort"

// ToAny converts v into the generic Go representation used at the
// boundaries with external libraries: JMESPath evaluation, JSON/YAML/TOML
// encoding, and JSON Schema compilation all operate on `any`. Maps convert
// to map[string]any, losing key order -- callers that must preserve order
// downstream should walk the Value tree directly instead of round-tripping
// through ToAny.
func (v Value) ToAny() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindArray:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.ToAny()
		}

		return out
	case KindMap:
		out := make(map[string]any, v.m.Len())
		v.m.Range(func(key string, item Value) bool {
			out[key] = item.ToAny()

			return true
		})

		return out
	default:
		return nil
	}
}

// FromAny converts a generic Go value (as produced by encoding/json,
// goccy/go-yaml, or JMESPath) into a [Value]. Map key order is not
// recoverable from map[string]any; FromAny sorts keys for determinism. Use
// [FromOrderedAny] when the source already carries ordered keys (e.g. a
// goccy/go-yaml AST walk).
func FromAny(in any) Value {
	switch t := in.(type) {
	case nil:
		return Null()
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		return fromFloat(t)
	case float32:
		return fromFloat(float64(t))
	case string:
		return Str(t)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}

		return ArrayFrom(items)
	case map[string]any:
		return fromUnorderedMap(t)
	default:
		return Null()
	}
}

// fromFloat preserves whole-number floats as KindFloat rather than
// silently truncating to KindInt -- JSON and YAML numeric literals do not
// distinguish "3" from "3.0" at the encoding/json boundary, and collapsing
// them would make round-trip formatting (property 6) lossy.
func fromFloat(f float64) Value {
	return Float(f)
}

// fromUnorderedMap builds a Value from a map[string]any, falling back to
// lexicographic key order since map[string]any carries none.
func fromUnorderedMap(m map[string]any) Value {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	om := NewOrderedMap()
	for _, k := range keys {
		om.Set(k, FromAny(m[k]))
	}

	return Map(om)
}

// KV is an ordered key/value pair. [FromOrderedAny] uses it to rebuild map
// nodes in the source's own declaration order, so a caller that decoded an
// ordered structure (e.g. a YAML document read via an order-preserving
// decoder) never needs this package to depend on that decoder's types.
type KV struct {
	Key   string
	Value any
}

// FromOrderedAny is [FromAny] for a source that tracked key order itself:
// every map level must arrive as []KV rather than map[string]any, with any
// nested maps again represented as []KV inside that slice's Value fields.
func FromOrderedAny(in any) Value {
	switch t := in.(type) {
	case []KV:
		om := NewOrderedMap()
		for _, kv := range t {
			om.Set(kv.Key, FromOrderedAny(kv.Value))
		}

		return Map(om)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromOrderedAny(item)
		}

		return ArrayFrom(items)
	default:
		return FromAny(t)
	}
}
