package value

import (
	"fmt"
	"strconv"
)

// Kind identifies which alternative of the [Value] sum type is populated.
type Kind int

// The closed set of Value alternatives.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindMap
)

// String returns the kind's lowercase name, as used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Value is a tagged union over the data model described in package value's
// doc comment. The zero Value is [Null].
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	m    *OrderedMap
}

// Null returns the null Value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Int returns an integer Value.
func Int(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// Float returns a floating point Value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Str returns a string Value.
func Str(s string) Value {
	return Value{kind: KindString, s: s}
}

// Array returns an array Value wrapping items. The slice is retained, not
// copied; callers that need isolation should clone first.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// ArrayFrom returns an array Value wrapping the given slice without copying.
func ArrayFrom(items []Value) Value {
	return Value{kind: KindArray, arr: items}
}

// Map returns a map Value wrapping m. The map is retained, not copied.
func Map(m *OrderedMap) Value {
	if m == nil {
		m = NewOrderedMap()
	}

	return Value{kind: KindMap, m: m}
}

// Kind returns v's alternative.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is [Null].
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns v's boolean payload. Only meaningful when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns v's integer payload. Only meaningful when Kind() == KindInt.
func (v Value) Int() int64 { return v.i }

// Float returns v's float payload. Only meaningful when Kind() == KindFloat.
func (v Value) Float() float64 { return v.f }

// Str returns v's string payload. Only meaningful when Kind() == KindString.
func (v Value) Str() string { return v.s }

// Array returns v's array payload, or nil if v is not an array.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}

	return v.arr
}

// Map returns v's map payload, or nil if v is not a map.
func (v Value) Map() *OrderedMap {
	if v.kind != KindMap {
		return nil
	}

	return v.m
}

// DeepClone returns a Value that shares no mutable storage with v.
func (v Value) DeepClone() Value {
	switch v.kind {
	case KindArray:
		cloned := make([]Value, len(v.arr))
		for i, item := range v.arr {
			cloned[i] = item.DeepClone()
		}

		return ArrayFrom(cloned)
	case KindMap:
		return Map(v.m.DeepClone())
	default:
		return v
	}
}

// Equal reports whether v and other are structurally equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		// Int/Float are distinct kinds and never compare equal to each
		// other, matching JSON Schema's type distinction (I4 dedup is by
		// structural equality within one derived array, which is always
		// homogeneous in practice, but heterogeneous comparisons must still
		// be well-defined and stable).
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}

		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}

		return true
	case KindMap:
		return v.m.Equal(other.m)
	default:
		return false
	}
}

// CoerceString renders v as a template-placeholder substitution string,
// following the scalar coercion rules: bool -> "true"/"false", int/float ->
// canonical decimal, null -> "". Arrays and maps have no defined coercion;
// callers must reject them before calling CoerceString.
func (v Value) CoerceString() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		if v.b {
			return "true"
		}

		return "false"
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return fmt.Sprintf("%v", v.kind)
	}
}

// IsScalar reports whether v is a null, bool, int, float, or string.
func (v Value) IsScalar() bool {
	switch v.kind {
	case KindArray, KindMap:
		return false
	default:
		return true
	}
}
