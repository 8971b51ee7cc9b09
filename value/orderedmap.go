package value

// OrderedMap is a string-keyed map that preserves insertion order. It backs
// [KindMap] values so that template and YAML output reflect the order keys
// were declared in, not Go's randomized map iteration order.
type OrderedMap struct {
	keys   []string
	values map[string]Value
}

// NewOrderedMap returns an empty [OrderedMap].
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]Value)}
}

// Get returns the value stored at key and whether it was present.
func (m *OrderedMap) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}

	v, ok := m.values[key]

	return v, ok
}

// Set stores v at key, appending key to the insertion order the first time
// it is seen. Setting an existing key updates its value without moving it.
func (m *OrderedMap) Set(key string, v Value) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}

	m.values[key] = v
}

// Delete removes key, if present, preserving the order of remaining keys.
func (m *OrderedMap) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}

	delete(m.values, key)

	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)

			break
		}
	}
}

// Keys returns the map's keys in insertion order. The returned slice must
// not be mutated by callers.
func (m *OrderedMap) Keys() []string {
	if m == nil {
		return nil
	}

	return m.keys
}

// Len returns the number of entries in m.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}

	return len(m.keys)
}

// Range calls fn for each entry in insertion order, stopping early if fn
// returns false.
func (m *OrderedMap) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}

	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// DeepClone returns an [OrderedMap] with the same key order and deep-cloned
// values, sharing no mutable storage with m.
func (m *OrderedMap) DeepClone() *OrderedMap {
	clone := NewOrderedMap()
	if m == nil {
		return clone
	}

	clone.keys = append([]string(nil), m.keys...)
	clone.values = make(map[string]Value, len(m.values))

	for k, v := range m.values {
		clone.values[k] = v.DeepClone()
	}

	return clone
}

// Equal reports whether m and other have the same key set and equal values
// for every key. Key order does not affect equality.
func (m *OrderedMap) Equal(other *OrderedMap) bool {
	if m.Len() != other.Len() {
		return false
	}

	equal := true

	m.Range(func(key string, v Value) bool {
		ov, ok := other.Get(key)
		if !ok || !v.Equal(ov) {
			equal = false

			return false
		}

		return true
	})

	return equal
}
