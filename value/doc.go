// Package value implements the typed tree that flows through every stage of
// the schema-directed transformation pipeline: parsed front-matter, resolved
// schema nodes, aggregated results, and rendered output all share this one
// representation.
//
// A [Value] is a tagged sum over null, bool, int, float, string, array, and
// map. Map key order is preserved end to end -- insertion order, not sorted
// order -- because it determines YAML and template output. Equality is
// structural: two arrays are equal only if they have the same length and
// every element is equal in order; two maps are equal if they have the same
// key set and every value is equal, regardless of key order.
//
// [Value] is itself a small value type (safe to copy), but [Array] and [Map]
// share their backing storage across copies. Use [Value.DeepClone] whenever
// a derivation must not be allowed to observe later mutation of its inputs.
package value
