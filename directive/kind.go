package directive

// Kind identifies one of the six recognized x-* schema keywords. It is a
// closed tagged variant, not an open registry: adding a seventh directive
// means editing this file, not registering a plugin.
type Kind string

// The closed set of recognized directives, named after their schema
// keyword.
const (
	KindJMESPathFilter  Kind = "x-jmespath-filter"
	KindDerivedFrom     Kind = "x-derived-from"
	KindDerivedUnique   Kind = "x-derived-unique"
	KindFlattenArrays   Kind = "x-flatten-arrays"
	KindMergeArrays     Kind = "x-merge-arrays"
	KindFrontmatterPart Kind = "x-frontmatter-part"
)

// allKinds is the declaration order used to break stage ties and to drive
// the node scan in [Walker.Walk].
var allKinds = []Kind{
	KindJMESPathFilter,
	KindDerivedFrom,
	KindDerivedUnique,
	KindFlattenArrays,
	KindMergeArrays,
	KindFrontmatterPart,
}

// registryEntry is the per-directive metadata the Walker consults: its
// execution stage and, for validation purposes, which other directive (if
// any) it requires to be present on the same node.
type registryEntry struct {
	stage        int
	requires     Kind // "" if no hard same-node requirement
	requiresSoft Kind // "" if no soft (order-only) dependency
}

var registry = map[Kind]registryEntry{
	KindJMESPathFilter:  {stage: 1},
	KindDerivedFrom:     {stage: 2, requiresSoft: KindJMESPathFilter},
	KindDerivedUnique:   {stage: 3, requires: KindDerivedFrom},
	KindFlattenArrays:   {stage: 3, requiresSoft: KindDerivedFrom},
	KindMergeArrays:     {stage: 3},
	KindFrontmatterPart: {stage: 4},
}

// Stage returns k's execution stage (lower runs first). Ties are broken by
// declaration order in allKinds.
func (k Kind) Stage() int {
	return registry[k].stage
}

// String returns the directive's schema keyword, e.g. "x-derived-from".
func (k Kind) String() string {
	return string(k)
}
