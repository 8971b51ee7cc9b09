package aggregate

import (
	"context"

	"go.fmschema.dev/fmschema/directive"
	"go.fmschema.dev/fmschema/fmerr"
	"go.fmschema.dev/fmschema/jmespath"
	"go.fmschema.dev/fmschema/value"
)

// Result is one aggregated node: its computed value and the source paths
// that contributed to it, for the source manifest.
type Result struct {
	Value   value.Value
	Sources []string
}

// Aggregator computes aggregation-class directive sites (x-derived-from,
// x-derived-unique, x-flatten-arrays, x-merge-arrays, and a bare
// x-jmespath-filter) across a batch. x-frontmatter-part is not an
// aggregation-class directive; it belongs to the Renderer.
type Aggregator struct {
	expressions          *jmespath.Cache
	memorySoftLimitBytes int
}

// DefaultMemorySoftLimitBytes matches spec.md §4.5's default soft limit.
const DefaultMemorySoftLimitBytes = 64 * 1024 * 1024

// NewAggregator returns an Aggregator sharing expressions for compiled
// JMESPath expressions. memorySoftLimitBytes <= 0 selects
// DefaultMemorySoftLimitBytes.
func NewAggregator(expressions *jmespath.Cache, memorySoftLimitBytes int) *Aggregator {
	if memorySoftLimitBytes <= 0 {
		memorySoftLimitBytes = DefaultMemorySoftLimitBytes
	}

	return &Aggregator{expressions: expressions, memorySoftLimitBytes: memorySoftLimitBytes}
}

// IsAggregationSite reports whether site carries at least one
// aggregation-class directive, i.e. whether it should be routed to
// [Aggregator.Compute] rather than handled directly by the Renderer.
func IsAggregationSite(site directive.Site) bool {
	for _, d := range site.Directives {
		if d.Kind != directive.KindFrontmatterPart {
			return true
		}
	}

	return false
}

// Compute folds batch into site's aggregated value, per spec.md §4.5.
func (a *Aggregator) Compute(ctx context.Context, site directive.Site, batch Batch, opts ComputeOptions) (Result, error) {
	var (
		filter         *jmespath.Compiled
		derivedSegs    []derivedSeg
		hasDerivedFrom bool
		mergeOpts      directive.MergeArraysOptions
		hasMerge       bool
		flattenArrays  bool
		unique         bool
	)

	for _, d := range site.Directives {
		switch d.Kind {
		case directive.KindJMESPathFilter:
			compiled, err := a.expressions.Get(directive.FilterExpression(d))
			if err != nil {
				return Result{}, err
			}

			filter = &compiled
		case directive.KindDerivedFrom:
			segs, err := parseDerivedPath(site.NodePath, directive.DerivedFromPath(d))
			if err != nil {
				return Result{}, err
			}

			hasDerivedFrom = true
			derivedSegs = segs
		case directive.KindMergeArrays:
			hasMerge = true
			mergeOpts = directive.MergeOptions(d)
		case directive.KindFlattenArrays:
			flattenArrays = true
		case directive.KindDerivedUnique:
			unique = true
		case directive.KindFrontmatterPart:
			// Not aggregation-class; the Renderer owns this directive.
		}
	}

	var filteredPerDoc []value.Value

	if filter != nil {
		filtered, err := evaluateFiltered(ctx, *filter, batch, opts)
		if err != nil {
			return Result{}, err
		}

		filteredPerDoc = filtered
	}

	var (
		raw     []value.Value
		sources []string
	)

	switch {
	case hasDerivedFrom:
		for i, doc := range batch {
			base := doc.Data
			if filteredPerDoc != nil {
				base = filteredPerDoc[i]
			}

			before := len(raw)
			collectDerived(derivedSegs, base, &raw)

			if len(raw) > before {
				sources = append(sources, doc.SourcePath)
			}
		}
	case hasMerge:
		for i, doc := range batch {
			docValue, ok := perDocumentMergeValue(site.NodePath, doc, filteredPerDoc, i)
			if !ok {
				continue
			}

			raw = append(raw, docValue)
			sources = append(sources, doc.SourcePath)
		}
	default:
		// Bare x-jmespath-filter, no derive/merge: the node's value IS the
		// filter result (spec.md §4.5), not a per-document collection of
		// it. Splice each document's filtered array directly rather than
		// appending it as one element, or a single-document batch would
		// gain a spurious extra level of nesting.
		for i, doc := range batch {
			if filteredPerDoc == nil {
				continue
			}

			before := len(raw)
			raw = append(raw, filteredPerDoc[i].Array()...)

			if len(raw) > before {
				sources = append(sources, doc.SourcePath)
			}
		}
	}

	if flattenArrays || (hasMerge && mergeOpts.Flatten) {
		raw = spliceOneLevel(raw)
	}

	if unique {
		raw = dedupFirstOccurrence(raw)
	}

	if err := a.checkMemoryBound(site.NodePath, raw); err != nil {
		return Result{}, err
	}

	return Result{Value: value.ArrayFrom(raw), Sources: sources}, nil
}

// perDocumentMergeValue returns doc's contribution under merge semantics: a
// pre-filtered array if x-jmespath-filter is present, else the raw field at
// nodePath. Non-array contributions are wrapped as single-element arrays,
// per spec.md §4.5.
func perDocumentMergeValue(nodePath string, doc Document, filteredPerDoc []value.Value, i int) (value.Value, bool) {
	var (
		v  value.Value
		ok bool
	)

	if filteredPerDoc != nil {
		v, ok = filteredPerDoc[i], true
	} else {
		v, ok = doc.Data.At(nodePath)
	}

	if !ok {
		return value.Value{}, false
	}

	if v.Kind() != value.KindArray {
		v = value.Array(v)
	}

	return v, true
}

// spliceOneLevel replaces every array element in raw with its own elements,
// one level only. Non-array elements pass through unchanged.
func spliceOneLevel(raw []value.Value) []value.Value {
	out := make([]value.Value, 0, len(raw))

	for _, e := range raw {
		if e.Kind() == value.KindArray {
			out = append(out, e.Array()...)

			continue
		}

		out = append(out, e)
	}

	return out
}

// dedupFirstOccurrence keeps the first occurrence of each structurally
// equal value.
func dedupFirstOccurrence(raw []value.Value) []value.Value {
	out := make([]value.Value, 0, len(raw))

	for _, v := range raw {
		seen := false

		for _, existing := range out {
			if existing.Equal(v) {
				seen = true

				break
			}
		}

		if !seen {
			out = append(out, v)
		}
	}

	return out
}

// checkMemoryBound estimates raw's encoded size and rejects it with
// [fmerr.ErrMemoryBoundsViolation] if it exceeds the configured soft limit.
func (a *Aggregator) checkMemoryBound(nodePath string, raw []value.Value) error {
	if estimateSize(value.ArrayFrom(raw)) > a.memorySoftLimitBytes {
		return fmerr.MemoryBoundsViolation(nodePath, a.memorySoftLimitBytes)
	}

	return nil
}

// estimateSize is a crude, conservative estimate of v's encoded size in
// bytes -- good enough to enforce a soft limit, not an exact byte count.
func estimateSize(v value.Value) int {
	switch v.Kind() {
	case value.KindString:
		return len(v.Str()) + 2
	case value.KindArray:
		size := 2
		for _, e := range v.Array() {
			size += estimateSize(e) + 1
		}

		return size
	case value.KindMap:
		size := 2

		v.Map().Range(func(key string, child value.Value) bool {
			size += len(key) + 3 + estimateSize(child)

			return true
		})

		return size
	default:
		return 8
	}
}
