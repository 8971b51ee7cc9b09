// Package render implements Component F, the template renderer. It walks
// the same schema tree the Walker already visited and instantiates it into
// concrete output: aggregation-bound nodes take their value verbatim from
// the Aggregator's cache, x-frontmatter-part nodes expand one item per
// document in the batch, and every other map node is rendered field by
// field preserving declaration order. Scalar string nodes are treated as
// templates containing zero or more {path} or {path?} placeholders.
package render
