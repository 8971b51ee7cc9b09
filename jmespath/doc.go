// Package jmespath is the thin evaluator interface the core uses for
// x-jmespath-filter. It wraps github.com/jmespath/go-jmespath, converting
// [value.Value] to and from the `any`-typed representation that library's
// public API expects. The core treats the evaluator as a black box;
// go-jmespath's own semantics (projections, filter expressions, the
// standard function library) are never reimplemented here.
package jmespath
