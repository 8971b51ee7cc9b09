// Package aggregate implements Component E, the cross-document aggregator.
// It computes the value of every schema node bound to one of
// x-derived-from, x-derived-unique, x-flatten-arrays, x-merge-arrays, or a
// bare x-jmespath-filter, folding a batch of front-matter documents into a
// single node value plus the source paths that contributed to it.
package aggregate
