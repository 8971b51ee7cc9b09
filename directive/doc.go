// Package directive is the closed registry of recognized x-* schema
// keywords (Component C) and the depth-first walker that locates them in a
// resolved schema tree (Component D). Nothing outside this package invents a
// seventh directive: the Kind enum is the full set, and the registry's
// stage/dependency table is the only place that ordering is declared.
package directive
