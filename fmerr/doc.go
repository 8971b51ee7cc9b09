// Package fmerr defines the closed error taxonomy shared by every pipeline
// component. Each failure category has a sentinel error for [errors.Is]
// matching plus a constructor that attaches the contextual payload (node
// path, expression, expected/got types) the CLI reports under --verbose.
//
// The pipeline is all-or-nothing: the [Error] the Orchestrator returns is
// always the first error encountered, never an aggregate of several.
package fmerr
