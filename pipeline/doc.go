// Package pipeline implements Component G, the orchestrator. It drives the
// fixed sequence Walk -> Aggregate -> Render and exposes the result as a
// single [Value] plus a source manifest, or a structured [fmerr.Error].
// Run is a state machine: Init -> Walked -> Aggregated -> Rendered -> Done,
// with any step able to transition to Failed. There is no retry.
package pipeline
