package pipeline

import (
	"context"

	"go.fmschema.dev/fmschema/aggregate"
	"go.fmschema.dev/fmschema/directive"
	"go.fmschema.dev/fmschema/jmespath"
	"go.fmschema.dev/fmschema/render"
	"go.fmschema.dev/fmschema/value"
)

// State is the orchestrator's position in its fixed run sequence.
type State int

// The pipeline's states, in the order a successful run passes through them.
const (
	StateInit State = iota
	StateWalked
	StateAggregated
	StateRendered
	StateDone
	StateFailed
)

// String names a state, used in diagnostics.
func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateWalked:
		return "walked"
	case StateAggregated:
		return "aggregated"
	case StateRendered:
		return "rendered"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// OutputFormat selects the Formatter the CLI layer uses downstream; the
// core itself is format-agnostic and only threads this value through
// Options for callers that want it alongside the result.
type OutputFormat string

// The three formats spec.md's Output Formatter supports.
const (
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
	FormatTOML OutputFormat = "toml"
)

// Options configures one Run.
type Options struct {
	OutputFormat         OutputFormat
	Indent               int
	Parallel             bool
	MaxWorkers           int
	MemorySoftLimitBytes int
}

// SourceManifest maps a derived field's node path to the source paths of
// the documents that contributed to it.
type SourceManifest map[string][]string

// Result is a completed run's output.
type Result struct {
	Value    value.Value
	Manifest SourceManifest
}

// Pipeline runs the orchestrator sequence once. It is not reusable across
// concurrent calls to Run; construct one per invocation.
type Pipeline struct {
	state State
	err   error
}

// New returns a Pipeline in [StateInit].
func New() *Pipeline {
	return &Pipeline{}
}

// State returns the pipeline's current state.
func (p *Pipeline) State() State {
	return p.state
}

// Run walks schema, aggregates every aggregation-class directive site
// across batch, renders the result, and returns it. On any failure the
// pipeline transitions to [StateFailed] and the first error encountered is
// returned; partial results are discarded.
func (p *Pipeline) Run(ctx context.Context, schema value.Value, batch aggregate.Batch, opts Options) (Result, error) {
	sites, err := directive.NewWalker().Walk(schema)
	if err != nil {
		return p.fail(err)
	}

	p.state = StateWalked

	expressions := jmespath.NewCache()
	aggregator := aggregate.NewAggregator(expressions, opts.MemorySoftLimitBytes)

	aggregated := make(map[string]value.Value, len(sites))
	manifest := make(SourceManifest)

	computeOpts := aggregate.ComputeOptions{Parallel: opts.Parallel, MaxWorkers: opts.MaxWorkers}

	for _, site := range sites {
		if err := ctx.Err(); err != nil {
			return p.fail(err)
		}

		if !aggregate.IsAggregationSite(site) {
			continue
		}

		result, err := aggregator.Compute(ctx, site, batch, computeOpts)
		if err != nil {
			return p.fail(err)
		}

		aggregated[site.NodePath] = result.Value
		if len(result.Sources) > 0 {
			manifest[site.NodePath] = result.Sources
		}
	}

	p.state = StateAggregated

	renderer := render.NewRenderer(render.Options{Parallel: opts.Parallel, MaxWorkers: opts.MaxWorkers})

	rendered, err := renderer.Render(ctx, schema, batch, aggregated)
	if err != nil {
		return p.fail(err)
	}

	p.state = StateRendered
	p.state = StateDone

	return Result{Value: rendered, Manifest: manifest}, nil
}

func (p *Pipeline) fail(err error) (Result, error) {
	p.state = StateFailed
	p.err = err

	return Result{}, err
}

// Err returns the error that moved the pipeline to [StateFailed], or nil.
func (p *Pipeline) Err() error {
	return p.err
}
