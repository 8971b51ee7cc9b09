package render

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go.fmschema.dev/fmschema/aggregate"
	"go.fmschema.dev/fmschema/directive"
	"go.fmschema.dev/fmschema/value"
)

// Options controls the per-item worker fan-out for x-frontmatter-part
// expansion, mirroring [aggregate.ComputeOptions]: parallelism applies only
// to independent per-document rendering, never to map/array assembly.
type Options struct {
	Parallel   bool
	MaxWorkers int
}

// Renderer instantiates a schema tree into concrete output.
type Renderer struct {
	opts Options
}

// NewRenderer returns a Renderer configured with opts.
func NewRenderer(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Render walks schema and produces the output tree. aggregated is keyed by
// the same dotted NodePath the Walker produces, and holds the value
// computed by the Aggregator for every aggregation-class directive site.
// batch provides per-document context for x-frontmatter-part expansion and
// for the implicit "base" document used by root-level scalar templates
// when the schema declares them outside any x-frontmatter-part node.
func (r *Renderer) Render(ctx context.Context, schema value.Value, batch aggregate.Batch, aggregated map[string]value.Value) (value.Value, error) {
	base := value.Null()
	if len(batch) > 0 {
		base = batch[0].Data
	}

	return r.renderNode(ctx, schema, "", base, batch, aggregated)
}

func (r *Renderer) renderNode(ctx context.Context, node value.Value, path string, docCtx value.Value, batch aggregate.Batch, aggregated map[string]value.Value) (value.Value, error) {
	if err := ctx.Err(); err != nil {
		return value.Value{}, err
	}

	if bound, ok := aggregated[path]; ok {
		return bound.DeepClone(), nil
	}

	switch node.Kind() {
	case value.KindString:
		return renderScalarTemplate(path, node.Str(), docCtx)
	case value.KindArray:
		return r.renderArray(ctx, node, path, docCtx, batch, aggregated)
	case value.KindMap:
		return r.renderMap(ctx, node, path, docCtx, batch, aggregated)
	default:
		return node.DeepClone(), nil
	}
}

func (r *Renderer) renderArray(ctx context.Context, node value.Value, path string, docCtx value.Value, batch aggregate.Batch, aggregated map[string]value.Value) (value.Value, error) {
	items := node.Array()
	out := make([]value.Value, len(items))

	for i, item := range items {
		rendered, err := r.renderNode(ctx, item, path, docCtx, batch, aggregated)
		if err != nil {
			return value.Value{}, err
		}

		out[i] = rendered
	}

	return value.ArrayFrom(out), nil
}

func (r *Renderer) renderMap(ctx context.Context, node value.Value, path string, docCtx value.Value, batch aggregate.Batch, aggregated map[string]value.Value) (value.Value, error) {
	m := node.Map()

	if fm, ok := m.Get(string(directive.KindFrontmatterPart)); ok && fm.Kind() == value.KindBool && fm.Bool() {
		items, _ := m.Get("items")

		return r.renderFrontmatterPart(ctx, items, path, batch, aggregated)
	}

	if props, ok := m.Get("properties"); ok && props.Kind() == value.KindMap {
		return r.renderFields(ctx, props.Map(), path, docCtx, batch, aggregated)
	}

	result := value.NewOrderedMap()

	var rangeErr error

	m.Range(func(key string, child value.Value) bool {
		if directive.IsStructuralKey(key) || directive.IsDirectiveKey(key) {
			return true
		}

		rendered, err := r.renderNode(ctx, child, joinPath(path, key), docCtx, batch, aggregated)
		if err != nil {
			rangeErr = err

			return false
		}

		result.Set(key, rendered)

		return true
	})

	if rangeErr != nil {
		return value.Value{}, rangeErr
	}

	return value.Map(result), nil
}

// renderFrontmatterPart expands items once per document in batch order.
// With Options.Parallel, each document's item is rendered concurrently on
// a bounded worker pool and joined back in batch order -- the only
// synchronization point, per spec.md §5.
func (r *Renderer) renderFrontmatterPart(ctx context.Context, items value.Value, path string, batch aggregate.Batch, aggregated map[string]value.Value) (value.Value, error) {
	out := make([]value.Value, len(batch))

	if !r.opts.Parallel || len(batch) < 2 {
		for i, doc := range batch {
			rendered, err := r.renderNode(ctx, items, path, doc.Data, batch, aggregated)
			if err != nil {
				return value.Value{}, err
			}

			out[i] = rendered
		}

		return value.ArrayFrom(out), nil
	}

	group, groupCtx := errgroup.WithContext(ctx)

	limit := r.opts.MaxWorkers
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	group.SetLimit(limit)

	for i, doc := range batch {
		group.Go(func() error {
			rendered, err := r.renderNode(groupCtx, items, path, doc.Data, batch, aggregated)
			if err != nil {
				return err
			}

			out[i] = rendered

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return value.Value{}, err
	}

	return value.ArrayFrom(out), nil
}

func (r *Renderer) renderFields(ctx context.Context, props *value.OrderedMap, path string, docCtx value.Value, batch aggregate.Batch, aggregated map[string]value.Value) (value.Value, error) {
	result := value.NewOrderedMap()

	for _, key := range props.Keys() {
		child, _ := props.Get(key)

		rendered, err := r.renderNode(ctx, child, joinPath(path, key), docCtx, batch, aggregated)
		if err != nil {
			return value.Value{}, err
		}

		result.Set(key, rendered)
	}

	return value.Map(result), nil
}

func joinPath(parent, key string) string {
	if parent == "" {
		return key
	}

	return parent + "." + key
}
