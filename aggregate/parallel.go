package aggregate

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go.fmschema.dev/fmschema/jmespath"
	"go.fmschema.dev/fmschema/value"
)

// ComputeOptions controls the worker fan-out described in spec.md §5:
// parallelism applies only to the same-expression JMESPath evaluation
// across a batch's documents, never to the cross-document fold itself.
type ComputeOptions struct {
	Parallel   bool
	MaxWorkers int
}

// evaluateFiltered runs filter against every document in batch, honoring
// ctx cancellation. With opts.Parallel it fans out across a bounded
// errgroup; the result slice is always populated in batch order regardless
// of evaluation order, so output is identical either way.
func evaluateFiltered(ctx context.Context, filter jmespath.Compiled, batch Batch, opts ComputeOptions) ([]value.Value, error) {
	out := make([]value.Value, len(batch))

	if !opts.Parallel || len(batch) < 2 {
		for i, doc := range batch {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			filtered, err := filter.EvaluateArray(doc.Data)
			if err != nil {
				return nil, err
			}

			out[i] = filtered
		}

		return out, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)

	limit := opts.MaxWorkers
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	group.SetLimit(limit)

	for i, doc := range batch {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			filtered, err := filter.EvaluateArray(doc.Data)
			if err != nil {
				return err
			}

			out[i] = filtered

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}
