package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ProcessBatch runs p over inputs with at most limit videos in flight.
// Results keep input order. The first failure cancels the rest.
func ProcessBatch(ctx context.Context, p Pipeline, inputs []VideoInput, limit int) ([]VideoResult, error) {
	if limit < 1 {
		limit = 1
	}
	results := make([]VideoResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, in := range inputs {
		i, in := i, in // per-iteration copies (Go <1.22 loop semantics)
		g.Go(func() error {
			res, err := p.Process(gctx, in)
			if err != nil {
				return fmt.Errorf("video %d (%s): %w", i, in.VideoID, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
