package lineage

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/modelgrade/mgrade/pkg/score"
)

// ancestorConcurrency bounds how many ancestors are graded at once;
// each grading pass already fans out into ~10 concurrent metric calls.
const ancestorConcurrency = 4

// TreeScore grades every ancestor of the subject's model with the given
// engine and averages their net scores. The subject's own model is not
// included; a model with no known ancestors scores 0.0. The code and
// dataset URLs are reused for each ancestor.
func TreeScore(ctx context.Context, eng *score.Engine, r *Resolver, s score.Subject) (float64, int64) {
	start := time.Now()

	ancestors := r.Graph(ctx, s.ModelURL)
	if len(ancestors) > 0 {
		ancestors = ancestors[:len(ancestors)-1]
	}
	if len(ancestors) == 0 {
		return 0.0, time.Since(start).Milliseconds()
	}

	var (
		mu     sync.Mutex
		scores []float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ancestorConcurrency)
	for _, ancestorURL := range ancestors {
		g.Go(func() error {
			res := eng.Run(gctx, score.Subject{
				ModelURL:   ancestorURL,
				CodeURL:    s.CodeURL,
				DatasetURL: s.DatasetURL,
			})
			mu.Lock()
			scores = append(scores, res.NetScore)
			mu.Unlock()
			return nil
		})
	}
	// Engine runs never fail, so Wait only synchronizes.
	_ = g.Wait()

	var sum float64
	for _, v := range scores {
		sum += v
	}
	return sum / float64(len(scores)), time.Since(start).Milliseconds()
}
