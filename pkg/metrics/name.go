package metrics

import (
	"context"
	"time"

	"github.com/modelgrade/mgrade/pkg/score"
)

// Name extracts the model name (the last repo path segment) from the
// subject's model URL. Landing pages and unparseable URLs yield an empty
// name; this metric never fails.
func Name() score.Func {
	return func(_ context.Context, s score.Subject) (score.Value, error) {
		start := time.Now()

		var name string
		if parts := repoParts(s.ModelURL); len(parts) > 0 {
			name = parts[len(parts)-1]
		}

		return score.Text(name, msSince(start)), nil
	}
}

// Category reports the subject's category. Everything graded through
// this pipeline is a model.
func Category() score.Func {
	return func(_ context.Context, _ score.Subject) (score.Value, error) {
		start := time.Now()
		return score.Text(score.DefaultCategory, msSince(start)), nil
	}
}

func msSince(t time.Time) int64 {
	return time.Since(t).Milliseconds()
}
