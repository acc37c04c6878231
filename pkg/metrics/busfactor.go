package metrics

import (
	"context"
	"math"
	"time"

	"github.com/modelgrade/mgrade/pkg/score"
)

// BusFactor estimates how resilient a model repo is to losing its top
// contributors. Commit authorship entropy (normalized by the maximum
// possible entropy) is combined with log2-scaled download and file
// counts, clamped to [0,1]. All failure paths absorb to 0.0 with
// measured latency.
func BusFactor(hub *Hub) score.Func {
	return func(ctx context.Context, s score.Subject) (score.Value, error) {
		start := time.Now()

		if s.ModelURL == "" {
			return score.Scalar(0.0, 0), nil
		}

		id, err := RepoID(s.ModelURL)
		if err != nil {
			return score.Scalar(0.0, 0), nil
		}

		commits, err := hub.Commits(ctx, id)
		if err != nil || len(commits) == 0 {
			return score.Scalar(0.0, msSince(start)), nil
		}

		contributions := make(map[string]int)
		total := 0
		for _, c := range commits {
			for _, a := range c.Authors {
				contributions[a.User]++
				total++
			}
		}

		if len(contributions) <= 1 || total == 0 {
			return score.Scalar(0.0, msSince(start)), nil
		}

		entropy := 0.0
		for _, count := range contributions {
			p := float64(count) / float64(total)
			entropy -= p * math.Log2(p)
		}
		maxEntropy := math.Log2(float64(len(contributions)))

		busFactor := 0.0
		if maxEntropy > 0 {
			busFactor = entropy / maxEntropy
		}

		// Download and file counts sweeten the score for widely used,
		// well-populated repos.
		var downloads, files float64
		if m, err := hub.Model(ctx, id); err == nil {
			if m.Downloads > 0 {
				downloads = math.Log2(float64(m.Downloads) + 1)
			}
			if n := len(m.Siblings); n > 0 {
				files = math.Log2(float64(n) + 1)
			}
		}

		combined := clamp01((busFactor + downloads + files) / 2.5)

		return score.Scalar(combined, msSince(start)), nil
	}
}
