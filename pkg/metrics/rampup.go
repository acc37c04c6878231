package metrics

import (
	"context"
	"math"
	"time"

	"github.com/modelgrade/mgrade/pkg/score"
)

// RampUp scores how quickly a developer can get going with the model,
// using the download count as a popularity proxy: clamp(log10(dl)/10).
// A model with 1e5 downloads lands at 0.5. Errors absorb to 0.0.
func RampUp(hub *Hub) score.Func {
	return func(ctx context.Context, s score.Subject) (score.Value, error) {
		start := time.Now()

		id, err := RepoID(s.ModelURL)
		if err != nil {
			return score.Scalar(0.0, msSince(start)), nil
		}

		m, err := hub.Model(ctx, id)
		if err != nil || m.Downloads <= 0 {
			return score.Scalar(0.0, msSince(start)), nil
		}

		raw := math.Log10(float64(m.Downloads)) / 10.0
		return score.Scalar(clamp01(raw), msSince(start)), nil
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
