package score

import (
	"math"
	"time"
)

// Weights maps metric names to their contribution in the net score.
// The table is injected into the reducer so tests and deployments can
// substitute alternates; entries must sum to <= 1.0.
type Weights map[string]float64

// DefaultWeights returns the standard weight table.
//
// Note: size_score carries a weight here but the engine never feeds
// size_score into the reducer (it is not a scalar), so that 0.10 always
// multiplies the 0.0 default and the effective net score ceiling is 0.90.
// Intentionally left as observed; see DESIGN.md.
func DefaultWeights() Weights {
	return Weights{
		"license":                0.18,
		"ramp_up_time":           0.15,
		"dataset_and_code_score": 0.15,
		"bus_factor":             0.12,
		"performance_claims":     0.10,
		"dataset_quality":        0.10,
		"code_quality":           0.10,
		"size_score":             0.10,
	}
}

// Reduce computes the weighted net score over the given metric values.
// Each value is clamped to [0,1] before weighting, which absorbs the
// ErrorValue sentinel as 0. Metrics absent from the input contribute 0.
// The final sum is clamped to [0,1] and rounded to 2 decimal places.
//
// The returned latency measures only the reduction itself; the engine
// discards it in favor of the whole pass's wall-clock time.
func (w Weights) Reduce(metrics map[string]float64) (float64, int64) {
	start := time.Now()

	var net float64
	for name, weight := range w {
		net += weight * clamp01(metrics[name])
	}
	net = math.Round(clamp01(net)*100) / 100

	return net, time.Since(start).Milliseconds()
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
