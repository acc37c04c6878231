// Package metrics holds the heuristic scoring functions run by the
// aggregation engine. Each metric is an independent, replaceable unit
// satisfying the score.Func contract; none of them share state.
package metrics

import (
	"github.com/modelgrade/mgrade/pkg/score"
)

// Options carries the shared clients the metric constructors need.
type Options struct {
	Hub   *Hub
	GenAI *GenAI
}

// All returns the full metric suite in registration order. Order has no
// runtime significance; the engine launches everything concurrently.
func All(opts Options) []score.Metric {
	return []score.Metric{
		{Name: score.MetricName, Fn: Name(), Enabled: true},
		{Name: score.MetricCategory, Fn: Category(), Enabled: true},
		{Name: "code_quality", Fn: CodeQuality(), Enabled: true},
		{Name: "performance_claims", Fn: PerformanceClaims(opts.Hub, opts.GenAI), Enabled: true},
		{Name: "bus_factor", Fn: BusFactor(opts.Hub), Enabled: true},
		{Name: score.MetricSizeScore, Fn: SizeGrade(opts.Hub), Enabled: true},
		{Name: "ramp_up_time", Fn: RampUp(opts.Hub), Enabled: true},
		{Name: "license", Fn: License(opts.Hub), Enabled: true},
		{Name: "dataset_quality", Fn: DatasetQuality(opts.Hub), Enabled: true},
		{Name: "dataset_and_code_score", Fn: DatasetAndCode(), Enabled: true},
	}
}
