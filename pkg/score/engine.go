package score

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Engine runs the full metric suite against one Subject and assembles
// exactly one GradeResult. It owns the only mutable state of a grading
// pass and writes it strictly after each metric has settled, so nothing
// is shared between concurrently running metrics.
//
// The Engine itself cannot fail: every code path produces a structurally
// complete result. Individual metric failures are downgraded to sentinel
// values and a log entry.
type Engine struct {
	metrics []Metric
	weights Weights
	log     *slog.Logger
}

// NewEngine builds an Engine over the given metric set and weight table.
// A nil logger falls back to slog.Default.
func NewEngine(metrics []Metric, weights Weights, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{metrics: metrics, weights: weights, log: log}
}

// outcome carries one settled metric evaluation: either a Value or the
// error (including recovered panics) that escaped the metric's boundary.
type outcome struct {
	name string
	val  Value
	err  error
}

// record accumulates resolved metric values during one pass. It becomes
// read-only the moment the GradeResult is assembled.
type record struct {
	scores    map[string]float64
	texts     map[string]string
	sizes     SizeBreakdown
	hasSizes  bool
	latencies map[string]int64
}

// Run launches all enabled metrics concurrently, waits for every one to
// settle (there is no short-circuit and no cancellation of stragglers),
// and reduces the outcomes into a GradeResult.
func (e *Engine) Run(ctx context.Context, s Subject) GradeResult {
	start := time.Now()

	enabled := make([]Metric, 0, len(e.metrics))
	for _, m := range e.metrics {
		if m.Enabled {
			enabled = append(enabled, m)
		}
	}

	outcomes := make(chan outcome, len(enabled))
	var wg sync.WaitGroup
	for _, m := range enabled {
		wg.Add(1)
		go func(m Metric) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					outcomes <- outcome{name: m.Name, err: fmt.Errorf("metric panic: %v", r)}
				}
			}()
			v, err := m.Fn(ctx, s)
			outcomes <- outcome{name: m.Name, val: v, err: err}
		}(m)
	}
	wg.Wait()
	close(outcomes)

	rec := &record{
		scores:    make(map[string]float64),
		texts:     make(map[string]string),
		latencies: make(map[string]int64),
	}
	for o := range outcomes {
		e.resolve(rec, o)
	}

	// The dedicated dataset_and_code metric is discarded in favor of the
	// mean of the two components, so the same property is not counted a
	// third time in the net score.
	dq := rec.scoreOr("dataset_quality", ErrorValue)
	cq := rec.scoreOr("code_quality", ErrorValue)
	rec.scores["dataset_and_code_score"] = (dq + cq) / 2.0

	net, _ := e.weights.Reduce(rec.netInput())

	return e.assemble(rec, net, time.Since(start).Milliseconds())
}

// resolve applies one settled outcome to the record. Boundary failures
// get the documented per-metric fallback with latency forced to 0 and a
// diagnostic log entry; successful values are stored verbatim.
func (e *Engine) resolve(rec *record, o outcome) {
	if o.err != nil {
		e.log.Error("metric failed", "metric", o.name, "error", o.err)
		switch o.name {
		case MetricName:
			rec.texts[MetricName] = ""
		case MetricCategory:
			rec.texts[MetricCategory] = DefaultCategory
		case MetricSizeScore:
			rec.sizes = ErrorSizes()
			rec.hasSizes = true
			rec.latencies[MetricSizeScore] = 0
		default:
			rec.scores[o.name] = ErrorValue
			rec.latencies[o.name] = 0
		}
		return
	}

	switch o.val.Kind {
	case KindText:
		rec.texts[o.name] = o.val.Text
	case KindSizes:
		rec.sizes = o.val.Sizes
		rec.hasSizes = true
		rec.latencies[o.name] = o.val.Latency
	default:
		rec.scores[o.name] = o.val.Score
		rec.latencies[o.name] = o.val.Latency
	}
}

// netInput is the reducer's input set: every resolved scalar score,
// excluding latencies and the reserved name/category/size_score fields
// (which are filtered out structurally by the record's score map).
func (rec *record) netInput() map[string]float64 {
	in := make(map[string]float64, len(rec.scores))
	for k, v := range rec.scores {
		in[k] = v
	}
	return in
}

func (rec *record) scoreOr(name string, def float64) float64 {
	if v, ok := rec.scores[name]; ok {
		return v
	}
	return def
}

// latency returns the recorded latency, or 0 for a missing entry.
func (rec *record) latency(name string) int64 {
	return rec.latencies[name]
}

// assemble builds the fixed-order result, coercing every missing record
// entry to its documented default so no field is ever absent.
// net_score_latency is the wall-clock time of the whole pass, not the
// reducer's own latency: it reports "time to produce a complete grade".
func (e *Engine) assemble(rec *record, net float64, totalMs int64) GradeResult {
	category, ok := rec.texts[MetricCategory]
	if !ok || category == "" {
		category = DefaultCategory
	}

	sizes := ErrorSizes()
	if rec.hasSizes {
		sizes = rec.sizes
	}

	return GradeResult{
		Name:                       rec.texts[MetricName],
		Category:                   category,
		NetScore:                   net,
		NetScoreLatency:            totalMs,
		RampUpTime:                 rec.scoreOr("ramp_up_time", ErrorValue),
		RampUpTimeLatency:          rec.latency("ramp_up_time"),
		BusFactor:                  rec.scoreOr("bus_factor", ErrorValue),
		BusFactorLatency:           rec.latency("bus_factor"),
		PerformanceClaims:          rec.scoreOr("performance_claims", ErrorValue),
		PerformanceClaimsLatency:   rec.latency("performance_claims"),
		License:                    rec.scoreOr("license", ErrorValue),
		LicenseLatency:             rec.latency("license"),
		SizeScore:                  sizes,
		SizeScoreLatency:           rec.latency(MetricSizeScore),
		DatasetAndCodeScore:        rec.scoreOr("dataset_and_code_score", ErrorValue),
		DatasetAndCodeScoreLatency: rec.latency("dataset_and_code_score"),
		DatasetQuality:             rec.scoreOr("dataset_quality", ErrorValue),
		DatasetQualityLatency:      rec.latency("dataset_quality"),
		CodeQuality:                rec.scoreOr("code_quality", ErrorValue),
		CodeQualityLatency:         rec.latency("code_quality"),
	}
}
