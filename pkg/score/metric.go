package score

import "context"

// ErrorValue is the sentinel score meaning "could not be computed".
// It is distinguishable from a legitimate low score only by convention.
const ErrorValue = -1.0

// Reserved metric names with non-scalar semantics.
const (
	MetricName      = "name"
	MetricCategory  = "category"
	MetricSizeScore = "size_score"
)

// DefaultCategory is the category every graded subject currently gets.
const DefaultCategory = "MODEL"

// Devices covered by the size_score breakdown, in output order.
const (
	DeviceRaspberryPi = "raspberry_pi"
	DeviceJetsonNano  = "jetson_nano"
	DeviceDesktopPC   = "desktop_pc"
	DeviceAWSServer   = "aws_server"
)

// SizeBreakdown holds per-device compatibility scores in [0,1],
// or ErrorValue when the size metric failed.
type SizeBreakdown struct {
	RaspberryPi float64 `json:"raspberry_pi"`
	JetsonNano  float64 `json:"jetson_nano"`
	DesktopPC   float64 `json:"desktop_pc"`
	AWSServer   float64 `json:"aws_server"`
}

// ErrorSizes returns a breakdown with every device set to ErrorValue.
func ErrorSizes() SizeBreakdown {
	return SizeBreakdown{
		RaspberryPi: ErrorValue,
		JetsonNano:  ErrorValue,
		DesktopPC:   ErrorValue,
		AWSServer:   ErrorValue,
	}
}

// Kind discriminates what a metric's Value carries.
type Kind int

const (
	// KindScalar is a numeric score, normally in [0,1] or ErrorValue.
	KindScalar Kind = iota
	// KindText is an identifier (the name and category metrics).
	KindText
	// KindSizes is the per-device size breakdown.
	KindSizes
)

// Value is the successful outcome of one metric evaluation.
// Exactly one of Score, Text, or Sizes is meaningful, per Kind.
// Latency is wall-clock milliseconds spent producing the value and
// must be reported even when the metric absorbed an internal failure.
type Value struct {
	Kind    Kind
	Score   float64
	Text    string
	Sizes   SizeBreakdown
	Latency int64
}

// Scalar wraps a numeric score and its latency.
func Scalar(score float64, latencyMs int64) Value {
	return Value{Kind: KindScalar, Score: score, Latency: latencyMs}
}

// Text wraps an identifier value and its latency.
func Text(s string, latencyMs int64) Value {
	return Value{Kind: KindText, Text: s, Latency: latencyMs}
}

// Sizes wraps a per-device breakdown and its latency.
func Sizes(b SizeBreakdown, latencyMs int64) Value {
	return Value{Kind: KindSizes, Sizes: b, Latency: latencyMs}
}

// Func is the contract every metric satisfies. Implementations either
// absorb their own failures and return a sentinel Value, or return a
// non-nil error and let the engine apply the per-metric fallback.
// Implementations run concurrently and must not share mutable state.
type Func func(ctx context.Context, s Subject) (Value, error)

// Metric is a named, independently-fallible scoring function.
type Metric struct {
	Name    string
	Fn      Func
	Enabled bool
}
