package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func allOnes() map[string]float64 {
	return map[string]float64{
		"license":                1.0,
		"ramp_up_time":           1.0,
		"dataset_and_code_score": 1.0,
		"bus_factor":             1.0,
		"performance_claims":     1.0,
		"dataset_quality":        1.0,
		"code_quality":           1.0,
	}
}

func TestDefaultWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, w := range DefaultWeights() {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestReduceCeiling(t *testing.T) {
	// A perfect run tops out at 0.90: the size_score weight multiplies
	// an input that is never present.
	net, _ := DefaultWeights().Reduce(allOnes())
	assert.InDelta(t, 0.90, net, 1e-9)
}

func TestReduceUniformInput(t *testing.T) {
	in := allOnes()
	for k := range in {
		in[k] = 0.5
	}
	net, _ := DefaultWeights().Reduce(in)
	assert.InDelta(t, 0.45, net, 1e-9)
}

func TestReduceClampsInputs(t *testing.T) {
	in := allOnes()
	in["license"] = 5.0
	net, _ := DefaultWeights().Reduce(in)

	assert.InDelta(t, 0.90, net, 1e-9)
}

func TestReduceAbsorbsSentinels(t *testing.T) {
	in := allOnes()
	in["bus_factor"] = ErrorValue
	net, _ := DefaultWeights().Reduce(in)

	// bus_factor's 0.12 contribution drops out.
	assert.InDelta(t, 0.78, net, 1e-9)
}

func TestReduceEmptyInput(t *testing.T) {
	net, _ := DefaultWeights().Reduce(map[string]float64{})
	assert.Equal(t, 0.0, net)
}

func TestReduceRounds(t *testing.T) {
	net, _ := DefaultWeights().Reduce(map[string]float64{"license": 0.333})
	// 0.18 * 0.333 = 0.05994 -> 0.06
	assert.InDelta(t, 0.06, net, 1e-9)
}

func TestReduceAlternateWeightTable(t *testing.T) {
	w := Weights{"license": 0.5, "code_quality": 0.5}
	net, _ := w.Reduce(map[string]float64{"license": 1.0, "code_quality": 0.5})
	assert.InDelta(t, 0.75, net, 1e-9)
}

func TestReduceSingleMetric(t *testing.T) {
	net, _ := DefaultWeights().Reduce(map[string]float64{"license": 1.0})
	assert.InDelta(t, 0.18, net, 1e-9)
}
