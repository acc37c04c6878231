package score

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleResult() GradeResult {
	return GradeResult{
		Name:                       "gemma-2b",
		Category:                   DefaultCategory,
		NetScore:                   0.57,
		NetScoreLatency:            120,
		RampUpTime:                 0.5,
		RampUpTimeLatency:          20,
		BusFactor:                  0.25,
		BusFactorLatency:           30,
		PerformanceClaims:          0.4,
		PerformanceClaimsLatency:   40,
		License:                    1.0,
		LicenseLatency:             10,
		SizeScore:                  SizeBreakdown{JetsonNano: 0.5, DesktopPC: 1.0, AWSServer: 1.0},
		SizeScoreLatency:           80,
		DatasetAndCodeScore:        0.7,
		DatasetAndCodeScoreLatency: 70,
		DatasetQuality:             0.8,
		DatasetQualityLatency:      50,
		CodeQuality:                0.6,
		CodeQualityLatency:         60,
	}
}

func TestMarshalLineKeyOrder(t *testing.T) {
	line, err := sampleResult().MarshalLine()
	assert.NoError(t, err)

	expected := []string{
		"name",
		"category",
		"net_score",
		"net_score_latency",
		"ramp_up_time",
		"ramp_up_time_latency",
		"bus_factor",
		"bus_factor_latency",
		"performance_claims",
		"performance_claims_latency",
		"license",
		"license_latency",
		"size_score",
		"size_score_latency",
		"dataset_and_code_score",
		"dataset_and_code_score_latency",
		"dataset_quality",
		"dataset_quality_latency",
		"code_quality",
		"code_quality_latency",
	}

	s := string(line)
	last := -1
	for _, key := range expected {
		idx := strings.Index(s, `"`+key+`"`)
		assert.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}
}

func TestMarshalLineIsSingleLine(t *testing.T) {
	line, err := sampleResult().MarshalLine()
	assert.NoError(t, err)
	assert.NotContains(t, string(line), "\n")

	var parsed map[string]any
	assert.NoError(t, json.Unmarshal(line, &parsed))
	assert.Len(t, parsed, 20)
}

func TestMarshalLineNoHTMLEscaping(t *testing.T) {
	r := sampleResult()
	r.Name = "a<b>&c"

	line, err := r.MarshalLine()
	assert.NoError(t, err)
	assert.Contains(t, string(line), "a<b>&c")
}

func TestScalars(t *testing.T) {
	m := sampleResult().Scalars()

	assert.Len(t, m, 8)
	assert.Equal(t, 0.57, m["net_score"])
	assert.Equal(t, 1.0, m["license"])
	assert.NotContains(t, m, "name")
	assert.NotContains(t, m, "size_score")
	assert.NotContains(t, m, "license_latency")
}

func TestSizeMap(t *testing.T) {
	m := sampleResult().SizeMap()

	assert.Len(t, m, 4)
	assert.Equal(t, 0.0, m[DeviceRaspberryPi])
	assert.Equal(t, 0.5, m[DeviceJetsonNano])
	assert.Equal(t, 1.0, m[DeviceDesktopPC])
	assert.Equal(t, 1.0, m[DeviceAWSServer])
}
