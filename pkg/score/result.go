package score

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GradeResult is the fixed-schema output of one grading pass. Field order
// matches the NDJSON key order consumed downstream; do not reorder.
// Every scalar score is in [0,1] or ErrorValue, every latency is >= 0.
type GradeResult struct {
	Name                       string        `json:"name"`
	Category                   string        `json:"category"`
	NetScore                   float64       `json:"net_score"`
	NetScoreLatency            int64         `json:"net_score_latency"`
	RampUpTime                 float64       `json:"ramp_up_time"`
	RampUpTimeLatency          int64         `json:"ramp_up_time_latency"`
	BusFactor                  float64       `json:"bus_factor"`
	BusFactorLatency           int64         `json:"bus_factor_latency"`
	PerformanceClaims          float64       `json:"performance_claims"`
	PerformanceClaimsLatency   int64         `json:"performance_claims_latency"`
	License                    float64       `json:"license"`
	LicenseLatency             int64         `json:"license_latency"`
	SizeScore                  SizeBreakdown `json:"size_score"`
	SizeScoreLatency           int64         `json:"size_score_latency"`
	DatasetAndCodeScore        float64       `json:"dataset_and_code_score"`
	DatasetAndCodeScoreLatency int64         `json:"dataset_and_code_score_latency"`
	DatasetQuality             float64       `json:"dataset_quality"`
	DatasetQualityLatency      int64         `json:"dataset_quality_latency"`
	CodeQuality                float64       `json:"code_quality"`
	CodeQualityLatency         int64         `json:"code_quality_latency"`
}

// MarshalLine serializes the result as one line of minified JSON,
// without a trailing newline.
func (r GradeResult) MarshalLine() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("encoding grade result: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Scalars returns the non-latency scalar fields keyed by metric name,
// net_score included. Used by the ingestion gate and policy evaluation.
func (r GradeResult) Scalars() map[string]float64 {
	return map[string]float64{
		"net_score":              r.NetScore,
		"ramp_up_time":           r.RampUpTime,
		"bus_factor":             r.BusFactor,
		"performance_claims":     r.PerformanceClaims,
		"license":                r.License,
		"dataset_and_code_score": r.DatasetAndCodeScore,
		"dataset_quality":        r.DatasetQuality,
		"code_quality":           r.CodeQuality,
	}
}

// SizeMap returns the size breakdown keyed by device name.
func (r GradeResult) SizeMap() map[string]float64 {
	return map[string]float64{
		DeviceRaspberryPi: r.SizeScore.RaspberryPi,
		DeviceJetsonNano:  r.SizeScore.JetsonNano,
		DeviceDesktopPC:   r.SizeScore.DesktopPC,
		DeviceAWSServer:   r.SizeScore.AWSServer,
	}
}
