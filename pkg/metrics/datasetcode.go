package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/modelgrade/mgrade/pkg/score"
)

// DatasetAndCode is a coarse presence check over the subject's dataset
// and code links: each resolvable slot contributes half.
//
// The engine discards this metric's value in favor of the mean of the
// dataset_quality and code_quality scores, but the metric still runs so
// its latency is reported.
func DatasetAndCode() score.Func {
	return func(_ context.Context, s score.Subject) (score.Value, error) {
		start := time.Now()

		v := 0.0
		if strings.Contains(s.DatasetURL, "huggingface.co/datasets") {
			v += 0.5
		}
		if strings.Contains(s.CodeURL, "github.com") {
			v += 0.5
		}

		return score.Scalar(v, msSince(start)), nil
	}
}
