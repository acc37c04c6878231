package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/modelgrade/mgrade/pkg/score"
)

// DatasetQuality scores the subject's dataset by metadata completeness:
// a documented description, a declared license, and at least one file
// each contribute a third. Missing or invalid dataset URLs score 0.0.
func DatasetQuality(hub *Hub) score.Func {
	return func(ctx context.Context, s score.Subject) (score.Value, error) {
		start := time.Now()

		if s.DatasetURL == "" || !strings.Contains(s.DatasetURL, "huggingface.co/datasets") {
			return score.Scalar(0.0, msSince(start)), nil
		}

		id, err := RepoID(s.DatasetURL)
		if err != nil || !strings.Contains(id, "/") {
			return score.Scalar(0.0, msSince(start)), nil
		}

		d, err := hub.Dataset(ctx, id)
		if err != nil {
			return score.Scalar(0.0, msSince(start)), nil
		}

		checks := 0
		if desc, _ := d.CardData["description"].(string); desc != "" {
			checks++
		}
		if lic, _ := d.CardData["license"].(string); lic != "" {
			checks++
		}
		if len(d.Siblings) > 0 {
			checks++
		}

		return score.Scalar(round2(float64(checks)/3.0), msSince(start)), nil
	}
}
