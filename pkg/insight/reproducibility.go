package insight

import (
	"context"
	"strings"
	"time"

	"github.com/modelgrade/mgrade/pkg/metrics"
)

// Evidence that a model ships something a user can actually run.
var demoKeywords = []string{
	"colab",
	"notebook",
	"demo",
	"example usage",
	"how to use",
	"quickstart",
	"getting started",
	"inference",
}

// Reproducibility scores how likely a fresh user is to reproduce the
// model's advertised behavior: half the weight on runnable artifacts in
// the repo (scripts, notebooks), half on usage documentation in the
// README.
func Reproducibility(ctx context.Context, hub *metrics.Hub, modelURL string) (float64, int64, error) {
	start := time.Now()

	id, err := metrics.RepoID(modelURL)
	if err != nil {
		return ErrorValue, msSince(start), err
	}

	model, err := hub.Model(ctx, id)
	if err != nil {
		return ErrorValue, msSince(start), err
	}

	artifacts := 0.0
	for _, sib := range model.Siblings {
		name := strings.ToLower(sib.Rfilename)
		if strings.HasSuffix(name, ".py") || strings.HasSuffix(name, ".ipynb") {
			artifacts = 1.0
			break
		}
	}

	docs := 0.0
	readme, err := hub.Readme(ctx, id)
	if err == nil && readme != "" {
		lower := strings.ToLower(readme)
		hits := 0
		for _, kw := range demoKeywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		docs = float64(hits) / 3.0
		if docs > 1.0 {
			docs = 1.0
		}
	}

	return (artifacts + docs) / 2.0, msSince(start), nil
}
