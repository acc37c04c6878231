package metrics

import (
	"context"
	"fmt"
	"strings"

	"time"

	"github.com/modelgrade/mgrade/pkg/score"
)

// License category tables. Scores reflect how permissive the license is
// for commercial ingestion.
var (
	permissiveLicenses = map[string]bool{
		"mit":          true,
		"apache-2.0":   true,
		"bsd-2-clause": true,
		"bsd-3-clause": true,
		"mpl-2.0":      true,
		"cc-by-4.0":    true,
	}
	restrictiveLicenses = map[string]bool{
		"gpl-2.0":      true,
		"gpl-3.0":      true,
		"lgpl-3.0":     true,
		"cc-by-sa-4.0": true,
	}
	nonCommercialLicenses = map[string]bool{
		"cc-by-nc-4.0":    true,
		"cc-by-nc-sa-4.0": true,
		"cc-by-nc-nd-4.0": true,
		"research-only":   true,
	}
	customLicenses = map[string]bool{
		"openrail-m":            true,
		"bigscience-openrail-m": true,
		"bigscience-openrail":   true,
		"custom":                true,
	}
	unknownLicenses = map[string]bool{
		"unknown": true,
		"other":   true,
	}
)

// scoreLicense maps a normalized license identifier to a permissiveness
// score. Unrecognized licenses get partial credit.
func scoreLicense(name string) float64 {
	switch {
	case permissiveLicenses[name]:
		return 1.0
	case restrictiveLicenses[name]:
		return 0.7
	case nonCommercialLicenses[name]:
		return 0.4
	case customLicenses[name]:
		return 0.6
	case unknownLicenses[name]:
		return 0.0
	default:
		return 0.5
	}
}

// License grades the model card's license field by permissiveness.
// Errors are absorbed: the metric reports the sentinel with its measured
// latency rather than failing at the engine boundary.
func License(hub *Hub) score.Func {
	return func(ctx context.Context, s score.Subject) (score.Value, error) {
		start := time.Now()

		v, err := licenseScore(ctx, hub, s.ModelURL)
		if err != nil {
			return score.Scalar(score.ErrorValue, msSince(start)), nil
		}
		return score.Scalar(v, msSince(start)), nil
	}
}

func licenseScore(ctx context.Context, hub *Hub, modelURL string) (float64, error) {
	id, err := RepoID(modelURL)
	if err != nil {
		return 0, err
	}

	m, err := hub.Model(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("license lookup: %w", err)
	}

	raw, _ := m.CardData["license"].(string)
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return 0.0, nil
	}
	return scoreLicense(name), nil
}
