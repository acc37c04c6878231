package metrics

import (
	"context"
	"log/slog"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/modelgrade/mgrade/pkg/score"
)

const (
	cloneDepth = 50

	// Sub-score saturation points.
	commitSaturation = 100.0
	authorSaturation = 5.0
)

// CodeQuality grades the associated code repository by recent history:
// commit activity (saturating at 100 commits), contributor diversity
// (saturating at 5 distinct authors), and freshness of the last commit.
// The repo is shallow-cloned into memory; clone or log failures absorb
// to 0.0 with measured latency.
func CodeQuality() score.Func {
	return func(ctx context.Context, s score.Subject) (score.Value, error) {
		start := time.Now()

		if s.CodeURL == "" || !strings.Contains(s.CodeURL, "github.com") {
			slog.Warn("code_quality: no valid code URL", "url", s.CodeURL)
			return score.Scalar(0.0, msSince(start)), nil
		}

		v, err := codeQualityScore(ctx, s.CodeURL, time.Now())
		if err != nil {
			slog.Error("code_quality: repo analysis failed", "url", s.CodeURL, "error", err)
			return score.Scalar(0.0, msSince(start)), nil
		}
		return score.Scalar(v, msSince(start)), nil
	}
}

func codeQualityScore(ctx context.Context, codeURL string, now time.Time) (float64, error) {
	repo, err := git.CloneContext(ctx, memory.NewStorage(), nil, &git.CloneOptions{
		URL:   codeURL,
		Depth: cloneDepth,
	})
	if err != nil {
		return 0, err
	}

	iter, err := repo.Log(&git.LogOptions{})
	if err != nil {
		return 0, err
	}

	var (
		numCommits int
		authors    = make(map[string]bool)
		lastCommit time.Time
	)
	err = iter.ForEach(func(c *object.Commit) error {
		numCommits++
		authors[c.Author.Email] = true
		if c.Author.When.After(lastCommit) {
			lastCommit = c.Author.When
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	if numCommits == 0 {
		return 0, nil
	}

	commitScore := min(float64(numCommits)/commitSaturation, 1.0)
	authorScore := min(float64(len(authors))/authorSaturation, 1.0)

	ageDays := now.Sub(lastCommit).Hours() / 24
	var freshness float64
	switch {
	case ageDays < 30:
		freshness = 1.0
	case ageDays < 365:
		freshness = 0.5
	}

	return round2((commitScore + authorScore + freshness) / 3.0), nil
}
