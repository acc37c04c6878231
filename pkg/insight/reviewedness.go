// Package insight holds supplemental repository heuristics surfaced by
// the inspect command. They share the grading system's scoring
// conventions (scores in [0,1], sentinel -1.0, latencies in ms) but are
// not part of the NDJSON grade schema.
package insight

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/go-github/v83/github"
)

// ErrorValue mirrors the grading sentinel for uncomputable scores.
const ErrorValue = -1.0

const prPageSize = 100

var githubRepoRe = regexp.MustCompile(`https?://github\.com/([^/]+)/([^/]+)`)

// ParseRepoURL extracts owner and repo from a GitHub repository URL.
func ParseRepoURL(rawURL string) (owner, repo string, err error) {
	m := githubRepoRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", "", fmt.Errorf("not a GitHub repo URL: %s", rawURL)
	}
	return m[1], m[2], nil
}

// Reviewedness estimates the share of commits that landed through
// reviewed pull requests: merged PR count over total commit count. The
// commit total is read from the Link-header pagination of a one-commit
// page, which is an estimate, not an exact count.
func Reviewedness(ctx context.Context, client *github.Client, repoURL string) (float64, int64, error) {
	start := time.Now()

	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return ErrorValue, msSince(start), err
	}

	_, resp, err := client.Repositories.ListCommits(ctx, owner, repo, &github.CommitsListOptions{
		ListOptions: github.ListOptions{PerPage: 1},
	})
	if err != nil {
		return ErrorValue, msSince(start), fmt.Errorf("listing commits for %s/%s: %w", owner, repo, err)
	}

	totalCommits := resp.LastPage
	if totalCommits <= 0 {
		totalCommits = 1
	}

	merged := 0
	for page := 1; ; page++ {
		prs, _, err := client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
			State:       "closed",
			ListOptions: github.ListOptions{PerPage: prPageSize, Page: page},
		})
		if err != nil {
			return ErrorValue, msSince(start), fmt.Errorf("listing pull requests for %s/%s: %w", owner, repo, err)
		}
		for _, pr := range prs {
			if pr.MergedAt != nil {
				merged++
			}
		}
		if len(prs) < prPageSize {
			break
		}
	}

	v := float64(merged) / float64(totalCommits)
	if v > 1.0 {
		v = 1.0
	}
	return v, msSince(start), nil
}

func msSince(t time.Time) int64 {
	return time.Since(t).Milliseconds()
}
