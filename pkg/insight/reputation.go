package insight

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/go-github/v83/github"
	"github.com/mchmarny/reputer/pkg/score"
)

const contributorPageSize = 100

// SignalSummary exposes the gathered reputation signals alongside the
// computed score.
type SignalSummary struct {
	AgeDays           int64 `json:"age_days" yaml:"ageDays"`
	Followers         int64 `json:"followers" yaml:"followers"`
	Following         int64 `json:"following" yaml:"following"`
	PublicRepos       int64 `json:"public_repos" yaml:"publicRepos"`
	Suspended         bool  `json:"suspended" yaml:"suspended"`
	Commits           int64 `json:"commits" yaml:"commits"`
	TotalCommits      int64 `json:"total_commits" yaml:"totalCommits"`
	TotalContributors int   `json:"total_contributors" yaml:"totalContributors"`
}

// MaintainerReputation is the inspect-command view of the repo's top
// contributor.
type MaintainerReputation struct {
	Username   string         `json:"username" yaml:"username"`
	Reputation float64        `json:"reputation" yaml:"reputation"`
	Signals    *SignalSummary `json:"signals,omitempty" yaml:"signals,omitempty"`
	LatencyMS  int64          `json:"latency_ms" yaml:"latencyMs"`
}

// Reputation scores the top contributor of the linked code repository.
// Contribution counts come from the repo's contributor list; account
// signals come from the user profile.
func Reputation(ctx context.Context, client *github.Client, repoURL string) (*MaintainerReputation, error) {
	start := time.Now()

	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}

	contributors, _, err := client.Repositories.ListContributors(ctx, owner, repo, &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: contributorPageSize},
	})
	if err != nil {
		return nil, fmt.Errorf("error listing contributors for %s/%s: %w", owner, repo, err)
	}
	if len(contributors) == 0 {
		return nil, fmt.Errorf("no contributors found for %s/%s", owner, repo)
	}

	top := contributors[0]
	username := top.GetLogin()

	signals := score.Signals{
		Commits:           int64(top.GetContributions()),
		TotalContributors: len(contributors),
	}
	for _, c := range contributors {
		signals.TotalCommits += int64(c.GetContributions())
	}

	usr, _, err := client.Users.Get(ctx, username)
	if err != nil {
		// Profile signals are additive. Score on repo signals alone.
		slog.Debug("error getting user profile", "username", username, "error", err)
	} else {
		if usr.CreatedAt != nil {
			signals.AgeDays = int64(time.Since(usr.CreatedAt.Time).Hours() / 24)
		}
		signals.Followers = int64(usr.GetFollowers())
		signals.Following = int64(usr.GetFollowing())
		signals.PublicRepos = int64(usr.GetPublicRepos())
		signals.StrongAuth = usr.GetTwoFactorAuthentication()
		signals.Suspended = usr.SuspendedAt != nil
	}

	rep := score.Compute(signals)

	return &MaintainerReputation{
		Username:   username,
		Reputation: rep,
		Signals: &SignalSummary{
			AgeDays:           signals.AgeDays,
			Followers:         signals.Followers,
			Following:         signals.Following,
			PublicRepos:       signals.PublicRepos,
			Suspended:         signals.Suspended,
			Commits:           signals.Commits,
			TotalCommits:      signals.TotalCommits,
			TotalContributors: signals.TotalContributors,
		},
		LatencyMS: msSince(start),
	}, nil
}
