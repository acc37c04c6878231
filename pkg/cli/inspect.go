package cli

import (
	"errors"
	"log/slog"

	"github.com/google/go-github/v83/github"
	"github.com/modelgrade/mgrade/pkg/auth"
	"github.com/modelgrade/mgrade/pkg/insight"
	"github.com/modelgrade/mgrade/pkg/net"
	urfave "github.com/urfave/cli/v2"
)

var (
	modelURLFlag = &urfave.StringFlag{
		Name:  "model",
		Usage: "Hugging Face model URL",
	}

	codeURLFlag = &urfave.StringFlag{
		Name:  "code",
		Usage: "GitHub repo URL linked to the model",
	}

	inspectCmd = &urfave.Command{
		Name:            "inspect",
		HideHelpCommand: true,
		Usage:           "Supplemental heuristics: reproducibility, review coverage, maintainer reputation",
		Flags: []urfave.Flag{
			modelURLFlag,
			codeURLFlag,
		},
		Action: cmdInspect,
	}
)

type inspectResult struct {
	Model           string                        `json:"model,omitempty" yaml:"model,omitempty"`
	Code            string                        `json:"code,omitempty" yaml:"code,omitempty"`
	Reproducibility *float64                      `json:"reproducibility,omitempty" yaml:"reproducibility,omitempty"`
	Reviewedness    *float64                      `json:"reviewedness,omitempty" yaml:"reviewedness,omitempty"`
	Maintainer      *insight.MaintainerReputation `json:"maintainer,omitempty" yaml:"maintainer,omitempty"`
}

func cmdInspect(c *urfave.Context) error {
	modelURL := c.String(modelURLFlag.Name)
	codeURL := c.String(codeURLFlag.Name)
	if modelURL == "" && codeURL == "" {
		return errors.New("at least one of --model or --code is required")
	}

	cfg := getConfig(c)
	res := inspectResult{Model: modelURL, Code: codeURL}

	if modelURL != "" {
		_, hub, _ := buildEngine(cfg)
		v, ms, err := insight.Reproducibility(c.Context, hub, modelURL)
		if err != nil {
			slog.Warn("reproducibility unavailable", "model", modelURL, "error", err)
		} else {
			slog.Debug("reproducibility computed", "model", modelURL, "ms", ms)
			res.Reproducibility = &v
		}
	}

	if codeURL != "" {
		client := githubClient(c)

		v, ms, err := insight.Reviewedness(c.Context, client, codeURL)
		if err != nil {
			slog.Warn("reviewedness unavailable", "repo", codeURL, "error", err)
		} else {
			slog.Debug("reviewedness computed", "repo", codeURL, "ms", ms)
			res.Reviewedness = &v
		}

		rep, err := insight.Reputation(c.Context, client, codeURL)
		if err != nil {
			slog.Warn("maintainer reputation unavailable", "repo", codeURL, "error", err)
		} else {
			res.Maintainer = rep
		}
	}

	return encode(res)
}

// githubClient returns an authenticated client when a token is
// configured, an anonymous one otherwise.
func githubClient(c *urfave.Context) *github.Client {
	cfg := getConfig(c)
	token := auth.Resolve(cfg.HomeDir, auth.TokenGitHub)
	if token == "" {
		slog.Debug("no GitHub token configured, using anonymous client")
		return github.NewClient(net.Client())
	}
	return github.NewClient(net.OAuthClient(c.Context, token))
}
