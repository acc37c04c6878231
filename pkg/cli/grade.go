package cli

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelgrade/mgrade/pkg/score"
	"github.com/modelgrade/mgrade/pkg/upload"
	urfave "github.com/urfave/cli/v2"
)

var (
	validateFlag = &urfave.BoolFlag{
		Name:  "validate",
		Usage: "Validate each result line against the output schema before printing",
	}

	uploadFlag = &urfave.BoolFlag{
		Name:  "upload",
		Usage: "Upload result lines to the configured results bucket (best effort)",
	}

	gradeCmd = &urfave.Command{
		Name:            "grade",
		HideHelpCommand: true,
		Usage:           "Grade the URL groups in a file, one NDJSON result per line",
		ArgsUsage:       "URL_FILE",
		Flags: []urfave.Flag{
			validateFlag,
			uploadFlag,
		},
		Action: cmdGrade,
	}
)

func cmdGrade(c *urfave.Context) error {
	path := c.Args().First()
	if path == "" {
		return errors.New("URL file path is required")
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening URL file %s: %w", path, err)
	}
	defer f.Close()

	cfg := getConfig(c)
	eng, _, _ := buildEngine(cfg)

	gate, err := newGate(cfg)
	if err != nil {
		return err
	}

	var up *upload.Uploader
	if c.Bool(uploadFlag.Name) && cfg.Conf.ResultsBucket != "" {
		up, err = upload.New(c.Context, cfg.Conf.ResultsBucket)
		if err != nil {
			// Uploads are best effort. Keep grading.
			slog.Warn("uploader unavailable", "bucket", cfg.Conf.ResultsBucket, "error", err)
		}
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()

		subject, err := score.ParseGroup(raw)
		if err != nil {
			slog.Warn("skipping line without a model URL", "line", raw)
			continue
		}

		r := eng.Run(c.Context, subject)

		line, err := r.MarshalLine()
		if err != nil {
			return fmt.Errorf("encoding result for %s: %w", subject.ModelURL, err)
		}

		if c.Bool(validateFlag.Name) {
			if err := score.ValidateJSON(line); err != nil {
				return fmt.Errorf("result for %s violates output contract: %w", subject.ModelURL, err)
			}
		}

		fmt.Fprintln(out, string(line))

		slog.Info("ingestion decision", "model", r.Name, "net_score", r.NetScore, "admit", gate.Admit(r))

		if up != nil {
			if link, upErr := up.Put(c.Context, r.Name, line); upErr != nil {
				slog.Warn("result upload failed", "model", r.Name, "error", upErr)
			} else {
				slog.Info("result uploaded", "model", r.Name, "url", link)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading URL file %s: %w", path, err)
	}
	return nil
}

func newGate(cfg *appConfig) (*score.Gate, error) {
	if cfg.Conf.IngestPolicy != "" {
		g, err := score.NewPolicyGate(cfg.Conf.IngestPolicy)
		if err != nil {
			return nil, fmt.Errorf("compiling ingest policy: %w", err)
		}
		return g, nil
	}
	return score.NewGate(cfg.Conf.IngestThreshold), nil
}
