package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/modelgrade/mgrade/pkg/auth"
	"github.com/modelgrade/mgrade/pkg/config"
	"github.com/modelgrade/mgrade/pkg/logging"
	"github.com/modelgrade/mgrade/pkg/metrics"
	"github.com/modelgrade/mgrade/pkg/net"
	"github.com/modelgrade/mgrade/pkg/score"
	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "mgrade"
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatJSON

	logFileFlag = &urfave.StringFlag{
		Name:    "log-file",
		Usage:   "Path to the diagnostic log file (optional, default: stderr)",
		EnvVars: []string{logging.EnvLogFile},
	}

	logLevelFlag = &urfave.StringFlag{
		Name:    "log-level",
		Usage:   "Log verbosity [0=silent, 1=info, 2=debug]",
		EnvVars: []string{logging.EnvLogLevel},
		Value:   "1",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format for non-grade commands [json, yaml]",
		Value: formatJSON,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	HomeDir  string
	Conf     *config.Config
	closeLog func() error
}

func getConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 appName,
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "CLI for grading Hugging Face model repos on reuse-readiness",
		Flags: []urfave.Flag{
			logFileFlag,
			logLevelFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			gradeCmd,
			treeCmd,
			inspectCmd,
			authCmd,
		},
		Before: func(c *urfave.Context) error {
			closer, err := logging.Setup(logging.Options{
				FilePath: c.String(logFileFlag.Name),
				Level:    logging.ParseLevel(c.String(logLevelFlag.Name)),
			})
			if err != nil {
				return fmt.Errorf("initializing logging: %w", err)
			}

			f := c.String(formatFlag.Name)
			if f == formatYAML || f == "yml" {
				outputFormat = formatYAML
			}

			home, created, err := config.GetOrCreateHomeDir(appName)
			if err != nil {
				return fmt.Errorf("resolving home dir: %w", err)
			}
			if created {
				slog.Info("created app home dir", "path", home)
			}

			conf, err := config.ReadOrCreate(home)
			if err != nil {
				return fmt.Errorf("reading config: %w", err)
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				HomeDir:  home,
				Conf:     conf,
				closeLog: closer,
			}
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok && cfg.closeLog != nil {
				return cfg.closeLog()
			}
			return nil
		},
	}
}

// buildEngine wires the metric suite against the configured hub and
// GenAI endpoint, applying any weight overrides from the config file.
func buildEngine(cfg *appConfig) (*score.Engine, *metrics.Hub, *metrics.GenAI) {
	hub := metrics.NewHub(cfg.Conf.HubBaseURL, net.Client())
	llm := metrics.NewGenAI(
		cfg.Conf.GenAIURL,
		cfg.Conf.GenAIModel,
		auth.Resolve(cfg.HomeDir, auth.TokenGenAI),
	)

	weights := score.DefaultWeights()
	for name, w := range cfg.Conf.Weights {
		weights[name] = w
	}

	suite := metrics.All(metrics.Options{Hub: hub, GenAI: llm})
	return score.NewEngine(suite, weights, slog.Default()), hub, llm
}

func encode(v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(os.Stdout).Encode(v)
	}
	e := json.NewEncoder(os.Stdout)
	e.SetIndent("", "  ")
	return e.Encode(v)
}
