package cli

import (
	"errors"

	"github.com/modelgrade/mgrade/pkg/lineage"
	"github.com/modelgrade/mgrade/pkg/score"
	urfave "github.com/urfave/cli/v2"
)

var treeCmd = &urfave.Command{
	Name:            "tree",
	HideHelpCommand: true,
	Usage:           "Resolve a model's fine-tune lineage and score its ancestry",
	ArgsUsage:       "MODEL_URL",
	Action:          cmdTree,
}

type treeResult struct {
	Model     string   `json:"model" yaml:"model"`
	Lineage   []string `json:"lineage" yaml:"lineage"`
	TreeScore float64  `json:"tree_score" yaml:"treeScore"`
	LatencyMS int64    `json:"latency_ms" yaml:"latencyMs"`
}

func cmdTree(c *urfave.Context) error {
	modelURL := c.Args().First()
	if modelURL == "" {
		return errors.New("model URL is required")
	}

	cfg := getConfig(c)
	eng, hub, llm := buildEngine(cfg)
	resolver := lineage.NewResolver(hub, llm)

	graph := resolver.Graph(c.Context, modelURL)

	subject, err := score.ParseGroup(modelURL)
	if err != nil {
		return err
	}

	ts, ms := lineage.TreeScore(c.Context, eng, resolver, subject)

	return encode(treeResult{
		Model:     modelURL,
		Lineage:   graph,
		TreeScore: ts,
		LatencyMS: ms,
	})
}
