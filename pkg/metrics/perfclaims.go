package metrics

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/modelgrade/mgrade/pkg/score"
)

// Rubric weights applied when the grader returns subscores instead of a
// single number.
const (
	claimWeightPresence     = 0.30
	claimWeightDetail       = 0.30
	claimWeightEvidence     = 0.20
	claimWeightConfirmation = 0.20
)

const claimsSystemPrompt = `You are evaluating a model's README for performance claim quality. Score from 0.0 to 1.0 using this rubric:

PRESENCE (Has numeric claims?):
- 1.0: Multiple specific metrics with exact numbers (e.g., '95.2% accuracy on GLUE', 'BLEU score of 28.4')
- 0.8: At least one specific metric with numbers
- 0.5: Performance mentioned but no exact numbers (e.g., 'achieves high accuracy', 'better than baseline')
- 0.3: Only task description, no performance info (e.g., 'this is a text classifier')
- 0.0: No performance or capability information at all

DETAIL (How clear/complete?):
- 1.0: Includes dataset name, task, split, metric name, and value (e.g., '92.1% accuracy on SQuAD 2.0 dev set')
- 0.8: Has metric name and value, plus dataset or task (e.g., 'F1 of 0.89 on NER task')
- 0.6: Has metric and value but vague context (e.g., '90% accuracy')
- 0.4: Only relative comparisons (e.g., 'better than BERT')
- 0.2: Vague descriptions (e.g., 'good performance')
- 0.0: No detail

EVIDENCE (Supporting material?):
- 1.0: Links to papers, benchmarks, or official leaderboards
- 0.7: Training details and methodology described
- 0.4: Basic training info mentioned
- 0.0: No supporting evidence

CONFIRMATION (Verifiable?):
- 1.0: Has model-index YAML with structured metrics, or links to official benchmark sites
- 0.6: References authoritative sources (papers, datasets)
- 0.3: Self-reported without external validation
- 0.0: No way to verify claims

Calculate final score as weighted average:
final_score = (0.35 x presence) + (0.35 x detail) + (0.15 x evidence) + (0.15 x confirmation)

CRITICAL: Respond ONLY with the final_score as a single number between 0.0 and 1.0.
Examples of valid responses: 0.8, 0.65, 0.0, 1.0
Do NOT include explanations, subscores, or any other text.`

// PerformanceClaims grades the credibility of the performance claims in
// a model's README via the GenAI endpoint. Unlike most metrics this one
// does not absorb its failures: hub or LLM errors escape to the engine
// boundary, which applies the sentinel fallback and logs the cause.
func PerformanceClaims(hub *Hub, llm *GenAI) score.Func {
	return func(ctx context.Context, s score.Subject) (score.Value, error) {
		start := time.Now()

		id, err := RepoID(s.ModelURL)
		if err != nil {
			return score.Value{}, err
		}

		readme, err := hub.Readme(ctx, id)
		if err != nil {
			return score.Value{}, err
		}
		if strings.TrimSpace(readme) == "" {
			return score.Scalar(0.0, msSince(start)), nil
		}

		reply, err := llm.Chat(ctx, claimsSystemPrompt, readme)
		if err != nil {
			return score.Value{}, err
		}

		v, err := parseClaimsReply(reply)
		if err != nil {
			return score.Value{}, err
		}
		return score.Scalar(v, msSince(start)), nil
	}
}

// parseClaimsReply handles both reply shapes the grader produces: a bare
// number, or a JSON object with presence/detail/evidence/confirmation
// subscores (occasionally wrapped in Markdown fences).
func parseClaimsReply(reply string) (float64, error) {
	content := stripFences(strings.TrimSpace(reply))

	if v, err := strconv.ParseFloat(content, 64); err == nil {
		return round2(clamp01(v)), nil
	}

	var sub map[string]float64
	if err := json.Unmarshal([]byte(content), &sub); err != nil {
		return 0, fmt.Errorf("unparseable grader reply: %q", reply)
	}

	norm := func(key string) float64 {
		v := sub[key]
		// Values above 1 are read as a 0-10 scale.
		if v > 1.0 {
			v /= 10.0
		}
		return clamp01(v)
	}

	final := claimWeightPresence*norm("presence") +
		claimWeightDetail*norm("detail") +
		claimWeightEvidence*norm("evidence") +
		claimWeightConfirmation*norm("confirmation")

	return round2(final), nil
}

func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToLower(s), "json") {
		s = strings.TrimSpace(s[4:])
	}
	return s
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
