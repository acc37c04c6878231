// Package lineage walks a model's ancestry (base and parent models) and
// scores it with the same engine used for the model itself.
package lineage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelgrade/mgrade/pkg/metrics"
)

const lineageSystemPrompt = "You are a strict evaluator. Output valid minified JSON only. No commentary."

const lineageUserTemplate = `You are given unstructured README text and selected Hub metadata.
Extract the model lineage (parent models), and return ONLY valid minified JSON:

{
  "lineage": ["parent_model1", "parent_model2", "base_model"]
}

README_AND_METADATA:
<<<
%s
>>>`

// Resolver extracts parent models from hub metadata using the LLM.
type Resolver struct {
	hub *metrics.Hub
	llm *metrics.GenAI
}

// NewResolver returns a lineage resolver over the given clients.
func NewResolver(hub *metrics.Hub, llm *metrics.GenAI) *Resolver {
	return &Resolver{hub: hub, llm: llm}
}

// Graph returns the model lineage from root to the given model as hub
// URLs. The walk follows the most direct parent at each step and stops
// at the root or on a cycle. The list always contains at least the
// model itself.
func (r *Resolver) Graph(ctx context.Context, modelURLOrID string) []string {
	id := normalizeID(modelURLOrID)

	var lineage []string
	visited := make(map[string]bool)
	current := id

	for current != "" && !visited[current] {
		lineage = append(lineage, "https://huggingface.co/"+current)
		visited[current] = true

		parents := r.parents(ctx, current)
		if len(parents) == 0 {
			break
		}
		// The first entry is taken as the most direct parent.
		current = strings.TrimSpace(parents[0])
	}

	// Reverse to root-first order.
	for i, j := 0, len(lineage)-1; i < j; i, j = i+1, j-1 {
		lineage[i], lineage[j] = lineage[j], lineage[i]
	}
	return lineage
}

// parents asks the LLM for the parent models of one repo, feeding it the
// README plus config.json metadata. Failures yield an empty list: an
// unknown ancestry terminates the walk rather than failing it.
func (r *Resolver) parents(ctx context.Context, id string) []string {
	readme, err := r.hub.Readme(ctx, id)
	if err != nil {
		slog.Debug("lineage: readme fetch failed", "model", id, "error", err)
		readme = ""
	}

	meta := ""
	if raw, err := r.hub.RawFile(ctx, id, "config.json"); err == nil {
		meta = raw
	}

	text := readme + "\n\n### MODEL_METADATA ###\n" + meta
	reply, err := r.llm.Chat(ctx, lineageSystemPrompt, fmt.Sprintf(lineageUserTemplate, text))
	if err != nil {
		slog.Debug("lineage: extraction failed", "model", id, "error", err)
		return nil
	}

	var parsed struct {
		Lineage []string `json:"lineage"`
	}
	if err := json.Unmarshal([]byte(reply), &parsed); err != nil {
		return nil
	}

	out := make([]string, 0, len(parsed.Lineage))
	for _, p := range parsed.Lineage {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeID(urlOrID string) string {
	const prefix = "https://huggingface.co/"
	s := strings.TrimSpace(urlOrID)
	s = strings.TrimPrefix(s, prefix)
	return strings.Trim(s, "/")
}
