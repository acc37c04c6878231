package metrics

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const genaiTimeout = 90 * time.Second

// GenAI is a client for an OpenAI-compatible chat-completions endpoint,
// used by the LLM-backed heuristics (performance claims, lineage).
type GenAI struct {
	url    string
	model  string
	apiKey string
	client *http.Client
}

// NewGenAI returns a client for the given endpoint and model.
func NewGenAI(url, model, apiKey string) *GenAI {
	return &GenAI{
		url:    url,
		model:  model,
		apiKey: apiKey,
		client: &http.Client{Timeout: genaiTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Chat sends one system+user exchange and returns the model's reply.
func (g *GenAI) Chat(ctx context.Context, system, user string) (string, error) {
	if g.apiKey == "" {
		return "", errors.New("missing GenAI API key")
	}

	body, err := json.Marshal(chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: 0,
		Stream:      false,
		MaxTokens:   800,
	})
	if err != nil {
		return "", fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request failed: %s", resp.Status)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("decoding chat response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", errors.New("chat response has no choices")
	}
	return cr.Choices[0].Message.Content, nil
}
