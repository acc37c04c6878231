package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/modelgrade/mgrade/pkg/net"
)

const (
	// DefaultHubBaseURL is the public Hugging Face hub.
	DefaultHubBaseURL = "https://huggingface.co"

	readmeMaxChars = 30000
)

var errInvalidModelURL = errors.New("not a Hugging Face repo URL")

// Hub is a minimal Hugging Face hub API client. The base URL is
// injectable so tests can point it at a local server.
type Hub struct {
	baseURL string
	client  *http.Client
}

// NewHub returns a hub client. An empty baseURL selects the public hub.
func NewHub(baseURL string, client *http.Client) *Hub {
	if baseURL == "" {
		baseURL = DefaultHubBaseURL
	}
	if client == nil {
		client = net.Client()
	}
	return &Hub{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// HubSibling is one file entry in a hub repo listing.
type HubSibling struct {
	Rfilename string `json:"rfilename"`
	Size      int64  `json:"size"`
}

// HubModel is the subset of the model metadata the heuristics read.
type HubModel struct {
	ID        string         `json:"id"`
	Downloads int64          `json:"downloads"`
	CardData  map[string]any `json:"cardData"`
	Siblings  []HubSibling   `json:"siblings"`
}

// HubDataset is the subset of the dataset metadata the heuristics read.
type HubDataset struct {
	ID       string         `json:"id"`
	CardData map[string]any `json:"cardData"`
	Siblings []HubSibling   `json:"siblings"`
}

// HubCommitAuthor identifies one author of a hub commit.
type HubCommitAuthor struct {
	User string `json:"user"`
}

// HubCommit is one entry of a repo's commit history.
type HubCommit struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Authors []HubCommitAuthor `json:"authors"`
}

// RepoID extracts "owner/name" (or a bare "name" for top-level repos)
// from a hub URL. Reserved path segments marking file and view pages are
// cut off, and dataset/space prefixes are stripped.
func RepoID(rawURL string) (string, error) {
	parts := repoParts(rawURL)
	if len(parts) == 0 {
		return "", errInvalidModelURL
	}
	return strings.Join(parts, "/"), nil
}

// reserved path segments that indicate we've gone past the repo id
// into files or views.
var reservedSegments = map[string]bool{
	"resolve":     true,
	"blob":        true,
	"tree":        true,
	"commit":      true,
	"commits":     true,
	"discussions": true,
	"revision":    true,
	"files":       true,
}

func repoParts(rawURL string) []string {
	s := strings.TrimSpace(rawURL)
	if s == "" {
		return nil
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil {
		return nil
	}

	parts := make([]string, 0, 4)
	for _, p := range strings.Split(u.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return nil
	}

	// Landing pages such as /models or /datasets are not repos.
	if len(parts) == 1 {
		switch strings.ToLower(parts[0]) {
		case "models", "datasets", "spaces":
			return nil
		}
	}

	for i, p := range parts {
		if reservedSegments[strings.ToLower(p)] {
			parts = parts[:i]
			break
		}
	}

	if len(parts) > 0 {
		switch strings.ToLower(parts[0]) {
		case "datasets", "spaces":
			parts = parts[1:]
		}
	}

	// Keep at most owner/name.
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return parts
}

// Model fetches hub metadata for a model repo.
func (h *Hub) Model(ctx context.Context, id string) (*HubModel, error) {
	var m HubModel
	u := fmt.Sprintf("%s/api/models/%s", h.baseURL, id)
	if err := net.GetJSON(ctx, h.client, u, &m); err != nil {
		return nil, fmt.Errorf("fetching model %s: %w", id, err)
	}
	return &m, nil
}

// Dataset fetches hub metadata for a dataset repo.
func (h *Hub) Dataset(ctx context.Context, id string) (*HubDataset, error) {
	var d HubDataset
	u := fmt.Sprintf("%s/api/datasets/%s", h.baseURL, id)
	if err := net.GetJSON(ctx, h.client, u, &d); err != nil {
		return nil, fmt.Errorf("fetching dataset %s: %w", id, err)
	}
	return &d, nil
}

// Commits fetches the commit history of a model repo's main revision.
func (h *Hub) Commits(ctx context.Context, id string) ([]HubCommit, error) {
	var commits []HubCommit
	u := fmt.Sprintf("%s/api/models/%s/commits/main", h.baseURL, id)
	if err := net.GetJSON(ctx, h.client, u, &commits); err != nil {
		return nil, fmt.Errorf("fetching commits for %s: %w", id, err)
	}
	return commits, nil
}

// RawFile fetches a file from the repo's main revision. Missing files
// yield an empty string without error.
func (h *Hub) RawFile(ctx context.Context, id, path string) (string, error) {
	u := fmt.Sprintf("%s/%s/raw/main/%s", h.baseURL, id, path)
	return net.GetText(ctx, h.client, u)
}

// Readme returns the model card text, preferring the cardData content
// embedded in the API response and falling back to the raw README.md.
// The result is truncated to a bounded length for LLM consumption.
func (h *Hub) Readme(ctx context.Context, id string) (string, error) {
	m, err := h.Model(ctx, id)
	if err != nil {
		return "", err
	}

	readme, _ := m.CardData["content"].(string)
	if readme == "" {
		readme, err = h.RawFile(ctx, id, "README.md")
		if err != nil {
			return "", err
		}
	}

	if r := []rune(readme); len(r) > readmeMaxChars {
		readme = string(r[:readmeMaxChars])
	}
	return readme, nil
}
