package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func testHub(t *testing.T, handler http.Handler) *Hub {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHub(srv.URL, srv.Client())
}

func TestRepoID(t *testing.T) {
	tests := map[string]string{
		"https://huggingface.co/google/gemma-2b":                     "google/gemma-2b",
		"https://huggingface.co/google/gemma-2b/tree/main":           "google/gemma-2b",
		"https://huggingface.co/google/gemma-2b/blob/main/README.md": "google/gemma-2b",
		"https://huggingface.co/google/gemma-2b/resolve/main/x.bin":  "google/gemma-2b",
		"huggingface.co/bert-base-uncased":                           "bert-base-uncased",
		"https://huggingface.co/datasets/allenai/c4":                 "allenai/c4",
		"https://huggingface.co/spaces/org/app":                      "org/app",
		"https://huggingface.co/a/b/c/d":                             "a/b",
	}

	for input, expected := range tests {
		id, err := RepoID(input)
		assert.NoError(t, err, "input: %q", input)
		assert.Equal(t, expected, id, "input: %q", input)
	}
}

func TestRepoIDInvalid(t *testing.T) {
	for _, input := range []string{
		"",
		"   ",
		"https://huggingface.co/",
		"https://huggingface.co/models",
		"https://huggingface.co/datasets",
		"https://huggingface.co/spaces",
	} {
		_, err := RepoID(input)
		assert.Error(t, err, "input: %q", input)
	}
}

func TestHubModel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/google/gemma-2b", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":"google/gemma-2b","downloads":12345,"siblings":[{"rfilename":"model.safetensors","size":1024}]}`))
	})
	hub := testHub(t, mux)

	m, err := hub.Model(context.Background(), "google/gemma-2b")
	assert.NoError(t, err)
	assert.Equal(t, "google/gemma-2b", m.ID)
	assert.Equal(t, int64(12345), m.Downloads)
	assert.Len(t, m.Siblings, 1)
	assert.Equal(t, int64(1024), m.Siblings[0].Size)
}

func TestHubModelNotFound(t *testing.T) {
	hub := testHub(t, http.NotFoundHandler())

	_, err := hub.Model(context.Background(), "missing/repo")
	assert.Error(t, err)
}

func TestHubCommits(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/org/model/commits/main", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"id":"abc","title":"init","authors":[{"user":"alice"}]}]`))
	})
	hub := testHub(t, mux)

	commits, err := hub.Commits(context.Background(), "org/model")
	assert.NoError(t, err)
	assert.Len(t, commits, 1)
	assert.Equal(t, "alice", commits[0].Authors[0].User)
}

func TestHubReadmeFromCardData(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/org/model", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":"org/model","cardData":{"content":"# Model Card"}}`))
	})
	hub := testHub(t, mux)

	readme, err := hub.Readme(context.Background(), "org/model")
	assert.NoError(t, err)
	assert.Equal(t, "# Model Card", readme)
}

func TestHubReadmeFallsBackToRawFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/org/model", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":"org/model"}`))
	})
	mux.HandleFunc("/org/model/raw/main/README.md", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("raw readme"))
	})
	hub := testHub(t, mux)

	readme, err := hub.Readme(context.Background(), "org/model")
	assert.NoError(t, err)
	assert.Equal(t, "raw readme", readme)
}

func TestHubReadmeTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", readmeMaxChars+100)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/org/model", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":"org/model"}`))
	})
	mux.HandleFunc("/org/model/raw/main/README.md", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(long))
	})
	hub := testHub(t, mux)

	readme, err := hub.Readme(context.Background(), "org/model")
	assert.NoError(t, err)
	assert.Equal(t, readmeMaxChars, utf8.RuneCountInString(readme))
	assert.True(t, utf8.ValidString(readme))
}

func TestHubRawFileMissingIsEmpty(t *testing.T) {
	hub := testHub(t, http.NotFoundHandler())

	s, err := hub.RawFile(context.Background(), "org/model", "config.json")
	assert.NoError(t, err)
	assert.Empty(t, s)
}
