package metrics

import (
	"context"
	"net/http"
	"testing"

	"github.com/modelgrade/mgrade/pkg/score"
	"github.com/stretchr/testify/assert"
)

func TestBusFactorBalancedAuthors(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/org/model/commits/main", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"id":"a","title":"one","authors":[{"user":"alice"}]},
			{"id":"b","title":"two","authors":[{"user":"bob"}]}
		]`))
	})
	mux.HandleFunc("/api/models/org/model", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":"org/model","downloads":0}`))
	})
	hub := testHub(t, mux)

	v, err := BusFactor(hub)(context.Background(), score.Subject{ModelURL: "https://huggingface.co/org/model"})
	assert.NoError(t, err)
	// Perfectly balanced entropy with no download/file sweetener: 1/2.5.
	assert.InDelta(t, 0.4, v.Score, 1e-9)
}

func TestBusFactorSingleAuthor(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/org/model/commits/main", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"id":"a","title":"one","authors":[{"user":"alice"}]}]`))
	})
	hub := testHub(t, mux)

	v, err := BusFactor(hub)(context.Background(), score.Subject{ModelURL: "https://huggingface.co/org/model"})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, v.Score)
}

func TestBusFactorClampsSweetener(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/models/org/model/commits/main", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[
			{"id":"a","title":"one","authors":[{"user":"alice"}]},
			{"id":"b","title":"two","authors":[{"user":"bob"}]}
		]`))
	})
	mux.HandleFunc("/api/models/org/model", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"id":"org/model","downloads":1000000,"siblings":[{"rfilename":"a"},{"rfilename":"b"}]}`))
	})
	hub := testHub(t, mux)

	v, err := BusFactor(hub)(context.Background(), score.Subject{ModelURL: "https://huggingface.co/org/model"})
	assert.NoError(t, err)
	assert.Equal(t, 1.0, v.Score)
}

func TestBusFactorEmptyAndInvalidURL(t *testing.T) {
	hub := testHub(t, http.NotFoundHandler())

	v, err := BusFactor(hub)(context.Background(), score.Subject{})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, v.Score)
	assert.Equal(t, int64(0), v.Latency)
}

func TestBusFactorFetchFailure(t *testing.T) {
	hub := testHub(t, http.NotFoundHandler())

	v, err := BusFactor(hub)(context.Background(), score.Subject{ModelURL: "https://huggingface.co/org/model"})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, v.Score)
}
