package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := map[string]Category{
		"https://huggingface.co/google/gemma-2b":      CategoryModel,
		"https://huggingface.co/datasets/squad":       CategoryDataset,
		"https://huggingface.co/datasets/allenai/c4":  CategoryDataset,
		"https://github.com/huggingface/transformers": CategoryCode,
		"http://github.com/org/repo":                  CategoryCode,
		"https://huggingface.co/bert-base-uncased":    CategoryModel,
		"https://HUGGINGFACE.co/Google/Gemma":         CategoryModel,
		"https://gitlab.com/org/repo":                 CategoryOther,
		"":                                            CategoryOther,
		"   ":                                         CategoryOther,
		"https://example.com/some/path":               CategoryOther,
	}

	for input, expected := range tests {
		assert.Equal(t, expected, Classify(input), "input: %q", input)
	}
}

func TestParseGroup(t *testing.T) {
	s, err := ParseGroup("https://github.com/org/repo,https://huggingface.co/datasets/squad,https://huggingface.co/google/gemma-2b")
	assert.NoError(t, err)
	assert.Equal(t, "https://huggingface.co/google/gemma-2b", s.ModelURL)
	assert.Equal(t, "https://github.com/org/repo", s.CodeURL)
	assert.Equal(t, "https://huggingface.co/datasets/squad", s.DatasetURL)
}

func TestParseGroupModelOnly(t *testing.T) {
	s, err := ParseGroup("https://huggingface.co/google/gemma-2b")
	assert.NoError(t, err)
	assert.Equal(t, "https://huggingface.co/google/gemma-2b", s.ModelURL)
	assert.Empty(t, s.CodeURL)
	assert.Empty(t, s.DatasetURL)
}

func TestParseGroupLastWins(t *testing.T) {
	s, err := ParseGroup("https://huggingface.co/a/first,https://huggingface.co/b/second")
	assert.NoError(t, err)
	assert.Equal(t, "https://huggingface.co/b/second", s.ModelURL)
}

func TestParseGroupNoModel(t *testing.T) {
	_, err := ParseGroup("https://github.com/org/repo,https://huggingface.co/datasets/squad")
	assert.ErrorIs(t, err, ErrNoModelURL)

	_, err = ParseGroup("")
	assert.ErrorIs(t, err, ErrNoModelURL)

	_, err = ParseGroup(" , , ")
	assert.ErrorIs(t, err, ErrNoModelURL)
}

func TestParseGroupIgnoresUnknown(t *testing.T) {
	s, err := ParseGroup("https://example.com/x,https://huggingface.co/google/gemma-2b")
	assert.NoError(t, err)
	assert.Equal(t, "https://huggingface.co/google/gemma-2b", s.ModelURL)
	assert.Empty(t, s.CodeURL)
}
