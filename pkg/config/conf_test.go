package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadOrCreateWritesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "home")

	c, err := ReadOrCreate(dir)
	assert.NoError(t, err)
	assert.NotNil(t, c)

	assert.FileExists(t, filepath.Join(dir, configFileName))
	assert.Equal(t, 0.5, c.IngestThreshold)
	assert.Equal(t, "https://huggingface.co", c.HubBaseURL)
	assert.NotEmpty(t, c.GenAIURL)
	assert.NotEmpty(t, c.GenAIModel)
	assert.Empty(t, c.IngestPolicy)
	assert.Empty(t, c.ResultsBucket)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()

	in := &Config{
		Weights:         map[string]float64{"license": 0.5},
		IngestThreshold: 0.8,
		IngestPolicy:    "net_score >= 0.7",
		HubBaseURL:      "http://localhost:8081",
		GenAIURL:        "http://localhost:8082",
		GenAIModel:      "test-model",
		ResultsBucket:   "grades",
	}
	assert.NoError(t, Save(dir, in))

	out, err := ReadOrCreate(dir)
	assert.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadOrCreateAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("results_bucket: b\n"), 0600))

	c, err := ReadOrCreate(dir)
	assert.NoError(t, err)
	assert.Equal(t, "b", c.ResultsBucket)
	assert.Equal(t, 0.5, c.IngestThreshold)
	assert.Equal(t, "https://huggingface.co", c.HubBaseURL)
}

func TestReadOrCreateInvalidArgs(t *testing.T) {
	_, err := ReadOrCreate("")
	assert.Error(t, err)

	assert.Error(t, Save("", &Config{}))
	assert.Error(t, Save(t.TempDir(), nil))
}

func TestReadOrCreateMalformedFile(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("{not yaml"), 0600))

	_, err := ReadOrCreate(dir)
	assert.Error(t, err)
}
