package cli

import (
	"testing"

	"github.com/modelgrade/mgrade/pkg/config"
	"github.com/modelgrade/mgrade/pkg/logging"
	"github.com/stretchr/testify/assert"
)

func TestNewApp(t *testing.T) {
	app := newApp()

	assert.Equal(t, appName, app.Name)
	assert.NotNil(t, app.Before)
	assert.NotNil(t, app.After)

	names := make(map[string]bool, len(app.Commands))
	for _, cmd := range app.Commands {
		names[cmd.Name] = true
	}
	for _, expected := range []string{"grade", "tree", "inspect", "auth"} {
		assert.True(t, names[expected], "missing command %s", expected)
	}
}

func TestLogLevelDefaultsToInfo(t *testing.T) {
	assert.Equal(t, logging.LevelInfo, logging.ParseLevel(logLevelFlag.Value))
}

func TestTokenName(t *testing.T) {
	n, err := tokenName("github")
	assert.NoError(t, err)
	assert.NotEmpty(t, n)

	n, err = tokenName("genai")
	assert.NoError(t, err)
	assert.NotEmpty(t, n)

	_, err = tokenName("aws")
	assert.Error(t, err)
}

func TestNewGateThreshold(t *testing.T) {
	g, err := newGate(&appConfig{Conf: &config.Config{IngestThreshold: 0.5}})
	assert.NoError(t, err)
	assert.NotNil(t, g)
}

func TestNewGatePolicy(t *testing.T) {
	g, err := newGate(&appConfig{Conf: &config.Config{IngestPolicy: "net_score >= 0.5"}})
	assert.NoError(t, err)
	assert.NotNil(t, g)

	_, err = newGate(&appConfig{Conf: &config.Config{IngestPolicy: "net_score >="}})
	assert.Error(t, err)
}

func TestBuildEngineAppliesWeightOverrides(t *testing.T) {
	cfg := &appConfig{
		HomeDir: t.TempDir(),
		Conf: &config.Config{
			Weights:    map[string]float64{"license": 0.5},
			HubBaseURL: "http://localhost:1",
			GenAIURL:   "http://localhost:1",
			GenAIModel: "test",
		},
	}

	eng, hub, llm := buildEngine(cfg)
	assert.NotNil(t, eng)
	assert.NotNil(t, hub)
	assert.NotNil(t, llm)
}
