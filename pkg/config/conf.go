package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600
)

// Config represents the app config object. Zero-value fields fall back
// to the defaults below at read time.
type Config struct {
	// Weights override the net score weight table.
	Weights map[string]float64 `yaml:"weights,omitempty"`

	// IngestThreshold is the minimum per-metric score for ingestion.
	IngestThreshold float64 `yaml:"ingest_threshold"`

	// IngestPolicy is an optional boolean expression replacing the
	// threshold rule, e.g. "net_score >= 0.5 && license == 1.0".
	IngestPolicy string `yaml:"ingest_policy,omitempty"`

	// HubBaseURL points at the Hugging Face hub (overridable in tests).
	HubBaseURL string `yaml:"hub_base_url"`

	// GenAIURL and GenAIModel configure the chat-completions endpoint
	// used by the performance-claims and lineage heuristics.
	GenAIURL   string `yaml:"genai_url"`
	GenAIModel string `yaml:"genai_model"`

	// ResultsBucket is the optional S3 bucket for best-effort result
	// uploads. Empty disables uploading.
	ResultsBucket string `yaml:"results_bucket,omitempty"`
}

func getDefaultConfig() *Config {
	return &Config{
		IngestThreshold: 0.5,
		HubBaseURL:      "https://huggingface.co",
		GenAIURL:        "https://genai.rcac.purdue.edu/api/chat/completions",
		GenAIModel:      "llama3.1:latest",
	}
}

// Save writes the config into dirPath/config.yaml.
func Save(dirPath string, c *Config) error {
	if dirPath == "" {
		return errors.New("config directory required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	path := filepath.Join(dirPath, configFileName)
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// ReadOrCreate reads the app config from dirPath, creating the directory
// and a default config file when they don't exist yet.
func ReadOrCreate(dirPath string) (*Config, error) {
	if dirPath == "" {
		return nil, errors.New("config directory required")
	}

	if _, err := os.Stat(dirPath); errors.Is(err, os.ErrNotExist) {
		if err := os.MkdirAll(dirPath, dirMode); err != nil {
			return nil, fmt.Errorf("failed to create dir %s: %w", dirPath, err)
		}
	}

	path := filepath.Join(dirPath, configFileName)

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Save(dirPath, getDefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file %s: %w", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file %s: %w", path, err)
	}
	applyDefaults(&c)
	return &c, nil
}

func applyDefaults(c *Config) {
	def := getDefaultConfig()
	if c.IngestThreshold == 0 {
		c.IngestThreshold = def.IngestThreshold
	}
	if c.HubBaseURL == "" {
		c.HubBaseURL = def.HubBaseURL
	}
	if c.GenAIURL == "" {
		c.GenAIURL = def.GenAIURL
	}
	if c.GenAIModel == "" {
		c.GenAIModel = def.GenAIModel
	}
}

// GetOrCreateHomeDir returns the app's home directory for the current
// user, creating it when missing. The created flag reports creation.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get user home dir: %w", err)
	}

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, fmt.Errorf("failed to create dir %s: %w", dir, err)
		}
		created = true
	}
	return dir, created, nil
}
