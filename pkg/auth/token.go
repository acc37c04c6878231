// Package auth resolves and stores the access tokens the metric
// heuristics need: a GitHub token for API headroom and the GenAI key for
// LLM-backed scoring. Tokens live in the OS keychain with env-var and
// file fallbacks.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "mgrade"

	// TokenGitHub and TokenGenAI are the token names this package manages.
	TokenGitHub = "github_token"
	TokenGenAI  = "genai_api_key"

	// Env vars consulted when the keychain has no entry.
	EnvGitHubToken = "GITHUB_TOKEN"
	EnvGenAIKey    = "GEN_AI_STUDIO_API_KEY"

	fileMode = 0600
)

var envVarFor = map[string]string{
	TokenGitHub: EnvGitHubToken,
	TokenGenAI:  EnvGenAIKey,
}

// Save stores a token in the OS keychain, falling back to a file in
// homeDir when the keychain is unavailable.
func Save(homeDir, name, token string) error {
	if name == "" || token == "" {
		return errors.New("token name and value are required")
	}

	if err := keyring.Set(keyringService, name, token); err != nil {
		slog.Warn("keychain unavailable, falling back to file", "error", err)
		return saveFile(homeDir, name, token)
	}

	// Clean up a legacy file copy if one exists.
	os.Remove(filepath.Join(homeDir, name))

	return nil
}

// Resolve returns the named token, consulting the keychain, then the
// environment, then a file in homeDir. An empty string means the token
// is not configured anywhere; callers treat that as anonymous access.
func Resolve(homeDir, name string) string {
	if token, err := keyring.Get(keyringService, name); err == nil && token != "" {
		return token
	}

	if env := envVarFor[name]; env != "" {
		if token := strings.TrimSpace(os.Getenv(env)); token != "" {
			return token
		}
	}

	b, err := os.ReadFile(filepath.Join(homeDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

// Delete removes the named token from the keychain and the file fallback.
func Delete(homeDir, name string) error {
	kerr := keyring.Delete(keyringService, name)
	ferr := os.Remove(filepath.Join(homeDir, name))
	if kerr != nil && ferr != nil {
		return fmt.Errorf("token %s not found", name)
	}
	return nil
}

func saveFile(homeDir, name, token string) error {
	if homeDir == "" {
		return errors.New("home directory required for file fallback")
	}
	path := filepath.Join(homeDir, name)
	if err := os.WriteFile(path, []byte(token), fileMode); err != nil {
		return fmt.Errorf("writing token file %s: %w", path, err)
	}
	return nil
}
