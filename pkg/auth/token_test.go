package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zalando/go-keyring"
)

func TestMain(m *testing.M) {
	keyring.MockInit()
	os.Exit(m.Run())
}

func TestSaveAndResolve(t *testing.T) {
	home := t.TempDir()

	assert.NoError(t, Save(home, TokenGitHub, "tok-123"))
	assert.Equal(t, "tok-123", Resolve(home, TokenGitHub))

	assert.NoError(t, Delete(home, TokenGitHub))
	assert.Empty(t, Resolve(home, TokenGitHub))
}

func TestSaveRequiresNameAndValue(t *testing.T) {
	assert.Error(t, Save(t.TempDir(), "", "tok"))
	assert.Error(t, Save(t.TempDir(), TokenGitHub, ""))
}

func TestResolveFromEnv(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvGenAIKey, "env-key")

	assert.Equal(t, "env-key", Resolve(home, TokenGenAI))
}

func TestResolveFromFile(t *testing.T) {
	home := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(home, TokenGenAI), []byte("file-key\n"), 0600))

	assert.Equal(t, "file-key", Resolve(home, TokenGenAI))
}

func TestResolveMissing(t *testing.T) {
	assert.Empty(t, Resolve(t.TempDir(), TokenGenAI))
}

func TestDeleteMissing(t *testing.T) {
	assert.Error(t, Delete(t.TempDir(), "nonexistent_token"))
}
