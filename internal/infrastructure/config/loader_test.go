package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/ghask/internal/domain"
)

func TestLoadWritesDefaultConfigOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)

	_, statErr := os.Stat(path)
	assert.NoError(t, statErr, "default config file should be written")

	assert.Equal(t, "https://api.github.com", cfg.GitHub.BaseURL)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 30, cfg.Preferences.QueryTimeoutSeconds)
	assert.Equal(t, domain.OutputFormatConsole, cfg.Preferences.OutputFormat)
	assert.Equal(t, domain.DefaultSessionCap, cfg.Preferences.SessionCap)
}

func TestLoadReadsFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
github:
  username: octocat
llm:
  model: llama-3.3-70b-versatile
preferences:
  query_timeout: 90
  output_format: csv
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "octocat", cfg.GitHub.Username)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.Equal(t, 90, cfg.Preferences.QueryTimeoutSeconds)
	assert.Equal(t, 90*time.Second, cfg.Preferences.QueryTimeout())
	assert.Equal(t, domain.OutputFormatCSV, cfg.Preferences.OutputFormat)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
github:
  token: from-file
  username: from-file
preferences:
  query_timeout: 15
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("GITHUB_TOKEN", "from-env")
	t.Setenv("GITHUB_USERNAME", "env-user")
	t.Setenv("GHASK_QUERY_TIMEOUT", "45")

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GitHub.Token)
	assert.Equal(t, "env-user", cfg.GitHub.Username)
	assert.Equal(t, 45, cfg.Preferences.QueryTimeoutSeconds)
}

func TestGHASKConfigEnvSelectsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("github:\n  username: custom\n"), 0o600))

	t.Setenv("GHASK_CONFIG", path)

	loader := NewFileLoader("")
	assert.Equal(t, path, loader.Path())

	cfg, err := loader.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "custom", cfg.GitHub.Username)
}

func TestInvalidEnvIntIgnored(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("GHASK_QUERY_TIMEOUT", "not-a-number")

	cfg, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Preferences.QueryTimeoutSeconds)
}
