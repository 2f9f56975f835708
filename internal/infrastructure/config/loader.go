// Package config loads ghask configuration from YAML with environment
// variable overrides.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/ghask/assets"
	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/pkg/filesystem"
	"github.com/doeshing/ghask/internal/ports"
)

// FileLoader loads YAML configuration from ~/.ghask/config.yaml (overridable
// via GHASK_CONFIG). Environment variables take precedence over file values
// so tokens and keys never have to be written to disk.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path means the default
// location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, 0o600); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(applyEnv(cfg)), nil
}

// Path returns the effective config file location.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("GHASK_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(filesystem.AppDir(), "config.yaml")
}

func applyEnv(cfg domain.Config) domain.Config {
	cfg.GitHub.Token = envStr("GITHUB_TOKEN", cfg.GitHub.Token)
	cfg.GitHub.Username = envStr("GITHUB_USERNAME", cfg.GitHub.Username)
	cfg.LLM.APIKey = envStr("GROQ_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = envStr("GROQ_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Model = envStr("LLM_MODEL", cfg.LLM.Model)
	cfg.Preferences.QueryTimeoutSeconds = envInt("GHASK_QUERY_TIMEOUT", cfg.Preferences.QueryTimeoutSeconds)
	cfg.Preferences.OutputFormat = envStr("GHASK_OUTPUT_FORMAT", cfg.Preferences.OutputFormat)
	return cfg
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.GitHub.BaseURL == "" {
		cfg.GitHub.BaseURL = "https://api.github.com"
	}
	if cfg.LLM.BaseURL == "" {
		cfg.LLM.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "llama-3.2-1b-preview"
	}
	if cfg.Preferences.QueryTimeoutSeconds == 0 {
		cfg.Preferences.QueryTimeoutSeconds = 30
	}
	if cfg.Preferences.OutputFormat == "" {
		cfg.Preferences.OutputFormat = domain.OutputFormatConsole
	}
	if cfg.Preferences.SessionCap == 0 {
		cfg.Preferences.SessionCap = domain.DefaultSessionCap
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 60
	}
	if cfg.Cache.MaxEntries == 0 {
		cfg.Cache.MaxEntries = 100
	}
	return cfg
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(filesystem.UserHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
