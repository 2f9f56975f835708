package domain

import "time"

// Config mirrors ~/.ghask/config.yaml. Secrets (GitHub token, LLM API key)
// are normally supplied through environment variables and overlaid by the
// loader; the YAML fields exist for setups that keep them on disk.
type Config struct {
	ConfigFormatVersion string         `yaml:"config_format_version"`
	GitHub              GitHubSettings `yaml:"github"`
	LLM                 LLMSettings    `yaml:"llm"`
	Preferences         Preferences    `yaml:"preferences"`
	Cache               CacheSettings  `yaml:"cache"`
}

// GitHubSettings configures the repository host adapter.
type GitHubSettings struct {
	BaseURL  string `yaml:"base_url"`
	Token    string `yaml:"token,omitempty"`
	Username string `yaml:"username,omitempty"`
}

// LLMSettings configures the completion provider (OpenAI-compatible API).
type LLMSettings struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key,omitempty"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// Preferences captures user-level toggles.
type Preferences struct {
	QueryTimeoutSeconds int    `yaml:"query_timeout"`
	OutputFormat        string `yaml:"output_format"`
	SessionCap          int    `yaml:"session_cap"`
}

// CacheSettings controls the classification cache.
type CacheSettings struct {
	Enabled    bool `yaml:"enabled"`
	TTLMinutes int  `yaml:"ttl_minutes"`
	MaxEntries int  `yaml:"max_entries"`
}

// Output formats accepted by Preferences.OutputFormat.
const (
	OutputFormatConsole = "console"
	OutputFormatCSV     = "csv"
)

// QueryTimeout returns the configured per-query timeout as a duration.
func (p Preferences) QueryTimeout() time.Duration {
	return time.Duration(p.QueryTimeoutSeconds) * time.Second
}

// CacheTTL returns the configured cache entry lifetime.
func (c CacheSettings) CacheTTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}
