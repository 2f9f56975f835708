// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). Following the Ports and Adapters
// (Hexagonal) pattern, these interfaces allow the intent-resolution engine to
// remain independent of the concrete GitHub client, LLM transport, console
// rendering, and storage implementations.
package ports

import (
	"context"

	"github.com/doeshing/ghask/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.ghask/config.yaml and overlay
// environment variables.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// CompletionProvider is the remote language-model transport: messages in,
// text out, failable. Classification and narration both go through it.
type CompletionProvider interface {
	Complete(ctx context.Context, messages []domain.ConversationTurn, temperature float64) (string, error)
}

// RepositoryHost is the remote data source for repository records. Every
// method maps onto a fixed GitHub REST endpoint; non-2xx responses surface
// as errors.
type RepositoryHost interface {
	Contributors(ctx context.Context, owner, repo string) ([]domain.Contributor, error)
	CommitHistory(ctx context.Context, owner, repo, branch string, count int) ([]domain.Commit, error)
	RecentMergedPRs(ctx context.Context, owner, repo string, count int) ([]domain.PullRequest, error)
	UserRepositories(ctx context.Context, username string) ([]domain.Repository, error)
	SearchRepositories(ctx context.Context, query, sort, order string, count int) (domain.RepositorySearchResult, error)
	LatestBranch(ctx context.Context, owner, repo string) (domain.Branch, error)
	WeeklyCommits(ctx context.Context, owner, repo string) (int, error)
	ContributorStats(ctx context.Context, owner, repo string) ([]domain.ContributorStat, error)
	Issues(ctx context.Context, owner, repo, state string, count int) ([]domain.Issue, error)
	SearchIssues(ctx context.Context, query string, count int) (domain.IssueSearchResult, error)
}

// ParameterPrompter solicits missing intent parameters from the user. Ask
// blocks until a line of input is available.
type ParameterPrompter interface {
	Ask(name, description string) (string, error)
	Enabled() bool
}

// Renderer is the presentation surface: tables plus labeled status lines.
// Rendering is a side effect of dispatch, never part of the result value.
type Renderer interface {
	Table(table domain.Table)
	Info(msg string)
	Warn(msg string)
	Error(msg string)
	Narration(msg string)
}

// HistoryRepository persists resolved-query records across restarts.
type HistoryRepository interface {
	Save(record domain.QueryRecord) error
	Records(limit int, search string) ([]domain.QueryRecord, error)
	Clear() error
}

// CacheRepository stores classification results keyed by query hash.
type CacheRepository interface {
	Get(key string) (domain.CacheEntry, bool, error)
	Set(entry domain.CacheEntry) error
	Entries() ([]domain.CacheEntry, error)
	Clear() error
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files, external
// services).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
