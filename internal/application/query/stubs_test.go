package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/doeshing/ghask/internal/domain"
)

type stubProvider struct {
	response    string
	err         error
	calls       int
	messages    []domain.ConversationTurn
	temperature float64
}

func (s *stubProvider) Complete(_ context.Context, messages []domain.ConversationTurn, temperature float64) (string, error) {
	s.calls++
	s.messages = messages
	s.temperature = temperature
	return s.response, s.err
}

type stubCache struct {
	entries map[string]domain.CacheEntry
	sets    int
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string]domain.CacheEntry{}}
}

func (s *stubCache) Get(key string) (domain.CacheEntry, bool, error) {
	entry, ok := s.entries[key]
	return entry, ok, nil
}

func (s *stubCache) Set(entry domain.CacheEntry) error {
	s.sets++
	s.entries[entry.Key] = entry
	return nil
}

func (s *stubCache) Entries() ([]domain.CacheEntry, error) {
	out := make([]domain.CacheEntry, 0, len(s.entries))
	for _, entry := range s.entries {
		out = append(out, entry)
	}
	return out, nil
}

func (s *stubCache) Clear() error {
	s.entries = map[string]domain.CacheEntry{}
	return nil
}

type stubRenderer struct {
	tables     []domain.Table
	infos      []string
	warnings   []string
	errors     []string
	narrations []string
}

func (s *stubRenderer) Table(table domain.Table) { s.tables = append(s.tables, table) }
func (s *stubRenderer) Info(msg string)          { s.infos = append(s.infos, msg) }
func (s *stubRenderer) Warn(msg string)          { s.warnings = append(s.warnings, msg) }
func (s *stubRenderer) Error(msg string)         { s.errors = append(s.errors, msg) }
func (s *stubRenderer) Narration(msg string)     { s.narrations = append(s.narrations, msg) }

type stubPrompter struct {
	answers map[string]string
	asked   []string
	err     error
}

func (s *stubPrompter) Ask(name, _ string) (string, error) {
	s.asked = append(s.asked, name)
	if s.err != nil {
		return "", s.err
	}
	return s.answers[name], nil
}

func (s *stubPrompter) Enabled() bool { return true }

type stubHistory struct {
	records []domain.QueryRecord
	err     error
}

func (s *stubHistory) Save(record domain.QueryRecord) error {
	if s.err != nil {
		return s.err
	}
	s.records = append(s.records, record)
	return nil
}

func (s *stubHistory) Records(int, string) ([]domain.QueryRecord, error) { return s.records, nil }
func (s *stubHistory) Clear() error                                      { s.records = nil; return nil }

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

// stubHost records which operation ran and returns canned data.
type stubHost struct {
	lastOp   string
	lastArgs map[string]string
	err      error

	repositories []domain.Repository
	contributors []domain.Contributor
	commits      []domain.Commit
	pullRequests []domain.PullRequest
	searchResult domain.RepositorySearchResult
	branch       domain.Branch
	weeklyTotal  int
	stats        []domain.ContributorStat
	issues       []domain.Issue
	issueResult  domain.IssueSearchResult
}

func (s *stubHost) record(op string, args map[string]string) {
	s.lastOp = op
	s.lastArgs = args
}

func (s *stubHost) Contributors(_ context.Context, owner, repo string) ([]domain.Contributor, error) {
	s.record("contributors", map[string]string{"owner": owner, "repo": repo})
	return s.contributors, s.err
}

func (s *stubHost) CommitHistory(_ context.Context, owner, repo, branch string, count int) ([]domain.Commit, error) {
	s.record("commit_history", map[string]string{"owner": owner, "repo": repo, "branch": branch, "count": fmt.Sprint(count)})
	return s.commits, s.err
}

func (s *stubHost) RecentMergedPRs(_ context.Context, owner, repo string, count int) ([]domain.PullRequest, error) {
	s.record("recent_merged_prs", map[string]string{"owner": owner, "repo": repo, "count": fmt.Sprint(count)})
	return s.pullRequests, s.err
}

func (s *stubHost) UserRepositories(_ context.Context, username string) ([]domain.Repository, error) {
	s.record("user_repositories", map[string]string{"username": username})
	return s.repositories, s.err
}

func (s *stubHost) SearchRepositories(_ context.Context, query, sort, order string, count int) (domain.RepositorySearchResult, error) {
	s.record("search_repositories", map[string]string{"query": query, "sort": sort, "order": order, "count": fmt.Sprint(count)})
	return s.searchResult, s.err
}

func (s *stubHost) LatestBranch(_ context.Context, owner, repo string) (domain.Branch, error) {
	s.record("latest_branch", map[string]string{"owner": owner, "repo": repo})
	return s.branch, s.err
}

func (s *stubHost) WeeklyCommits(_ context.Context, owner, repo string) (int, error) {
	s.record("weekly_commits", map[string]string{"owner": owner, "repo": repo})
	return s.weeklyTotal, s.err
}

func (s *stubHost) ContributorStats(_ context.Context, owner, repo string) ([]domain.ContributorStat, error) {
	s.record("contributor_stats", map[string]string{"owner": owner, "repo": repo})
	return s.stats, s.err
}

func (s *stubHost) Issues(_ context.Context, owner, repo, state string, count int) ([]domain.Issue, error) {
	s.record("issues", map[string]string{"owner": owner, "repo": repo, "state": state, "count": fmt.Sprint(count)})
	return s.issues, s.err
}

func (s *stubHost) SearchIssues(_ context.Context, query string, count int) (domain.IssueSearchResult, error) {
	s.record("search_issues", map[string]string{"query": query, "count": fmt.Sprint(count)})
	return s.issueResult, s.err
}

var errStubDown = errors.New("stub provider down")
