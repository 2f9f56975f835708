// Package github provides the remote data source adapter: parameterized GET
// calls against fixed GitHub REST v3 endpoint templates. Non-2xx responses
// surface as errors; all record decoding happens here so the application
// layer only sees typed domain records.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/ports"
)

// Client is a thin GitHub REST v3 client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient builds a client from configuration. An empty token is allowed;
// unauthenticated requests are simply rate-limited harder by GitHub.
func NewClient(settings domain.GitHubSettings, timeout time.Duration) *Client {
	base := settings.BaseURL
	if base == "" {
		base = "https://api.github.com"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		token:      settings.Token,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	target := c.baseURL + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response for %s: %w", endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GitHub API %d for %s: %s", resp.StatusCode, endpoint, bodySnippet(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response for %s: %w", endpoint, err)
	}
	return nil
}

// Contributors implements ports.RepositoryHost.
func (c *Client) Contributors(ctx context.Context, owner, repo string) ([]domain.Contributor, error) {
	var contributors []domain.Contributor
	err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/contributors", owner, repo), nil, &contributors)
	return contributors, err
}

// CommitHistory returns up to count commits from the given branch.
func (c *Client) CommitHistory(ctx context.Context, owner, repo, branch string, count int) ([]domain.Commit, error) {
	params := url.Values{}
	params.Set("sha", branch)
	params.Set("per_page", strconv.Itoa(count))
	var commits []domain.Commit
	err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits", owner, repo), params, &commits)
	return commits, err
}

// RecentMergedPRs fetches one page of closed pull requests, keeps only those
// with a merge timestamp, and refetches full detail per survivor. The
// returned count may therefore be less than the requested page size.
func (c *Client) RecentMergedPRs(ctx context.Context, owner, repo string, count int) ([]domain.PullRequest, error) {
	params := url.Values{}
	params.Set("state", "closed")
	params.Set("per_page", strconv.Itoa(count))
	var closed []domain.PullRequest
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/pulls", owner, repo), params, &closed); err != nil {
		return nil, err
	}

	var merged []domain.PullRequest
	for _, pr := range closed {
		if !pr.Merged() {
			continue
		}
		var detail domain.PullRequest
		if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/pulls/%d", owner, repo, pr.Number), nil, &detail); err != nil {
			return nil, err
		}
		merged = append(merged, detail)
	}
	return merged, nil
}

// UserRepositories lists the public repositories of a user.
func (c *Client) UserRepositories(ctx context.Context, username string) ([]domain.Repository, error) {
	var repos []domain.Repository
	err := c.get(ctx, fmt.Sprintf("/users/%s/repos", username), nil, &repos)
	return repos, err
}

// SearchRepositories searches repositories across GitHub.
func (c *Client) SearchRepositories(ctx context.Context, query, sort, order string, count int) (domain.RepositorySearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("sort", sort)
	params.Set("order", order)
	params.Set("per_page", strconv.Itoa(count))
	var result domain.RepositorySearchResult
	err := c.get(ctx, "/search/repositories", params, &result)
	return result, err
}

// LatestBranch finds the branch whose head commit is the most recent. Each
// branch head is fetched individually; commit dates compare correctly as
// RFC 3339 strings.
func (c *Client) LatestBranch(ctx context.Context, owner, repo string) (domain.Branch, error) {
	var branches []domain.Branch
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/branches", owner, repo), nil, &branches); err != nil {
		return domain.Branch{}, err
	}
	if len(branches) == 0 {
		return domain.Branch{}, fmt.Errorf("repository %s/%s has no branches", owner, repo)
	}

	var latest domain.Branch
	var latestDate string
	for _, branch := range branches {
		var head domain.Commit
		if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/commits/%s", owner, repo, branch.Commit.SHA), nil, &head); err != nil {
			return domain.Branch{}, err
		}
		if date := head.Commit.Author.Date; latestDate == "" || date > latestDate {
			latestDate = date
			latest = branch
		}
	}
	return latest, nil
}

// WeeklyCommits returns the commit total of the most recent week from the
// commit activity statistics.
func (c *Client) WeeklyCommits(ctx context.Context, owner, repo string) (int, error) {
	var activity []domain.WeekActivity
	if err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/stats/commit_activity", owner, repo), nil, &activity); err != nil {
		return 0, err
	}
	if len(activity) == 0 {
		return 0, nil
	}
	return activity[0].Total, nil
}

// ContributorStats returns per-contributor commit totals.
func (c *Client) ContributorStats(ctx context.Context, owner, repo string) ([]domain.ContributorStat, error) {
	var stats []domain.ContributorStat
	err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/stats/contributors", owner, repo), nil, &stats)
	return stats, err
}

// Issues lists issues for a repository filtered by state.
func (c *Client) Issues(ctx context.Context, owner, repo, state string, count int) ([]domain.Issue, error) {
	params := url.Values{}
	params.Set("state", state)
	params.Set("per_page", strconv.Itoa(count))
	var issues []domain.Issue
	err := c.get(ctx, fmt.Sprintf("/repos/%s/%s/issues", owner, repo), params, &issues)
	return issues, err
}

// SearchIssues searches issues across GitHub.
func (c *Client) SearchIssues(ctx context.Context, query string, count int) (domain.IssueSearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("per_page", strconv.Itoa(count))
	var result domain.IssueSearchResult
	err := c.get(ctx, "/search/issues", params, &result)
	return result, err
}

func bodySnippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

var _ ports.RepositoryHost = (*Client)(nil)
