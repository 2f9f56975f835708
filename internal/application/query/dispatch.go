package query

import (
	"context"
	"fmt"
	"strconv"

	"github.com/doeshing/ghask/internal/application/tabulate"
	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/ports"
)

// Default parameter values applied at dispatch.
const (
	defaultBranch     = "main"
	defaultCount      = 10
	defaultIssueCount = 100
	defaultIssueState = "all"
	defaultSearchSort = "stars"
	defaultSortOrder  = "desc"
)

type handlerFunc func(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error)

// Dispatcher maps canonical intents to data-fetch operations. It is the
// single boundary where repository-host failures become user-visible error
// envelopes; nothing from the network propagates past it.
type Dispatcher struct {
	Host     ports.RepositoryHost
	Renderer ports.Renderer
	Logger   ports.Logger

	handlers map[domain.Intent]handlerFunc
}

// NewDispatcher builds the dispatch table.
func NewDispatcher(host ports.RepositoryHost, renderer ports.Renderer, logger ports.Logger) *Dispatcher {
	d := &Dispatcher{Host: host, Renderer: renderer, Logger: logger}
	d.handlers = map[domain.Intent]handlerFunc{
		domain.IntentContributors:       d.contributors,
		domain.IntentCommitHistory:      d.commitHistory,
		domain.IntentRecentMergedPRs:    d.recentMergedPRs,
		domain.IntentUserRepositories:   d.userRepositories,
		domain.IntentSearchRepositories: d.searchRepositories,
		domain.IntentLatestBranch:       d.latestBranch,
		domain.IntentWeeklyCommits:      d.weeklyCommits,
		domain.IntentContributorStats:   d.contributorStats,
		domain.IntentCountIssues:        d.countIssues,
		domain.IntentSearchIssues:       d.searchIssues,
	}
	return d
}

// Dispatch executes the operation for the record's intent and returns its
// envelope. Unknown intents short-circuit without a network call; any
// handler error is converted to an error envelope here.
func (d *Dispatcher) Dispatch(ctx context.Context, record domain.IntentRecord) domain.ResultEnvelope {
	intent := record.Intent.Canonicalize()

	if intent == domain.IntentUnknown {
		d.Renderer.Warn("Could not determine specific intent. Please try rephrasing your query.")
		return domain.ResultEnvelope{Err: "Unknown intent", Message: record.Query}
	}

	handler, ok := d.handlers[intent]
	if !ok {
		return domain.ErrorEnvelope(fmt.Sprintf("Unhandled intent: %s", intent))
	}

	envelope, err := handler(ctx, record.Parameters)
	if err != nil {
		d.Logger.Error("intent execution failed", err, map[string]interface{}{"intent": string(intent)})
		return domain.ErrorEnvelope(err.Error())
	}
	return envelope
}

func (d *Dispatcher) contributors(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error) {
	owner, repo := params["owner"], params["repo"]
	data, err := d.Host.Contributors(ctx, owner, repo)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	d.Renderer.Table(tabulate.Contributors(fmt.Sprintf("Contributors for %s/%s", owner, repo), data))
	return domain.ResultEnvelope{Key: domain.KeyContributors, Data: data}, nil
}

func (d *Dispatcher) commitHistory(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error) {
	owner, repo := params["owner"], params["repo"]
	branch := stringParam(params, "branch", defaultBranch)
	count, err := intParam(params, "count", defaultCount)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	data, err := d.Host.CommitHistory(ctx, owner, repo, branch, count)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	d.Renderer.Table(tabulate.Commits(fmt.Sprintf("Commit history for %s/%s", owner, repo), data))
	return domain.ResultEnvelope{Key: domain.KeyCommits, Data: data}, nil
}

func (d *Dispatcher) recentMergedPRs(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error) {
	owner, repo := params["owner"], params["repo"]
	count, err := intParam(params, "count", defaultCount)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	data, err := d.Host.RecentMergedPRs(ctx, owner, repo, count)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	d.Renderer.Table(tabulate.PullRequests(fmt.Sprintf("Recent merged PRs for %s/%s", owner, repo), data))
	return domain.ResultEnvelope{Key: domain.KeyPullRequests, Data: data}, nil
}

func (d *Dispatcher) userRepositories(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error) {
	username := params["username"]
	if username == "" {
		return domain.ResultEnvelope{}, fmt.Errorf("no username provided for repository listing")
	}

	d.Renderer.Info("Fetching repositories for user: " + username)
	data, err := d.Host.UserRepositories(ctx, username)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	if len(data) == 0 {
		message := "No repositories found for " + username
		d.Renderer.Warn(message)
		return domain.ResultEnvelope{Key: domain.KeyRepositories, Data: []domain.Repository{}, Message: message}, nil
	}

	d.Renderer.Table(tabulate.Repositories(fmt.Sprintf("Repositories for user '%s'", username), data))
	return domain.ResultEnvelope{Key: domain.KeyRepositories, Data: data}, nil
}

func (d *Dispatcher) searchRepositories(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error) {
	term := params["query"]
	sort := stringParam(params, "sort", defaultSearchSort)
	order := stringParam(params, "order", defaultSortOrder)
	count, err := intParam(params, "count", defaultCount)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	result, err := d.Host.SearchRepositories(ctx, term, sort, order, count)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	d.Renderer.Table(tabulate.RepositorySearch(fmt.Sprintf("Repository search results for '%s'", term), result.Items))
	return domain.ResultEnvelope{Key: domain.KeySearchResults, Data: result}, nil
}

func (d *Dispatcher) latestBranch(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error) {
	owner, repo := params["owner"], params["repo"]
	branch, err := d.Host.LatestBranch(ctx, owner, repo)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	d.Renderer.Table(tabulate.KeyValue(
		fmt.Sprintf("Latest branch for %s/%s", owner, repo),
		[]string{"Branch", "Head SHA"},
		[]string{branch.Name, branch.Commit.SHA},
	))
	return domain.ResultEnvelope{Key: domain.KeyBranch, Data: branch}, nil
}

func (d *Dispatcher) weeklyCommits(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error) {
	owner, repo := params["owner"], params["repo"]
	total, err := d.Host.WeeklyCommits(ctx, owner, repo)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	d.Renderer.Table(tabulate.KeyValue(
		fmt.Sprintf("Commits this week for %s/%s", owner, repo),
		[]string{"Repository", "Commits"},
		[]string{owner + "/" + repo, strconv.Itoa(total)},
	))
	return domain.ResultEnvelope{Key: domain.KeyWeeklyCommits, Data: total}, nil
}

func (d *Dispatcher) contributorStats(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error) {
	owner, repo := params["owner"], params["repo"]
	data, err := d.Host.ContributorStats(ctx, owner, repo)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	d.Renderer.Table(tabulate.ContributorStats(fmt.Sprintf("Contribution statistics for %s/%s", owner, repo), data))
	return domain.ResultEnvelope{Key: domain.KeyContributorStats, Data: data}, nil
}

func (d *Dispatcher) countIssues(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error) {
	owner, repo := params["owner"], params["repo"]
	state := stringParam(params, "state", defaultIssueState)
	issues, err := d.Host.Issues(ctx, owner, repo, state, defaultIssueCount)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	d.Renderer.Table(tabulate.KeyValue(
		fmt.Sprintf("Issue count for %s/%s (state: %s)", owner, repo, state),
		[]string{"Repository", "State", "Issues"},
		[]string{owner + "/" + repo, state, strconv.Itoa(len(issues))},
	))
	return domain.ResultEnvelope{Key: domain.KeyIssueCount, Data: len(issues)}, nil
}

func (d *Dispatcher) searchIssues(ctx context.Context, params map[string]string) (domain.ResultEnvelope, error) {
	term := params["query"]
	result, err := d.Host.SearchIssues(ctx, term, defaultCount)
	if err != nil {
		return domain.ResultEnvelope{}, err
	}
	d.Renderer.Table(tabulate.Issues(fmt.Sprintf("Issue search results for '%s'", term), result.Items))
	return domain.ResultEnvelope{Key: domain.KeyIssues, Data: result}, nil
}

func stringParam(params map[string]string, key, fallback string) string {
	if value := params[key]; value != "" {
		return value
	}
	return fallback
}

// intParam coerces a numeric parameter. A non-numeric value is a conversion
// error, never a silent fall back to the default.
func intParam(params map[string]string, key string, fallback int) (int, error) {
	raw, ok := params[key]
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parameter %q must be a number, got %q", key, raw)
	}
	return n, nil
}
