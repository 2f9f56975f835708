// Package domain defines core business entities and value objects for ghask.
//
// This file contains the intent model: the canonical intent names a natural
// language query can resolve to, alias normalization, and the static table of
// required parameters per intent. The domain layer is independent of
// infrastructure concerns and represents pure business logic and data
// structures.
package domain

// Intent identifies which GitHub data-fetch operation a query maps to.
type Intent string

// Canonical intents. Every classification result resolves to one of these or
// to one of the sentinel intents below.
const (
	IntentContributors       Intent = "get_contributors"
	IntentCommitHistory      Intent = "get_commit_history"
	IntentRecentMergedPRs    Intent = "get_recent_merged_prs"
	IntentUserRepositories   Intent = "list_user_repositories"
	IntentSearchRepositories Intent = "search_repositories"
	IntentLatestBranch       Intent = "get_latest_branch"
	IntentWeeklyCommits      Intent = "get_weekly_commits"
	IntentContributorStats   Intent = "get_contributor_stats"
	IntentCountIssues        Intent = "count_issues"
	IntentSearchIssues       Intent = "search_issues"
)

// Sentinel intents. IntentUnknown marks a query no pattern or model could
// recognize; IntentError marks a classification that failed outright. An
// IntentRecord never carries an empty intent.
const (
	IntentUnknown Intent = "unknown"
	IntentError   Intent = "error"
)

// intentAliases folds near-duplicate names emitted by the language model onto
// their canonical handlers.
var intentAliases = map[Intent]Intent{
	"get_repositories":      IntentUserRepositories,
	"get_repos":             IntentUserRepositories,
	"get_user_repositories": IntentUserRepositories,
}

// Canonicalize maps intent aliases to their canonical names. It is applied
// once at classification exit so the dispatch table only ever sees canonical
// intents.
func (i Intent) Canonicalize() Intent {
	if canonical, ok := intentAliases[i]; ok {
		return canonical
	}
	return i
}

// Sentinel reports whether the intent is one of the unknown/error sentinels.
func (i Intent) Sentinel() bool {
	return i == IntentUnknown || i == IntentError
}

// ParameterSpec describes one required parameter of an intent with a
// human-readable description used when prompting the user.
type ParameterSpec struct {
	Name        string
	Description string
}

var (
	ownerRepoParams = []ParameterSpec{
		{Name: "owner", Description: "repository owner/organization"},
		{Name: "repo", Description: "repository name"},
	}
	usernameParams = []ParameterSpec{
		{Name: "username", Description: "GitHub username"},
	}
	searchParams = []ParameterSpec{
		{Name: "query", Description: "search term"},
	}
)

// intentSpec is the static required-parameter table, keyed by canonical
// intent. Read-only and process-wide.
var intentSpec = map[Intent][]ParameterSpec{
	IntentContributors:       ownerRepoParams,
	IntentCommitHistory:      ownerRepoParams,
	IntentRecentMergedPRs:    ownerRepoParams,
	IntentLatestBranch:       ownerRepoParams,
	IntentWeeklyCommits:      ownerRepoParams,
	IntentContributorStats:   ownerRepoParams,
	IntentCountIssues:        ownerRepoParams,
	IntentUserRepositories:   usernameParams,
	IntentSearchRepositories: searchParams,
	IntentSearchIssues:       searchParams,
}

// RequiredParameters returns the ordered required parameter set for the
// intent. Sentinel and unmapped intents have no required parameters.
func (i Intent) RequiredParameters() []ParameterSpec {
	return intentSpec[i.Canonicalize()]
}

// KnownIntents lists every canonical intent, in the order they are presented
// to the language model.
func KnownIntents() []Intent {
	return []Intent{
		IntentContributors,
		IntentCommitHistory,
		IntentRecentMergedPRs,
		IntentUserRepositories,
		IntentSearchRepositories,
		IntentLatestBranch,
		IntentWeeklyCommits,
		IntentContributorStats,
		IntentCountIssues,
		IntentSearchIssues,
	}
}

// IntentRecord is the structured result of classifying a raw query. The
// Intent field is always present; unrecognized queries resolve to
// IntentUnknown, never to an empty value. Parameters are filled in by the
// completion loop before dispatch.
type IntentRecord struct {
	Intent     Intent
	Parameters map[string]string
	Query      string
}

// NewIntentRecord builds a record with a canonicalized intent and a non-nil
// parameter map.
func NewIntentRecord(intent Intent, params map[string]string) IntentRecord {
	if intent == "" {
		intent = IntentUnknown
	}
	if params == nil {
		params = map[string]string{}
	}
	return IntentRecord{Intent: intent.Canonicalize(), Parameters: params}
}
