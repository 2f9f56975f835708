package domain

// Envelope keys identify the semantic payload of a dispatched operation.
const (
	KeyContributors     = "contributors"
	KeyCommits          = "commits"
	KeyPullRequests     = "pull_requests"
	KeyRepositories     = "repositories"
	KeySearchResults    = "search_results"
	KeyBranch           = "branch"
	KeyWeeklyCommits    = "weekly_commits"
	KeyContributorStats = "contributor_stats"
	KeyIssueCount       = "issue_count"
	KeyIssues           = "issues"
)

// ResultEnvelope wraps whatever a dispatched operation returns, keyed by a
// fixed semantic name. Err is set when the operation failed; failure and
// success share this one shape so rendering and narration handle both
// uniformly.
type ResultEnvelope struct {
	Key     string `json:"key"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Err     string `json:"error,omitempty"`
}

// Failed reports whether the envelope carries an error instead of data.
func (e ResultEnvelope) Failed() bool {
	return e.Err != ""
}

// ErrorEnvelope builds a failure envelope.
func ErrorEnvelope(msg string) ResultEnvelope {
	return ResultEnvelope{Err: msg}
}

// Table is a presentation-ready tabular view of fetched records. Rows map
// one-to-one onto source records; transforms never drop rows.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]string
}

// Empty reports whether the table has no rows.
func (t Table) Empty() bool {
	return len(t.Rows) == 0
}
