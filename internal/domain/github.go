package domain

// GitHub API record types. Field tags follow the REST v3 payloads; only the
// fields the tabular transforms and narration need are modeled.

// Repository is a repository record from listings or search results.
type Repository struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	Owner       Actor  `json:"owner"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	UpdatedAt   string `json:"updated_at"`
	HTMLURL     string `json:"html_url"`
}

// Actor is a user or organization reference embedded in other records.
type Actor struct {
	Login   string `json:"login"`
	HTMLURL string `json:"html_url"`
}

// Contributor is one entry of a repository contributor listing.
type Contributor struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
	HTMLURL       string `json:"html_url"`
}

// Commit is one entry of a commit listing.
type Commit struct {
	SHA     string       `json:"sha"`
	Commit  CommitDetail `json:"commit"`
	HTMLURL string       `json:"html_url"`
}

// CommitDetail carries the nested git commit data.
type CommitDetail struct {
	Author  CommitAuthor `json:"author"`
	Message string       `json:"message"`
}

// CommitAuthor identifies the git-level author of a commit.
type CommitAuthor struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// PullRequest is a pull request record. MergedAt is nil for PRs closed
// without merging; MergedBy is only populated on the detail endpoint.
type PullRequest struct {
	Number    int     `json:"number"`
	Title     string  `json:"title"`
	User      Actor   `json:"user"`
	MergedBy  *Actor  `json:"merged_by"`
	CreatedAt string  `json:"created_at"`
	MergedAt  *string `json:"merged_at"`
	HTMLURL   string  `json:"html_url"`
}

// Merged reports whether the pull request carries a merge timestamp.
func (p PullRequest) Merged() bool {
	return p.MergedAt != nil && *p.MergedAt != ""
}

// Branch is one entry of a branch listing.
type Branch struct {
	Name   string    `json:"name"`
	Commit BranchRef `json:"commit"`
}

// BranchRef points at the head commit of a branch.
type BranchRef struct {
	SHA string `json:"sha"`
}

// Issue is an issue record from listings or search results.
type Issue struct {
	Number        int    `json:"number"`
	Title         string `json:"title"`
	State         string `json:"state"`
	User          Actor  `json:"user"`
	CreatedAt     string `json:"created_at"`
	HTMLURL       string `json:"html_url"`
	RepositoryURL string `json:"repository_url"`
}

// ContributorStat is one entry of the contributor statistics endpoint.
type ContributorStat struct {
	Author Actor `json:"author"`
	Total  int   `json:"total"`
}

// WeekActivity is one week of the commit_activity endpoint.
type WeekActivity struct {
	Total int   `json:"total"`
	Week  int64 `json:"week"`
}

// RepositorySearchResult is the paged response of /search/repositories.
type RepositorySearchResult struct {
	TotalCount int          `json:"total_count"`
	Items      []Repository `json:"items"`
}

// IssueSearchResult is the paged response of /search/issues.
type IssueSearchResult struct {
	TotalCount int     `json:"total_count"`
	Items      []Issue `json:"items"`
}
