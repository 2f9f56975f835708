// Package tabulate turns raw GitHub records into presentation-ready tables.
// Transforms are pure and preserve record counts; one source record always
// becomes exactly one row.
package tabulate

import (
	"strconv"
	"strings"

	"github.com/doeshing/ghask/internal/domain"
)

// Contributors tabulates a repository contributor listing.
func Contributors(title string, records []domain.Contributor) domain.Table {
	table := domain.Table{
		Title:   title,
		Columns: []string{"Username", "Contributions", "Profile URL"},
	}
	for _, c := range records {
		table.Rows = append(table.Rows, []string{c.Login, strconv.Itoa(c.Contributions), c.HTMLURL})
	}
	return table
}

// Commits tabulates a commit listing. Messages are cut at the first line and
// SHAs shortened to seven characters.
func Commits(title string, records []domain.Commit) domain.Table {
	table := domain.Table{
		Title:   title,
		Columns: []string{"SHA", "Author", "Date", "Message", "URL"},
	}
	for _, c := range records {
		table.Rows = append(table.Rows, []string{
			shortSHA(c.SHA),
			c.Commit.Author.Name,
			c.Commit.Author.Date,
			firstLine(c.Commit.Message),
			c.HTMLURL,
		})
	}
	return table
}

// PullRequests tabulates pull request records.
func PullRequests(title string, records []domain.PullRequest) domain.Table {
	table := domain.Table{
		Title:   title,
		Columns: []string{"Number", "Title", "Author", "Merged By", "Created At", "Merged At", "URL"},
	}
	for _, pr := range records {
		mergedBy := "N/A"
		mergedAt := "N/A"
		if pr.Merged() {
			mergedAt = *pr.MergedAt
			if pr.MergedBy != nil {
				mergedBy = pr.MergedBy.Login
			}
		}
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(pr.Number),
			pr.Title,
			pr.User.Login,
			mergedBy,
			pr.CreatedAt,
			mergedAt,
			pr.HTMLURL,
		})
	}
	return table
}

// Repositories tabulates a user repository listing.
func Repositories(title string, records []domain.Repository) domain.Table {
	table := domain.Table{
		Title:   title,
		Columns: []string{"Name", "Description", "Stars", "Forks", "Last Updated", "URL"},
	}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			r.Name,
			orDefault(r.Description, "No description"),
			strconv.Itoa(r.Stars),
			strconv.Itoa(r.Forks),
			r.UpdatedAt,
			r.HTMLURL,
		})
	}
	return table
}

// RepositorySearch tabulates repository search results.
func RepositorySearch(title string, records []domain.Repository) domain.Table {
	table := domain.Table{
		Title:   title,
		Columns: []string{"Name", "Owner", "Stars", "Forks", "Language", "Description", "URL"},
	}
	for _, r := range records {
		table.Rows = append(table.Rows, []string{
			r.Name,
			r.Owner.Login,
			strconv.Itoa(r.Stars),
			strconv.Itoa(r.Forks),
			orDefault(r.Language, "N/A"),
			orDefault(r.Description, "N/A"),
			r.HTMLURL,
		})
	}
	return table
}

// Issues tabulates issue records from listings or search results.
func Issues(title string, records []domain.Issue) domain.Table {
	table := domain.Table{
		Title:   title,
		Columns: []string{"Number", "Title", "State", "Author", "Created At", "URL"},
	}
	for _, issue := range records {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(issue.Number),
			issue.Title,
			issue.State,
			issue.User.Login,
			issue.CreatedAt,
			issue.HTMLURL,
		})
	}
	return table
}

// ContributorStats tabulates per-contributor commit totals.
func ContributorStats(title string, records []domain.ContributorStat) domain.Table {
	table := domain.Table{
		Title:   title,
		Columns: []string{"Username", "Total Commits"},
	}
	for _, stat := range records {
		table.Rows = append(table.Rows, []string{stat.Author.Login, strconv.Itoa(stat.Total)})
	}
	return table
}

// KeyValue builds a single-row table for scalar results such as weekly
// commit counts or the latest branch.
func KeyValue(title string, columns []string, values []string) domain.Table {
	return domain.Table{Title: title, Columns: columns, Rows: [][]string{values}}
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
