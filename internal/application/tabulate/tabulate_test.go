package tabulate

import (
	"testing"

	"github.com/doeshing/ghask/internal/domain"
)

func TestContributorsOneRowPerRecord(t *testing.T) {
	records := []domain.Contributor{
		{Login: "gopher", Contributions: 120, HTMLURL: "https://github.com/gopher"},
		{Login: "rob", Contributions: 45},
	}

	table := Contributors("Contributors", records)

	if len(table.Rows) != len(records) {
		t.Fatalf("rows = %d, want %d", len(table.Rows), len(records))
	}
	if table.Rows[0][0] != "gopher" || table.Rows[0][1] != "120" {
		t.Fatalf("row = %v", table.Rows[0])
	}
}

func TestCommitsShortensSHAAndMessage(t *testing.T) {
	records := []domain.Commit{{
		SHA: "0123456789abcdef",
		Commit: domain.CommitDetail{
			Message: "fix parser\n\nlong body here",
			Author:  domain.CommitAuthor{Name: "gopher", Date: "2024-05-01T10:00:00Z"},
		},
	}}

	table := Commits("Commits", records)

	if table.Rows[0][0] != "0123456" {
		t.Fatalf("sha = %q", table.Rows[0][0])
	}
	if table.Rows[0][3] != "fix parser" {
		t.Fatalf("message = %q", table.Rows[0][3])
	}
}

func TestPullRequestsUnmergedPlaceholders(t *testing.T) {
	merged := "2024-05-01T10:00:00Z"
	records := []domain.PullRequest{
		{Number: 1, Title: "open one", User: domain.Actor{Login: "a"}},
		{Number: 2, Title: "merged one", User: domain.Actor{Login: "b"}, MergedAt: &merged, MergedBy: &domain.Actor{Login: "maintainer"}},
	}

	table := PullRequests("PRs", records)

	if table.Rows[0][3] != "N/A" || table.Rows[0][5] != "N/A" {
		t.Fatalf("unmerged row = %v", table.Rows[0])
	}
	if table.Rows[1][3] != "maintainer" || table.Rows[1][5] != merged {
		t.Fatalf("merged row = %v", table.Rows[1])
	}
}

func TestRepositoriesDefaultsDescription(t *testing.T) {
	table := Repositories("Repos", []domain.Repository{{Name: "bare"}})

	if table.Rows[0][1] != "No description" {
		t.Fatalf("description = %q", table.Rows[0][1])
	}
}

func TestRepositorySearchDefaults(t *testing.T) {
	table := RepositorySearch("Search", []domain.Repository{{Name: "x", Owner: domain.Actor{Login: "y"}}})

	if table.Rows[0][4] != "N/A" || table.Rows[0][5] != "N/A" {
		t.Fatalf("row = %v", table.Rows[0])
	}
}

func TestKeyValueSingleRow(t *testing.T) {
	table := KeyValue("Weekly", []string{"Repository", "Commits"}, []string{"golang/go", "42"})

	if len(table.Rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(table.Rows))
	}
	if table.Rows[0][1] != "42" {
		t.Fatalf("row = %v", table.Rows[0])
	}
}

func TestEmptyInputsYieldEmptyTables(t *testing.T) {
	if rows := Contributors("t", nil).Rows; len(rows) != 0 {
		t.Fatalf("rows = %v", rows)
	}
	if rows := Issues("t", nil).Rows; len(rows) != 0 {
		t.Fatalf("rows = %v", rows)
	}
}
