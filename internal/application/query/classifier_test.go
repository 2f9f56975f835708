package query

import (
	"context"
	"strings"
	"testing"

	"github.com/doeshing/ghask/internal/domain"
)

func newClassifier(provider *stubProvider, cache *stubCache) *Classifier {
	c := &Classifier{Logger: nopLogger{}}
	if provider != nil {
		c.Provider = provider
	}
	if cache != nil {
		c.Cache = cache
	}
	return c
}

func TestClassifyFastPathSkipsProvider(t *testing.T) {
	provider := &stubProvider{err: errStubDown}
	c := newClassifier(provider, nil)

	record := c.Classify(context.Background(), "show me the repos of octocat", domain.NewSession())

	if provider.calls != 0 {
		t.Fatalf("provider called %d times, want 0", provider.calls)
	}
	if record.Intent != domain.IntentUserRepositories {
		t.Fatalf("intent = %s, want %s", record.Intent, domain.IntentUserRepositories)
	}
	if record.Parameters["username"] != "octocat" {
		t.Fatalf("username = %q, want octocat", record.Parameters["username"])
	}
}

func TestClassifyProviderFailureFallsBack(t *testing.T) {
	c := newClassifier(&stubProvider{err: errStubDown}, nil)

	record := c.Classify(context.Background(), "what is the weather", domain.NewSession())

	if record.Intent != domain.IntentUnknown {
		t.Fatalf("intent = %s, want %s", record.Intent, domain.IntentUnknown)
	}
	if record.Query != "what is the weather" {
		t.Fatalf("record.Query = %q", record.Query)
	}
}

func TestClassifyFallbackSearchStripsTokens(t *testing.T) {
	c := newClassifier(&stubProvider{err: errStubDown}, nil)

	record := c.Classify(context.Background(), "search repositories machine learning", domain.NewSession())

	if record.Intent != domain.IntentSearchRepositories {
		t.Fatalf("intent = %s, want %s", record.Intent, domain.IntentSearchRepositories)
	}
	if got := record.Parameters["query"]; got != "machine learning" {
		t.Fatalf("query param = %q, want %q", got, "machine learning")
	}
}

func TestClassifyParsesFencedResponse(t *testing.T) {
	provider := &stubProvider{response: "```json\n{\"intent\": \"get_contributors\", \"parameters\": {\"owner\": \"golang\", \"repo\": \"go\", \"count\": 5}}\n```"}
	c := newClassifier(provider, nil)

	record := c.Classify(context.Background(), "who contributed to golang/go", domain.NewSession())

	if record.Intent != domain.IntentContributors {
		t.Fatalf("intent = %s, want %s", record.Intent, domain.IntentContributors)
	}
	if record.Parameters["owner"] != "golang" || record.Parameters["repo"] != "go" {
		t.Fatalf("parameters = %v", record.Parameters)
	}
	if record.Parameters["count"] != "5" {
		t.Fatalf("numeric parameter = %q, want \"5\"", record.Parameters["count"])
	}
}

func TestClassifyAliasResponseCanonicalized(t *testing.T) {
	provider := &stubProvider{response: `{"intent": "get_repos", "parameters": {"username": "octocat"}}`}
	c := newClassifier(provider, nil)

	record := c.Classify(context.Background(), "who owns what", domain.NewSession())

	if record.Intent != domain.IntentUserRepositories {
		t.Fatalf("intent = %s, want %s", record.Intent, domain.IntentUserRepositories)
	}
}

func TestClassifyUnparseableResponseIsErrorIntent(t *testing.T) {
	provider := &stubProvider{response: "sorry, I can't help with that"}
	c := newClassifier(provider, nil)

	record := c.Classify(context.Background(), "who contributed to golang/go", domain.NewSession())

	if record.Intent != domain.IntentError {
		t.Fatalf("intent = %s, want %s", record.Intent, domain.IntentError)
	}
	if record.Parameters["raw_response"] != "sorry, I can't help with that" {
		t.Fatalf("raw_response = %q", record.Parameters["raw_response"])
	}
	if record.Parameters["error"] == "" {
		t.Fatal("error parameter missing")
	}
}

func TestClassifyNonObjectResponseFallsBack(t *testing.T) {
	provider := &stubProvider{response: `["get_contributors"]`}
	c := newClassifier(provider, nil)

	record := c.Classify(context.Background(), "anything at all", domain.NewSession())

	if record.Intent != domain.IntentUnknown {
		t.Fatalf("intent = %s, want %s", record.Intent, domain.IntentUnknown)
	}
}

func TestClassifyCachesAndServesRepeats(t *testing.T) {
	provider := &stubProvider{response: `{"intent": "get_contributors", "parameters": {"owner": "golang", "repo": "go"}}`}
	cache := newStubCache()
	c := newClassifier(provider, cache)

	first := c.Classify(context.Background(), "who contributed to golang/go", domain.NewSession())
	second := c.Classify(context.Background(), "who contributed to golang/go", domain.NewSession())

	if provider.calls != 1 {
		t.Fatalf("provider called %d times, want 1", provider.calls)
	}
	if first.Intent != second.Intent {
		t.Fatalf("cached intent %s differs from original %s", second.Intent, first.Intent)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}
}

func TestClassifySentinelsNotCached(t *testing.T) {
	provider := &stubProvider{response: "not json at all"}
	cache := newStubCache()
	c := newClassifier(provider, cache)

	c.Classify(context.Background(), "who contributed to golang/go", domain.NewSession())

	if cache.sets != 0 {
		t.Fatalf("cache sets = %d, want 0 for sentinel intent", cache.sets)
	}
}

func TestClassifySendsSessionContext(t *testing.T) {
	provider := &stubProvider{response: `{"intent": "get_contributors", "parameters": {}}`}
	c := newClassifier(provider, nil)

	session := domain.NewSession()
	session.Append(domain.RoleUser, "earlier question")

	c.Classify(context.Background(), "and the contributors?", session)

	if len(provider.messages) != 3 {
		t.Fatalf("messages = %d, want system + history + query", len(provider.messages))
	}
	if provider.messages[0].Role != domain.RoleSystem {
		t.Fatalf("first message role = %s, want system", provider.messages[0].Role)
	}
	if !strings.Contains(provider.messages[0].Content, string(domain.IntentWeeklyCommits)) {
		t.Fatal("system prompt does not enumerate known intents")
	}
	if provider.messages[1].Content != "earlier question" {
		t.Fatalf("history turn = %q", provider.messages[1].Content)
	}
}

func TestStripFences(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tc := range cases {
		if got := stripFences(tc.in); got != tc.want {
			t.Errorf("stripFences(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
