package query

import (
	"context"
	"strings"
	"testing"

	"github.com/doeshing/ghask/internal/domain"
)

func TestNarrateSendsEnvelopeAndQuery(t *testing.T) {
	provider := &stubProvider{response: "  two contributors, one very active  "}
	n := &Narrator{Provider: provider, Logger: nopLogger{}}

	envelope := domain.ResultEnvelope{
		Key:  domain.KeyContributors,
		Data: []domain.Contributor{{Login: "gopher", Contributions: 9000}},
	}
	text, err := n.Narrate(context.Background(), envelope, "who contributed to golang/go")
	if err != nil {
		t.Fatalf("Narrate() error = %v", err)
	}
	if text != "two contributors, one very active" {
		t.Fatalf("text = %q, want trimmed response", text)
	}
	if provider.temperature != narrationTemperature {
		t.Fatalf("temperature = %v, want %v", provider.temperature, narrationTemperature)
	}
	if len(provider.messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(provider.messages))
	}
	user := provider.messages[1].Content
	if !strings.Contains(user, "who contributed to golang/go") {
		t.Fatal("user message missing original query")
	}
	if !strings.Contains(user, "gopher") {
		t.Fatal("user message missing envelope data")
	}
}

func TestNarrateWithoutProvider(t *testing.T) {
	n := &Narrator{Logger: nopLogger{}}
	if _, err := n.Narrate(context.Background(), domain.ResultEnvelope{}, "q"); err == nil {
		t.Fatal("expected error without provider")
	}
}

func TestNarratePropagatesProviderError(t *testing.T) {
	n := &Narrator{Provider: &stubProvider{err: errStubDown}, Logger: nopLogger{}}
	if _, err := n.Narrate(context.Background(), domain.ResultEnvelope{}, "q"); err == nil {
		t.Fatal("expected provider error")
	}
}
