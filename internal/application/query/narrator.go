package query

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/ports"
)

const narratorSystemPrompt = `You are an assistant that helps analyze GitHub data.
Given the data and the user's original query, provide a concise and informative response.
Focus on the most relevant information and insights from the data.`

// narrationTemperature leaves room for phrasing variety; classification runs
// at zero.
const narrationTemperature = 0.7

// Narrator turns a fetched envelope back into a human-readable summary via
// the completion provider. Narration failures are advisory only; the table
// already on screen remains a successful outcome.
type Narrator struct {
	Provider ports.CompletionProvider
	Logger   ports.Logger
}

// Narrate asks the completion provider to summarize the envelope against the
// original query.
func (n *Narrator) Narrate(ctx context.Context, envelope domain.ResultEnvelope, query string) (string, error) {
	if n.Provider == nil {
		return "", fmt.Errorf("no completion provider configured")
	}

	payload, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal result data: %w", err)
	}

	messages := []domain.ConversationTurn{
		{Role: domain.RoleSystem, Content: narratorSystemPrompt},
		{Role: domain.RoleUser, Content: fmt.Sprintf("Original query: %s\n\nData: %s", query, payload)},
	}

	text, err := n.Provider.Complete(ctx, messages, narrationTemperature)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
