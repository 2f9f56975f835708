// Package llm provides the remote completion source adapter: an
// OpenAI-compatible chat-completions client pointed at a Groq-style base
// URL. Text in, text out, failable; the application layer treats it as a
// black box.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/ports"
)

// Client calls the chat-completions endpoint of an OpenAI-compatible API.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	maxTokens  int
	httpClient *http.Client
}

// NewClient builds a completion client from configuration. The timeout
// applies to every request in addition to any per-query context deadline.
func NewClient(settings domain.LLMSettings, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(settings.BaseURL, "/"),
		apiKey:     settings.APIKey,
		model:      settings.Model,
		maxTokens:  settings.MaxTokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model       string                    `json:"model"`
	Messages    []domain.ConversationTurn `json:"messages"`
	Temperature float64                   `json:"temperature"`
	MaxTokens   int                       `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements ports.CompletionProvider.
func (c *Client) Complete(ctx context.Context, messages []domain.ConversationTurn, temperature float64) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("missing LLM API key: set GROQ_API_KEY")
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("build completion request: %w", err)
	}

	endpoint := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	var responseBody bytes.Buffer
	if _, err := responseBody.ReadFrom(resp.Body); err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("completion HTTP %d: %s", resp.StatusCode, snippet(responseBody.String()))
	}

	var parsed chatResponse
	if err := json.Unmarshal(responseBody.Bytes(), &parsed); err != nil {
		return "", fmt.Errorf("parse completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

var _ ports.CompletionProvider = (*Client)(nil)
