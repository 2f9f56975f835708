package query

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/ghask/internal/domain"
	"github.com/doeshing/ghask/internal/ports"
)

// Classifier converts a raw query plus conversation history into an
// IntentRecord. It is two-tiered: a remote chat-completion call with a
// deterministic rule-based fallback. It never returns an error to its
// caller; any internal failure degrades to the fallback or to the
// unknown/error sentinel intents.
type Classifier struct {
	Provider ports.CompletionProvider
	Cache    ports.CacheRepository
	Logger   ports.Logger
}

var (
	actionTerms = []string{"list", "show", "get", "find", "display", "tell"}
	repoTerms   = []string{"repo", "repos", "repository", "repositories"}
	searchTerms = []string{"search", "find"}
)

// Classify resolves the query to an intent and parameters. The fast path for
// repository-listing phrasing skips the remote call entirely; remote
// failures and non-object responses fall back to pattern matching.
func (c *Classifier) Classify(ctx context.Context, query string, session *domain.Session) domain.IntentRecord {
	if isRepoListingQuery(query) {
		c.Logger.Debug("fast path matched, skipping completion call", map[string]interface{}{"query": query})
		return c.fallback(query)
	}

	key := cacheKey(query)
	if c.Cache != nil {
		if entry, ok, err := c.Cache.Get(key); err == nil && ok {
			c.Logger.Debug("classification served from cache", map[string]interface{}{"intent": entry.Intent})
			return tagQuery(domain.NewIntentRecord(domain.Intent(entry.Intent), entry.Params), query)
		}
	}

	if c.Provider == nil {
		c.Logger.Warn("no completion provider configured, using fallback", nil)
		return c.fallback(query)
	}

	text, err := c.Provider.Complete(ctx, c.messages(query, session), 0.0)
	if err != nil {
		c.Logger.Warn("completion call failed, using fallback", map[string]interface{}{"error": err.Error()})
		return c.fallback(query)
	}

	record, nonMapping, parseErr := parseIntentResponse(text)
	if parseErr != nil {
		return tagQuery(domain.NewIntentRecord(domain.IntentError, map[string]string{
			"error":        parseErr.Error(),
			"raw_response": text,
		}), query)
	}
	if nonMapping {
		c.Logger.Warn("completion returned a non-object, using fallback", map[string]interface{}{"raw": text})
		return c.fallback(query)
	}

	if c.Cache != nil && !record.Intent.Sentinel() {
		entry := domain.CacheEntry{
			Key:    key,
			Query:  query,
			Intent: string(record.Intent),
			Params: record.Parameters,
		}
		if err := c.Cache.Set(entry); err != nil {
			c.Logger.Debug("classification cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}

	return tagQuery(record, query)
}

func (c *Classifier) fallback(query string) domain.IntentRecord {
	return tagQuery(fallbackClassify(query), query)
}

func tagQuery(record domain.IntentRecord, query string) domain.IntentRecord {
	record.Query = query
	return record
}

// isRepoListingQuery recognizes the single most common query shape without a
// network round trip: an action term combined with a repo term, or a repo
// term with the "... of <name>" pattern.
func isRepoListingQuery(query string) bool {
	q := strings.ToLower(query)
	hasRepo := containsAny(q, repoTerms)
	if !hasRepo {
		return false
	}
	return containsAny(q, actionTerms) || strings.Contains(q, "of ")
}

// fallbackClassify is the deterministic pattern matcher used when the remote
// classifier is unavailable or untrustworthy.
func fallbackClassify(query string) domain.IntentRecord {
	q := strings.ToLower(query)

	var username string
	if parts := strings.SplitN(q, "of ", 2); len(parts) == 2 {
		username = strings.TrimSpace(parts[1])
	}

	switch {
	case containsAny(q, actionTerms) && containsAny(q, repoTerms):
		params := map[string]string{}
		if username != "" {
			params["username"] = username
		}
		return domain.NewIntentRecord(domain.IntentUserRepositories, params)
	case containsAny(q, searchTerms) && containsAny(q, repoTerms):
		return domain.NewIntentRecord(domain.IntentSearchRepositories, map[string]string{
			"query": stripSearchTokens(q),
		})
	default:
		return domain.NewIntentRecord(domain.IntentUnknown, nil)
	}
}

func stripSearchTokens(q string) string {
	kept := make([]string, 0, 4)
	for _, tok := range strings.Fields(q) {
		switch tok {
		case "search", "find", "repo", "repos", "repository", "repositories":
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

func containsAny(q string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(q, term) {
			return true
		}
	}
	return false
}

// parseIntentResponse parses the completion text into an IntentRecord.
// Surrounding code fences are stripped first. A response that is valid JSON
// but not an object reports nonMapping so the caller can fall back; text
// that fails to parse at all is a classification error.
func parseIntentResponse(text string) (record domain.IntentRecord, nonMapping bool, err error) {
	cleaned := stripFences(text)

	var raw any
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return domain.IntentRecord{}, false, fmt.Errorf("parse intent response: %w", err)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.IntentRecord{}, true, nil
	}

	intent, _ := obj["intent"].(string)
	params := map[string]string{}
	if rawParams, ok := obj["parameters"].(map[string]any); ok {
		for name, value := range rawParams {
			if value == nil {
				continue
			}
			params[name] = stringifyParam(value)
		}
	}

	return domain.NewIntentRecord(domain.Intent(intent), params), false, nil
}

func stringifyParam(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// stripFences removes triple-backtick fencing (optionally tagged json) that
// models sometimes wrap around structured output.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func (c *Classifier) messages(query string, session *domain.Session) []domain.ConversationTurn {
	messages := make([]domain.ConversationTurn, 0, session.Len()+2)
	messages = append(messages, domain.ConversationTurn{Role: domain.RoleSystem, Content: classifierSystemPrompt()})
	messages = append(messages, session.Turns()...)
	messages = append(messages, domain.ConversationTurn{Role: domain.RoleUser, Content: query})
	return messages
}

var intentDescriptions = map[domain.Intent]string{
	domain.IntentContributors:       "Get contributors for a repository",
	domain.IntentCommitHistory:      "Get recent commit history",
	domain.IntentRecentMergedPRs:    "Get recently merged pull requests",
	domain.IntentUserRepositories:   "List repositories belonging to a user",
	domain.IntentSearchRepositories: "Search for repositories across GitHub",
	domain.IntentLatestBranch:       "Get the most recently active branch of a repository",
	domain.IntentWeeklyCommits:      "Count commits from the past week",
	domain.IntentContributorStats:   "Get detailed contribution statistics",
	domain.IntentCountIssues:        "Count issues in a repository by state",
	domain.IntentSearchIssues:       "Search for issues across GitHub",
}

func classifierSystemPrompt() string {
	var b strings.Builder
	b.WriteString(`You are an assistant that interprets natural language queries about GitHub repositories.
Your task is to:
1. Identify the intent of the query
2. Extract relevant parameters (repository name, owner, branch, username, etc.)
3. Format the response as a JSON object with "intent" and "parameters" fields

Available intents:
`)
	for _, intent := range domain.KnownIntents() {
		fmt.Fprintf(&b, "- %s: %s\n", intent, intentDescriptions[intent])
	}
	b.WriteString("\nReturn ONLY the JSON object without any additional text.")
	return b.String()
}

func cacheKey(query string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(query))))
	return hex.EncodeToString(sum[:])
}
