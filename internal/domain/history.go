package domain

import "time"

// QueryRecord captures one resolved query for the history log. This is an
// audit trail of dispatches, not conversation state; it survives restarts
// while session turns do not.
type QueryRecord struct {
	Timestamp  time.Time `json:"timestamp"`
	SessionID  string    `json:"session_id"`
	Query      string    `json:"query"`
	Intent     string    `json:"intent"`
	Parameters string    `json:"parameters"`
	Key        string    `json:"key"`
	Err        string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
}

// CacheEntry stores a cached classification result keyed by query hash.
type CacheEntry struct {
	Key       string            `json:"key"`
	Query     string            `json:"query"`
	Intent    string            `json:"intent"`
	Params    map[string]string `json:"params"`
	CreatedAt time.Time         `json:"created_at"`
}
