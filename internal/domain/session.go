package domain

import "github.com/google/uuid"

// Conversation roles used in turns exchanged with the completion provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one role/content pair in a session's history.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// DefaultSessionCap bounds conversation history growth. Once the cap is
// reached the oldest turns are dropped; recent context matters far more for
// classification than the opening of a long session.
const DefaultSessionCap = 40

// Session holds the conversation context for one interactive session. It is
// passed by reference into classification and completion so parameter
// prompts become visible to subsequent model calls. Appends only, single
// writer; turns beyond the cap are discarded oldest-first.
type Session struct {
	id    string
	turns []ConversationTurn
	cap   int
}

// NewSession creates an empty session with the default turn cap.
func NewSession() *Session {
	return NewSessionWithCap(DefaultSessionCap)
}

// NewSessionWithCap creates an empty session with an explicit turn cap.
// A non-positive cap disables eviction.
func NewSessionWithCap(turnCap int) *Session {
	return &Session{id: uuid.NewString(), cap: turnCap}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string {
	return s.id
}

// Append records a turn, evicting the oldest turns past the cap.
func (s *Session) Append(role, content string) {
	s.turns = append(s.turns, ConversationTurn{Role: role, Content: content})
	if s.cap > 0 && len(s.turns) > s.cap {
		s.turns = s.turns[len(s.turns)-s.cap:]
	}
}

// Turns returns a copy of the recorded turns in order.
func (s *Session) Turns() []ConversationTurn {
	out := make([]ConversationTurn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len reports the number of retained turns.
func (s *Session) Len() int {
	return len(s.turns)
}
