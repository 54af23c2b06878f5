package chat

import (
	"time"

	"github.com/google/uuid"
)

// Session is one continuous conversation: an ordered message history plus
// the backend model it talks to. The ID is regenerated whenever history is
// cleared or replaced wholesale (reset, snapshot load, archive restore), so
// a loaded history always starts life as a fresh session.
type Session struct {
	ID        string    `json:"id"`
	Model     string    `json:"model"`
	StartTime time.Time `json:"start_time"`
	Messages  []Message `json:"messages"`
}

// NewSession creates an empty session with a freshly generated id.
func NewSession(model string) *Session {
	return &Session{
		ID:        uuid.NewString(),
		Model:     model,
		StartTime: time.Now(),
		Messages:  []Message{},
	}
}

// Append adds one message to the history.
func (s *Session) Append(msg Message) {
	s.Messages = append(s.Messages, msg)
}

// LastUser returns the most recent user message content, or "".
func (s *Session) LastUser() string {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleUser {
			return s.Messages[i].Content
		}
	}
	return ""
}
