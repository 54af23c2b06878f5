package chat

import "fmt"

// Role identifies the sender of a message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ParseRole validates a raw role string against the closed set of known
// roles. Unknown roles are rejected at every ingestion point (snapshot load,
// backend reply parsing) rather than carried along.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSystem, RoleUser, RoleAssistant:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	return string(r)
}

// Message is a single chat message. Messages are immutable once created and
// history ordering is append-only.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// System returns a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User returns a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Assistant returns an assistant message. Content is the raw backend
// response, reasoning block included; splitting happens at render time.
func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}
