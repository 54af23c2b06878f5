// Package prompt assembles backend-ready prompts from session history.
package prompt

import "LocalChat/internal/chat"

// DefaultSystem is the process-wide instruction prepended to every prompt.
const DefaultSystem = "You are a helpful assistant. Answer the user's questions clearly and concisely."

// Builder turns ordered history into the message sequence submitted to the
// backend. It prepends exactly one system message and otherwise preserves
// the history untouched: no truncation, no summarizing, no token budget
// awareness - context-length handling is the backend's problem.
type Builder struct {
	System string
}

// NewBuilder returns a builder with the given system instruction, falling
// back to DefaultSystem when empty.
func NewBuilder(system string) Builder {
	if system == "" {
		system = DefaultSystem
	}
	return Builder{System: system}
}

// Build returns the prompt for the given history: one system message
// followed by the full history in original order.
func (b Builder) Build(history []chat.Message) []chat.Message {
	out := make([]chat.Message, 0, len(history)+1)
	out = append(out, chat.System(b.System))
	out = append(out, history...)
	return out
}
