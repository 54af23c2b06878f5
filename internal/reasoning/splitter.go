// Package reasoning separates the user-facing answer of a raw model
// response from an embedded reasoning trace.
package reasoning

import (
	"regexp"
	"strings"
)

// Reasoning models emit their deliberation between think tags ahead of the
// answer. (?is): case-insensitive, dot matches newlines. The non-greedy body
// stops at the first closing tag.
var thinkPattern = regexp.MustCompile(`(?is)<think>(.*?)</think>`)

// Split separates a raw response into its visible answer and the reasoning
// trace. Only the first delimited span counts as reasoning; its trimmed
// interior is returned and the span is cut from the visible text, which is
// then trimmed. A response without a complete marker pair is returned
// unchanged with empty reasoning - that is the common case, not an error.
func Split(raw string) (visible, reasoning string) {
	loc := thinkPattern.FindStringSubmatchIndex(raw)
	if loc == nil {
		return raw, ""
	}
	reasoning = strings.TrimSpace(raw[loc[2]:loc[3]])
	visible = strings.TrimSpace(raw[:loc[0]] + raw[loc[1]:])
	return visible, reasoning
}

// HasReasoning reports whether a raw response carries a complete reasoning
// span.
func HasReasoning(raw string) bool {
	return thinkPattern.MatchString(raw)
}
