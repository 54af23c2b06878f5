// Package journal appends one structured record per completed model
// exchange to a line-delimited JSON audit log.
package journal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"LocalChat/internal/chat"
)

// FileName is the fixed log artifact name inside the journal directory.
const FileName = "interaction_log.json"

// Record is one line of the interaction log. Prompt holds the fully
// assembled message sequence sent to the backend; Query is the triggering
// user message only.
type Record struct {
	SessionID string         `json:"session_id"`
	Timestamp string         `json:"timestamp"`
	Role      string         `json:"role"`
	Query     string         `json:"query"`
	Prompt    []chat.Message `json:"prompt"`
	Response  string         `json:"response"`
}

// WriteError signals that the log artifact could not be appended. The turn
// itself still completes; the caller reports the condition instead of
// swallowing it.
type WriteError struct {
	Path  string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to append interaction log %s: %v", e.Path, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Journal appends to an append-only interaction log. Each record is written
// with its own open/write/close so a crash right after a turn cannot lose
// the record to a buffer. Prior records are never read or rewritten.
type Journal struct {
	path string
}

// New creates a journal writing to <dir>/interaction_log.json.
func New(dir string) *Journal {
	return &Journal{path: filepath.Join(dir, FileName)}
}

// Path returns the log artifact location.
func (j *Journal) Path() string {
	return j.path
}

// Record appends one exchange to the log. The record is marshaled first and
// written with a single Write call, keeping concurrent appends to the same
// artifact line-atomic.
func (j *Journal) Record(sessionID string, role chat.Role, query string, prompt []chat.Message, response string) error {
	rec := Record{
		SessionID: sessionID,
		Timestamp: time.Now().Format(time.RFC3339),
		Role:      role.String(),
		Query:     query,
		Prompt:    prompt,
		Response:  response,
	}

	line, err := json.Marshal(rec)
	if err != nil {
		return &WriteError{Path: j.path, Cause: err}
	}
	line = append(line, '\n')

	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return &WriteError{Path: j.path, Cause: err}
	}

	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &WriteError{Path: j.path, Cause: err}
	}

	if _, err := f.Write(line); err != nil {
		f.Close()
		return &WriteError{Path: j.path, Cause: err}
	}

	return f.Close()
}
