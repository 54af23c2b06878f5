// Package store persists session history as JSON snapshot files and loads
// them back with structural validation.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"LocalChat/internal/chat"
)

// ErrNothingToSave is returned when the history holds at most one message -
// a session with no completed exchange is not worth a snapshot.
var ErrNothingToSave = errors.New("nothing to save")

// FormatError signals that a snapshot failed structural validation on load.
// The caller's current session is left untouched.
type FormatError struct {
	Detail string
	Cause  error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return "invalid snapshot format: " + e.Detail + ": " + e.Cause.Error()
	}
	return "invalid snapshot format: " + e.Detail
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}

// snapshotMessage is the wire shape of one snapshot element. Pointer fields
// distinguish a missing key from an empty value; unknown extra fields are
// ignored by the decoder.
type snapshotMessage struct {
	Role    *string `json:"role"`
	Content *string `json:"content"`
}

// Store reads and writes session snapshots under a single directory.
type Store struct {
	dir string
}

// New creates a snapshot store rooted at dir.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save serializes the session history - role and content only, neither the
// session id nor the model survive a snapshot - to
// chat_history_<sessionID>.json and returns the written path. Returns
// ErrNothingToSave when the history holds at most one message.
func (s *Store) Save(sess *chat.Session) (string, error) {
	if len(sess.Messages) <= 1 {
		return "", ErrNothingToSave
	}

	data, err := json.MarshalIndent(sess.Messages, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create save directory: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("chat_history_%s.json", sess.ID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}

	return path, nil
}

// Load parses a raw snapshot into a fresh session. The top-level value must
// be an array and every element must carry both a known role and a string
// content; any violation rejects the whole snapshot with a FormatError so
// the caller's current session stays as it was. The returned session gets a
// new id - loaded history is decoupled from whatever session produced it.
// The model is left empty for the caller to fill in.
func (s *Store) Load(raw []byte) (*chat.Session, error) {
	var elements []snapshotMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return nil, &FormatError{Detail: "not an array of {role, content} messages", Cause: err}
	}

	messages := make([]chat.Message, len(elements))
	for i, el := range elements {
		if el.Role == nil {
			return nil, &FormatError{Detail: fmt.Sprintf("element %d is missing role", i)}
		}
		if el.Content == nil {
			return nil, &FormatError{Detail: fmt.Sprintf("element %d is missing content", i)}
		}
		role, err := chat.ParseRole(*el.Role)
		if err != nil {
			return nil, &FormatError{Detail: fmt.Sprintf("element %d", i), Cause: err}
		}
		messages[i] = chat.Message{Role: role, Content: *el.Content}
	}

	sess := chat.NewSession("")
	sess.Messages = messages
	return sess, nil
}

// LoadFile reads and parses a snapshot from disk.
func (s *Store) LoadFile(path string) (*chat.Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return s.Load(raw)
}
