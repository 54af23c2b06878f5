// Package archive keeps a SQLite copy of completed sessions so past
// conversations can be listed and resumed across runs.
package archive

import (
	"database/sql"
	"fmt"
	"time"

	"LocalChat/internal/chat"

	_ "github.com/mattn/go-sqlite3"
)

// Meta is the listing row for an archived session.
type Meta struct {
	ID        string
	Model     string
	StartTime time.Time
	Messages  int
}

// Archive is the SQLite-backed session archive.
type Archive struct {
	db *sql.DB
}

// Open opens (creating if needed) the archive database at path.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive database: %w", err)
	}

	createSessionsTable := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		start_time DATETIME,
		model TEXT
	);`

	createMessagesTable := `
	CREATE TABLE IF NOT EXISTS messages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT,
		seq INTEGER,
		role TEXT,
		content TEXT,
		FOREIGN KEY(session_id) REFERENCES sessions(id)
	);`

	if _, err := db.Exec(createSessionsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	if _, err := db.Exec(createMessagesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create messages table: %w", err)
	}

	return &Archive{db: db}, nil
}

// Close releases the database handle.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Save upserts the session row and rewrites its messages in one
// transaction, keeping the stored copy equal to the in-memory history.
func (a *Archive) Save(sess *chat.Session) error {
	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT OR REPLACE INTO sessions (id, start_time, model) VALUES (?, ?, ?)",
		sess.ID, sess.StartTime, sess.Model,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM messages WHERE session_id = ?", sess.ID); err != nil {
		return fmt.Errorf("failed to clear messages: %w", err)
	}

	for i, msg := range sess.Messages {
		_, err = tx.Exec(
			"INSERT INTO messages (session_id, seq, role, content) VALUES (?, ?, ?, ?)",
			sess.ID, i, msg.Role.String(), msg.Content,
		)
		if err != nil {
			return fmt.Errorf("failed to save message: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Restore loads an archived session's history into a fresh session. The
// archived model is kept; the id is regenerated - a restored history starts
// a new session, same as a snapshot load.
func (a *Archive) Restore(sessionID string) (*chat.Session, error) {
	var model string
	var startTime time.Time

	err := a.db.QueryRow("SELECT model, start_time FROM sessions WHERE id = ?", sessionID).
		Scan(&model, &startTime)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	rows, err := a.db.Query(
		"SELECT role, content FROM messages WHERE session_id = ? ORDER BY seq",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}
	defer rows.Close()

	messages := []chat.Message{}
	for rows.Next() {
		var role, content string
		if err := rows.Scan(&role, &content); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		parsed, err := chat.ParseRole(role)
		if err != nil {
			return nil, fmt.Errorf("archived message rejected: %w", err)
		}
		messages = append(messages, chat.Message{Role: parsed, Content: content})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}

	sess := chat.NewSession(model)
	sess.Messages = messages
	return sess, nil
}

// Recent lists the newest archived sessions, most recent first.
func (a *Archive) Recent(limit int) ([]Meta, error) {
	rows, err := a.db.Query(`
		SELECT s.id, s.model, s.start_time, COUNT(m.id)
		FROM sessions s LEFT JOIN messages m ON m.session_id = s.id
		GROUP BY s.id ORDER BY s.start_time DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	metas := []Meta{}
	for rows.Next() {
		var m Meta
		if err := rows.Scan(&m.ID, &m.Model, &m.StartTime, &m.Messages); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		metas = append(metas, m)
	}
	return metas, rows.Err()
}
