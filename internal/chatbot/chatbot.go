// Package chatbot orchestrates the turn lifecycle: append the user message,
// assemble the prompt, call the backend, journal the exchange, append the
// raw assistant response. Turn processing is single-flight per session.
package chatbot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"LocalChat/internal/archive"
	"LocalChat/internal/backend"
	"LocalChat/internal/cache"
	"LocalChat/internal/chat"
	"LocalChat/internal/config"
	"LocalChat/internal/journal"
	"LocalChat/internal/prompt"
	"LocalChat/internal/store"
	"LocalChat/internal/telemetry"
)

// Gateway is the narrow backend seam the controller depends on.
type Gateway interface {
	ListModels(ctx context.Context) ([]string, error)
	Chat(ctx context.Context, model string, messages []chat.Message) (string, error)
}

// ChatBot owns the session and drives the turn pipeline. The presentation
// layer holds a reference and calls operations; it never mutates history
// directly.
type ChatBot struct {
	config  config.Config
	logger  *slog.Logger
	gateway Gateway
	journal *journal.Journal
	store   *store.Store
	archive *archive.Archive
	cache   *cache.Cache
	builder prompt.Builder

	mu      sync.Mutex
	session *chat.Session

	// Journal write failures degrade the audit trail, not the chat.
	// Reported once so a broken log path does not flood the error log.
	logFailure sync.Once

	cleanup func()
}

// New assembles a chatbot from explicit collaborators. The archive and
// cache may be nil (disabled). Tests use this constructor with a fake
// gateway.
func New(cfg config.Config, logger *slog.Logger, gw Gateway, jrnl *journal.Journal, st *store.Store, arch *archive.Archive, c *cache.Cache) *ChatBot {
	return &ChatBot{
		config:  cfg,
		logger:  logger,
		gateway: gw,
		journal: jrnl,
		store:   st,
		archive: arch,
		cache:   c,
		builder: prompt.NewBuilder(cfg.SystemPrompt),
		session: chat.NewSession(cfg.Model),
	}
}

// NewChatBot wires the production stack: file logging, telemetry, the
// Ollama gateway, journal, snapshot store, and session archive.
func NewChatBot(cfg config.Config) (*ChatBot, error) {
	logger, err := telemetry.InitLogger(cfg.LogDir, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx := context.Background()
	tracer, meter, cleanup, err := telemetry.InitTelemetry(ctx, cfg.LogDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	arch, err := archive.Open(cfg.ArchivePath)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to initialize session archive: %w", err)
	}

	var c *cache.Cache
	if cfg.CacheEnabled {
		c = cache.New(cfg.CacheTTL)
	}

	gw := backend.NewGateway(cfg.Host, tracer, meter)
	cb := New(cfg, logger, gw, journal.New(cfg.LogDir), store.New(cfg.SaveDir), arch, c)
	cb.cleanup = cleanup

	if cfg.SessionID != "" {
		if err := cb.Resume(cfg.SessionID); err != nil {
			logger.Warn("failed to resume session, starting fresh", "session_id", cfg.SessionID, "error", err)
		} else {
			logger.Info("resumed archived session", "session_id", cfg.SessionID)
		}
	}

	logger.Info("created new session", "session_id", cb.session.ID, "model", cb.session.Model)
	return cb, nil
}

// Close shuts down telemetry and the archive.
func (cb *ChatBot) Close() {
	if cb.archive != nil {
		if err := cb.archive.Close(); err != nil {
			cb.logger.Error("failed to close archive", "error", err)
		}
	}
	if cb.cleanup != nil {
		cb.cleanup()
	}
}

// Session returns a copy of the current session for rendering. The copy
// shares the message values (immutable) but not the slice header, so the
// caller cannot grow the history behind the controller's back.
func (cb *ChatBot) Session() chat.Session {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	snapshot := *cb.session
	snapshot.Messages = append([]chat.Message(nil), cb.session.Messages...)
	return snapshot
}

// Send runs one turn: the user message is appended first and stays in the
// history whatever happens next. On backend failure the typed error
// surfaces, no assistant message is fabricated, and nothing is journaled.
// On success the exchange is journaled, then the RAW response - reasoning
// markers included - is appended; splitting happens at render time.
func (cb *ChatBot) Send(ctx context.Context, text string) (string, error) {
	cb.mu.Lock()
	cb.session.Append(chat.User(text))
	history := append([]chat.Message(nil), cb.session.Messages...)
	sessionID := cb.session.ID
	model := cb.session.Model
	cb.mu.Unlock()

	assembled := cb.builder.Build(history)

	if cb.cache != nil {
		key := cache.Key(assembled)
		if cached, ok := cb.cache.Get(key); ok {
			cb.logger.Info("cache hit", "key", key[:16], "session_id", sessionID)
			cb.appendAssistant(cached)
			return cached, nil
		}
	}

	response, err := cb.gateway.Chat(ctx, model, assembled)
	if err != nil {
		return "", err
	}

	if err := cb.journal.Record(sessionID, chat.RoleUser, text, assembled, response); err != nil {
		cb.logFailure.Do(func() {
			cb.logger.Error("interaction log unwritable, audit trail degraded", "error", err)
		})
	}

	if cb.cache != nil {
		cb.cache.Put(cache.Key(assembled), response)
	}

	cb.appendAssistant(response)

	if cb.archive != nil {
		go func() {
			if err := cb.archiveSession(); err != nil {
				cb.logger.Error("failed to archive session", "error", err)
			}
		}()
	}

	return response, nil
}

func (cb *ChatBot) appendAssistant(response string) {
	cb.mu.Lock()
	cb.session.Append(chat.Assistant(response))
	cb.mu.Unlock()
}

func (cb *ChatBot) archiveSession() error {
	cb.mu.Lock()
	snapshot := *cb.session
	snapshot.Messages = append([]chat.Message(nil), cb.session.Messages...)
	cb.mu.Unlock()
	return cb.archive.Save(&snapshot)
}

// Reset discards the current history without persistence and starts a
// fresh session with a new id on the same model.
func (cb *ChatBot) Reset() chat.Session {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.session = chat.NewSession(cb.session.Model)
	cb.logger.Info("session reset", "session_id", cb.session.ID)
	return *cb.session
}

// SaveSnapshot writes the current history to a snapshot file and returns
// its path. store.ErrNothingToSave comes back unchanged when there is no
// exchange worth saving.
func (cb *ChatBot) SaveSnapshot() (string, error) {
	cb.mu.Lock()
	snapshot := *cb.session
	snapshot.Messages = append([]chat.Message(nil), cb.session.Messages...)
	cb.mu.Unlock()

	path, err := cb.store.Save(&snapshot)
	if err != nil {
		if errors.Is(err, store.ErrNothingToSave) {
			return "", err
		}
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	cb.logger.Info("session saved", "session_id", snapshot.ID, "path", path, "message_count", len(snapshot.Messages))
	return path, nil
}

// LoadSnapshot replaces the current session with one loaded from a raw
// snapshot payload. A validation failure leaves the current session
// untouched. The loaded session keeps the currently selected model and
// gets a fresh id.
func (cb *ChatBot) LoadSnapshot(raw []byte) (chat.Session, error) {
	loaded, err := cb.store.Load(raw)
	if err != nil {
		return chat.Session{}, err
	}

	cb.mu.Lock()
	loaded.Model = cb.session.Model
	cb.session = loaded
	snapshot := *cb.session
	cb.mu.Unlock()

	cb.logger.Info("session loaded from snapshot", "session_id", snapshot.ID, "message_count", len(snapshot.Messages))
	return snapshot, nil
}

// LoadSnapshotFile loads a snapshot from disk.
func (cb *ChatBot) LoadSnapshotFile(path string) (chat.Session, error) {
	loaded, err := cb.store.LoadFile(path)
	if err != nil {
		return chat.Session{}, err
	}

	cb.mu.Lock()
	loaded.Model = cb.session.Model
	cb.session = loaded
	snapshot := *cb.session
	cb.mu.Unlock()

	cb.logger.Info("session loaded from snapshot", "session_id", snapshot.ID, "path", path)
	return snapshot, nil
}

// Models lists the model identifiers the backend serves. On failure the
// list is empty and the error reports the backend as unavailable; callers
// treat that as "no selection possible", not a crash.
func (cb *ChatBot) Models(ctx context.Context) ([]string, error) {
	models, err := cb.gateway.ListModels(ctx)
	if err != nil {
		cb.logger.Warn("failed to list models", "error", err)
		return nil, err
	}
	return models, nil
}

// SetModel selects the active model for subsequent turns.
func (cb *ChatBot) SetModel(name string) {
	cb.mu.Lock()
	cb.session.Model = name
	cb.mu.Unlock()
	cb.logger.Info("model selected", "model", name)
}

// Resume replaces the current session with an archived one. The restored
// session carries the archived history and model under a fresh id.
func (cb *ChatBot) Resume(sessionID string) error {
	if cb.archive == nil {
		return errors.New("session archive disabled")
	}
	restored, err := cb.archive.Restore(sessionID)
	if err != nil {
		return err
	}

	cb.mu.Lock()
	if restored.Model == "" {
		restored.Model = cb.session.Model
	}
	cb.session = restored
	cb.mu.Unlock()
	return nil
}

// RecentSessions lists the newest archived sessions.
func (cb *ChatBot) RecentSessions(limit int) ([]archive.Meta, error) {
	if cb.archive == nil {
		return nil, errors.New("session archive disabled")
	}
	return cb.archive.Recent(limit)
}
