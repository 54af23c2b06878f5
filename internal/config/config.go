// Package config holds application configuration: compiled-in defaults,
// optionally overlaid by a TOML file, overlaid by command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultModel is used when no model is configured or selected.
const DefaultModel = "llama3.2:latest"

// Config holds application configuration.
type Config struct {
	Host          string        `toml:"host"`           // Ollama base URL
	Model         string        `toml:"model"`          // model in "name:version" form
	SystemPrompt  string        `toml:"system_prompt"`  // fixed instruction prepended to every prompt
	SaveDir       string        `toml:"save_dir"`       // chat snapshot directory
	LogDir        string        `toml:"log_dir"`        // interaction log directory
	ArchivePath   string        `toml:"archive_path"`   // SQLite session archive
	SessionID     string        `toml:"-"`              // archived session to resume at startup
	ShowReasoning bool          `toml:"show_reasoning"` // print extracted reasoning traces
	CacheEnabled  bool          `toml:"cache_enabled"`  // memoize responses per prompt
	CacheTTL      time.Duration `toml:"-"`              // response cache lifetime
	CacheTTLText  string        `toml:"cache_ttl"`      // TTL as a duration string in the file
	Debug         bool          `toml:"debug"`
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Host:         "http://localhost:11434",
		Model:        DefaultModel,
		SaveDir:      "saves",
		LogDir:       "logs",
		ArchivePath:  "localchat.db",
		CacheEnabled: true,
		CacheTTL:     15 * time.Minute,
	}
}

// LoadFile overlays cfg with values from a TOML file.
func LoadFile(path string, cfg *Config) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if cfg.CacheTTLText != "" {
		ttl, err := time.ParseDuration(cfg.CacheTTLText)
		if err != nil {
			return fmt.Errorf("invalid cache_ttl in %s: %w", path, err)
		}
		cfg.CacheTTL = ttl
	}
	return nil
}
