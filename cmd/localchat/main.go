package main

import (
	"flag"
	"fmt"
	"os"

	"LocalChat/internal/chatbot"
	"LocalChat/internal/config"
)

func main() {
	cfg := config.Default()
	var configFile string

	flag.StringVar(&configFile, "config", "", "Path to a TOML config file")
	flag.StringVar(&cfg.Host, "host", cfg.Host, "Ollama base URL")
	flag.StringVar(&cfg.Model, "model", cfg.Model, "Model specification (format: model:version)")
	flag.StringVar(&cfg.SystemPrompt, "system-prompt", cfg.SystemPrompt, "System instruction prepended to every prompt")
	flag.StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "Directory for chat snapshot files")
	flag.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Directory for application and interaction logs")
	flag.StringVar(&cfg.ArchivePath, "archive", cfg.ArchivePath, "Path to the session archive database")
	flag.StringVar(&cfg.SessionID, "session-id", "", "Resume an archived session by ID")
	flag.BoolVar(&cfg.ShowReasoning, "show-reasoning", false, "Print extracted reasoning traces")
	flag.BoolVar(&cfg.CacheEnabled, "cache", cfg.CacheEnabled, "Memoize backend responses per prompt")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable debug logging")
	flag.Parse()

	// File values sit between defaults and flags: file settings apply
	// only where no explicit flag was given.
	if configFile != "" {
		fileCfg := config.Default()
		if err := config.LoadFile(configFile, &fileCfg); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if !set["host"] {
			cfg.Host = fileCfg.Host
		}
		if !set["model"] {
			cfg.Model = fileCfg.Model
		}
		if !set["system-prompt"] {
			cfg.SystemPrompt = fileCfg.SystemPrompt
		}
		if !set["save-dir"] {
			cfg.SaveDir = fileCfg.SaveDir
		}
		if !set["log-dir"] {
			cfg.LogDir = fileCfg.LogDir
		}
		if !set["archive"] {
			cfg.ArchivePath = fileCfg.ArchivePath
		}
		if !set["show-reasoning"] {
			cfg.ShowReasoning = fileCfg.ShowReasoning
		}
		if !set["cache"] {
			cfg.CacheEnabled = fileCfg.CacheEnabled
		}
		if !set["debug"] {
			cfg.Debug = fileCfg.Debug
		}
		cfg.CacheTTL = fileCfg.CacheTTL
	}

	bot, err := chatbot.NewChatBot(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize chatbot: %v\n", err)
		os.Exit(1)
	}
	defer bot.Close()

	if err := bot.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
