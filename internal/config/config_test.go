package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://localhost:11434", cfg.Host)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, "saves", cfg.SaveDir)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localchat.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
host = "http://10.0.0.5:11434"
model = "deepseek-r1:8b"
system_prompt = "be terse"
show_reasoning = true
cache_ttl = "30s"
`), 0644))

	cfg := Default()
	require.NoError(t, LoadFile(path, &cfg))

	assert.Equal(t, "http://10.0.0.5:11434", cfg.Host)
	assert.Equal(t, "deepseek-r1:8b", cfg.Model)
	assert.Equal(t, "be terse", cfg.SystemPrompt)
	assert.True(t, cfg.ShowReasoning)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)

	// Untouched keys keep their defaults.
	assert.Equal(t, "saves", cfg.SaveDir)
	assert.True(t, cfg.CacheEnabled)
}

func TestLoadFileInvalidTTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "localchat.toml")
	require.NoError(t, os.WriteFile(path, []byte(`cache_ttl = "soon"`), 0644))

	cfg := Default()
	assert.Error(t, LoadFile(path, &cfg))
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "absent.toml"), &cfg))
}
