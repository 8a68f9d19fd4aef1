package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logosbot/logos/internal/config"
)

func setSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("DISCORD_BOT_TOKEN", "discord-token")
	t.Setenv("GROQ_API_KEY", "groq-key")
}

func TestLoad_RequiresSecrets(t *testing.T) {
	t.Setenv("DISCORD_BOT_TOKEN", "")
	t.Setenv("GROQ_API_KEY", "")

	_, err := config.Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DISCORD_BOT_TOKEN")

	t.Setenv("DISCORD_BOT_TOKEN", "discord-token")
	_, err = config.Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GROQ_API_KEY")
}

func TestLoad_Defaults(t *testing.T) {
	setSecrets(t)

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Groq.BaseURL)
	assert.Equal(t, 5, cfg.Debate.HistoryLimit)
	assert.Equal(t, 5*time.Second, cfg.Debate.PollInterval)
	assert.Equal(t, 10*time.Second, cfg.Debate.ViolationInterval)
	assert.Equal(t, 10*time.Second, cfg.Debate.ExchangeInterval)
	assert.Equal(t, 30, cfg.Debate.SlowmodeSeconds)
}

func TestLoad_FileOverrides(t *testing.T) {
	setSecrets(t)

	dir := t.TempDir()
	yaml := []byte(`
log_level: debug
debate:
  poll_interval: 2s
  slowmode_seconds: 10
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "logos.yaml"), yaml, 0o600))

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.Debate.PollInterval)
	assert.Equal(t, 10, cfg.Debate.SlowmodeSeconds)
	// Untouched values keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Debate.ExchangeInterval)
}

func TestLoad_GuildIDFromEnv(t *testing.T) {
	setSecrets(t)
	t.Setenv("DISCORD_GUILD_ID", "1457450076812349672")

	cfg, err := config.Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "1457450076812349672", cfg.Discord.GuildID)
}
