// Package config loads the bot's configuration from the environment and
// an optional logos.yaml file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application. The values are
// read by viper from a config file or environment variables; the two
// secrets come from the environment only.
type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Discord  DiscordConfig `mapstructure:"discord"`
	Groq     GroqConfig    `mapstructure:"groq"`
	Debate   DebateConfig  `mapstructure:"debate"`
}

// DiscordConfig stores the gateway settings.
type DiscordConfig struct {
	Token   string `mapstructure:"token"`
	GuildID string `mapstructure:"guild_id"`
}

// GroqConfig stores the completion-endpoint settings.
type GroqConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DebateConfig stores the loop timing knobs.
type DebateConfig struct {
	HistoryLimit      int           `mapstructure:"history_limit"`
	PollInterval      time.Duration `mapstructure:"poll_interval"`
	ViolationInterval time.Duration `mapstructure:"violation_interval"`
	ExchangeInterval  time.Duration `mapstructure:"exchange_interval"`
	SlowmodeSeconds   int           `mapstructure:"slowmode_seconds"`
}

// Load reads configuration from the given directory (and the working
// directory) plus the environment. The process refuses to start without
// the two secrets.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("log_level", "info")
	v.SetDefault("groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("groq.timeout", 30*time.Second)
	v.SetDefault("debate.history_limit", 5)
	v.SetDefault("debate.poll_interval", 5*time.Second)
	v.SetDefault("debate.violation_interval", 10*time.Second)
	v.SetDefault("debate.exchange_interval", 10*time.Second)
	v.SetDefault("debate.slowmode_seconds", 30)

	v.SetConfigName("logos")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if path != "" {
		v.AddConfigPath(path)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The secrets keep their conventional environment names.
	_ = v.BindEnv("discord.token", "DISCORD_BOT_TOKEN")
	_ = v.BindEnv("discord.guild_id", "DISCORD_GUILD_ID")
	_ = v.BindEnv("groq.api_key", "GROQ_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("config: DISCORD_BOT_TOKEN is required")
	}
	if cfg.Groq.APIKey == "" {
		return nil, fmt.Errorf("config: GROQ_API_KEY is required")
	}

	return &cfg, nil
}
