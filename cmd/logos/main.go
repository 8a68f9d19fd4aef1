// Package main provides the entry point for the Logos debate bot.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/logosbot/logos/internal/command"
	"github.com/logosbot/logos/internal/config"
	"github.com/logosbot/logos/internal/debate"
	"github.com/logosbot/logos/internal/discord"
	"github.com/logosbot/logos/internal/llm"
)

// ShutdownTimeout is the maximum time to wait for debate loops to stop.
const ShutdownTimeout = 10 * time.Second

func main() {
	os.Exit(runMain())
}

func runMain() int {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info().Msg("shutting down gracefully")
		cancel()
	}()

	if err := run(ctx, logger); err != nil {
		logger.Error().Err(err).Msg("logos exited with error")
		return 1
	}
	return 0
}

func run(ctx context.Context, logger zerolog.Logger) error {
	cfg, err := config.Load("")
	if err != nil {
		return err
	}

	if level, parseErr := zerolog.ParseLevel(cfg.LogLevel); parseErr == nil {
		logger = logger.Level(level)
	}

	logger.Info().Msg("logos starting")

	completions, err := llm.NewClient(llm.Config{
		APIKey:  cfg.Groq.APIKey,
		BaseURL: cfg.Groq.BaseURL,
		Timeout: cfg.Groq.Timeout,
	}, logger)
	if err != nil {
		return err
	}

	client, err := discord.NewClient(cfg.Discord.Token, logger)
	if err != nil {
		return err
	}

	registry := debate.NewRegistry(ctx, logger)
	handler := command.NewHandler(
		client, completions, completions, registry,
		command.Config{
			SlowmodeSeconds: cfg.Debate.SlowmodeSeconds,
			Debate: debate.Config{
				HistoryLimit:      cfg.Debate.HistoryLimit,
				PollInterval:      cfg.Debate.PollInterval,
				ViolationInterval: cfg.Debate.ViolationInterval,
				ExchangeInterval:  cfg.Debate.ExchangeInterval,
			},
		},
		logger,
	)
	bot := command.NewBot(client.Session(), handler, logger)

	if err := client.Connect(); err != nil {
		return err
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			logger.Warn().Err(closeErr).Msg("gateway close failed")
		}
	}()

	if err := bot.Register(cfg.Discord.GuildID); err != nil {
		return err
	}

	logger.Info().Msg("logos started, listening for commands")
	<-ctx.Done()

	// The parent context is already canceled; shutdown gets its own
	// deadline.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer shutdownCancel()
	if err := registry.StopAll(shutdownCtx); err != nil {
		logger.Warn().Err(err).Int("active", registry.Active()).Msg("debate loops did not stop in time")
	}

	return nil
}
