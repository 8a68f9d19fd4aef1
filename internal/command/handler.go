// Package command implements the slash-command surface: debate, argue,
// simulate, help, and test.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/logosbot/logos/internal/conversation"
	"github.com/logosbot/logos/internal/debate"
	"github.com/logosbot/logos/internal/discord"
	"github.com/logosbot/logos/internal/llm"
)

// DefaultSlowmodeSeconds is the minimum interval between human posts in
// a debate thread.
const DefaultSlowmodeSeconds = 30

// Responder abstracts interaction replies so handlers are testable
// without a gateway. The protocol-level deferral happens in the
// discordgo glue before a handler runs.
type Responder interface {
	// Respond sends the command's reply, optionally visible only to
	// the requester.
	Respond(ctx context.Context, content string, ephemeral bool) error

	// RespondEmbed sends an embed reply.
	RespondEmbed(ctx context.Context, embed *discordgo.MessageEmbed) error
}

// Config holds command-layer settings.
type Config struct {
	SlowmodeSeconds int
	Debate          debate.Config
}

func (c Config) withDefaults() Config {
	if c.SlowmodeSeconds <= 0 {
		c.SlowmodeSeconds = DefaultSlowmodeSeconds
	}
	return c
}

// Handler executes the slash commands against the platform, the
// completion client, and the session registry.
type Handler struct {
	platform  discord.Platform
	completer llm.Completer
	stancer   llm.StanceGenerator
	registry  *debate.Registry
	config    Config
	logger    zerolog.Logger
}

// NewHandler wires the command dependencies.
func NewHandler(
	platform discord.Platform,
	completer llm.Completer,
	stancer llm.StanceGenerator,
	registry *debate.Registry,
	config Config,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		platform:  platform,
		completer: completer,
		stancer:   stancer,
		registry:  registry,
		config:    config.withDefaults(),
		logger:    logger.With().Str("component", "command").Logger(),
	}
}

// DebateRequest carries the /debate parameters.
type DebateRequest struct {
	ChannelID        string
	RequesterID      string
	RequesterMention string
	OpponentID       string
	OpponentMention  string
	Topic            string
}

// Debate creates a private debate thread and launches the matching loop:
// adversarial when the named opponent is the bot itself, monitored
// otherwise.
func (h *Handler) Debate(ctx context.Context, responder Responder, req DebateRequest) error {
	thread, err := h.platform.CreateThread(ctx, req.ChannelID, req.Topic, false)
	if err != nil {
		h.respondFailure(ctx, responder)
		return fmt.Errorf("create debate thread: %w", err)
	}

	if err := h.platform.AddParticipant(ctx, thread.ID(), req.RequesterID); err != nil {
		h.logger.Warn().Err(err).Msg("could not add requester to thread")
	}
	if err := h.platform.AddParticipant(ctx, thread.ID(), req.OpponentID); err != nil {
		h.logger.Warn().Err(err).Msg("could not add opponent to thread")
	}
	if err := h.platform.SetSlowmode(ctx, thread.ID(), h.config.SlowmodeSeconds); err != nil {
		h.logger.Warn().Err(err).Msg("could not set slowmode")
	}

	if req.OpponentID == h.platform.SelfID() {
		return h.startAdversarial(ctx, responder, thread, req)
	}
	return h.startMonitored(ctx, responder, thread, req)
}

func (h *Handler) startAdversarial(
	ctx context.Context,
	responder Responder,
	thread discord.Thread,
	req DebateRequest,
) error {
	if err := responder.Respond(ctx, adversarialAnnouncement(req.Topic, req.RequesterMention), false); err != nil {
		return fmt.Errorf("announce adversarial debate: %w", err)
	}
	if err := thread.Send(ctx, adversarialWelcome(req.Topic)); err != nil {
		h.logger.Warn().Err(err).Msg("could not post welcome")
	}

	opponent := debate.NewOpponent(
		thread, h.completer, h.platform.SelfID(), req.Topic, h.config.Debate, h.logger,
	)
	h.registry.Launch(debate.ModeAdversarial, thread.ID(), req.Topic, opponent.Run)
	return nil
}

func (h *Handler) startMonitored(
	ctx context.Context,
	responder Responder,
	thread discord.Thread,
	req DebateRequest,
) error {
	announcement := monitoredAnnouncement(req.Topic, req.RequesterMention, req.OpponentMention)
	if err := responder.Respond(ctx, announcement, false); err != nil {
		return fmt.Errorf("announce monitored debate: %w", err)
	}
	welcome := monitoredWelcome(req.Topic, req.RequesterMention, req.OpponentMention)
	if err := thread.Send(ctx, welcome); err != nil {
		h.logger.Warn().Err(err).Msg("could not post welcome")
	}

	monitor := debate.NewMonitor(
		thread, h.completer, h.platform.SelfID(), req.Topic, h.config.Debate, h.logger,
	)
	h.registry.Launch(debate.ModeMonitored, thread.ID(), req.Topic, monitor.Run)
	return nil
}

// ArgueRequest carries the /argue parameters.
type ArgueRequest struct {
	ChannelID string
	Argument  string
}

// Argue is the one-shot critique: the last five channel messages
// (excluding the bot's own) as context, the strategist persona as the
// system turn, and the submitted argument last. The critique goes back
// privately; a completion failure surfaces to the requester.
func (h *Handler) Argue(ctx context.Context, responder Responder, req ArgueRequest) error {
	history, err := h.platform.RecentMessages(ctx, req.ChannelID, debate.DefaultHistoryLimit)
	if err != nil {
		h.respondFailure(ctx, responder)
		return fmt.Errorf("fetch channel history: %w", err)
	}

	window := conversation.NewWindow(llm.CritiqueSystemPrompt)
	for _, m := range history {
		if m.AuthorID == h.platform.SelfID() {
			continue
		}
		window.Append(conversation.RoleUser, fmt.Sprintf("%s: %s", m.AuthorName, m.Content))
	}
	window.Append(conversation.RoleUser, req.Argument)

	critique, err := h.completer.Complete(ctx, window.Turns(), llm.ModelReferee, llm.RefereeTemperature)
	if err != nil {
		h.respondFailure(ctx, responder)
		return fmt.Errorf("critique argument: %w", err)
	}

	return responder.Respond(ctx, critique, true)
}

// SimulateRequest carries the /simulate parameters.
type SimulateRequest struct {
	ChannelID string
	Persona1  string
	Persona2  string
	Topic     string
}

// Simulate creates a public thread and launches the persona-vs-persona
// loop as a background task.
func (h *Handler) Simulate(ctx context.Context, responder Responder, req SimulateRequest) error {
	thread, err := h.platform.CreateThread(ctx, req.ChannelID, "Simulate: "+req.Topic, true)
	if err != nil {
		h.respondFailure(ctx, responder)
		return fmt.Errorf("create simulation thread: %w", err)
	}

	announcement := simulationAnnouncement(req.Topic, req.Persona1, req.Persona2)
	if err := responder.Respond(ctx, announcement, false); err != nil {
		return fmt.Errorf("announce simulation: %w", err)
	}
	if err := thread.Send(ctx, simulationIntro(req.Topic, req.Persona1, req.Persona2)); err != nil {
		h.logger.Warn().Err(err).Msg("could not post intro")
	}
	if err := h.platform.SetSlowmode(ctx, thread.ID(), h.config.SlowmodeSeconds); err != nil {
		h.logger.Warn().Err(err).Msg("could not set slowmode")
	}

	sim := debate.NewSimulation(
		thread, h.completer, h.stancer,
		req.Persona1, req.Persona2, req.Topic,
		h.config.Debate, h.logger,
	)
	h.registry.Launch(debate.ModeSimulated, thread.ID(), req.Topic, sim.Run)
	return nil
}

// Help replies with the static user guide.
func (h *Handler) Help(ctx context.Context, responder Responder) error {
	return responder.RespondEmbed(ctx, helpEmbed())
}

// Test replies privately with a liveness line and the gateway round-trip
// time.
func (h *Handler) Test(ctx context.Context, responder Responder) error {
	latency := h.platform.Latency().Round(time.Millisecond)
	return responder.Respond(ctx, fmt.Sprintf("The Logos bot is online! Gateway round-trip: %s", latency), true)
}

func (h *Handler) respondFailure(ctx context.Context, responder Responder) {
	if err := responder.Respond(ctx, GenericFailure, true); err != nil {
		h.logger.Warn().Err(err).Msg("could not deliver failure response")
	}
}
