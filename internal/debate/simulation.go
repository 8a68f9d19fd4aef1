package debate

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/logosbot/logos/internal/conversation"
	"github.com/logosbot/logos/internal/discord"
	"github.com/logosbot/logos/internal/llm"
)

// Simulation runs a persona-vs-persona debate: two context windows, two
// completions per round, both replies posted under their persona's name.
// Either persona emitting the termination token ends the round with
// nothing posted.
type Simulation struct {
	thread    discord.Thread
	completer llm.Completer
	stancer   llm.StanceGenerator
	persona1  string
	persona2  string
	topic     string
	config    Config
	logger    zerolog.Logger

	window1    *conversation.Window
	window2    *conversation.Window
	lastSeenID string
}

// NewSimulation creates a simulated-debate loop. The persona windows are
// seeded during Run, after the stances have been generated.
func NewSimulation(
	thread discord.Thread,
	completer llm.Completer,
	stancer llm.StanceGenerator,
	persona1, persona2, topic string,
	config Config,
	logger zerolog.Logger,
) *Simulation {
	return &Simulation{
		thread:    thread,
		completer: completer,
		stancer:   stancer,
		persona1:  persona1,
		persona2:  persona2,
		topic:     topic,
		config:    config.withDefaults(),
		logger:    logger.With().Str("loop", "simulation").Str("thread", thread.ID()).Logger(),
	}
}

// Run generates the two immutable stances, seeds the persona windows,
// and polls until a persona concludes or the context is canceled.
func (s *Simulation) Run(ctx context.Context) error {
	if err := s.Setup(ctx); err != nil {
		return err
	}
	return runLoop(ctx, s.Step)
}

// Setup performs the one-time stance generation for both personas.
func (s *Simulation) Setup(ctx context.Context) error {
	stance1, err := s.stancer.OneLineStance(ctx, s.persona1, s.persona2, s.topic)
	if err != nil {
		return fmt.Errorf("stance for %s: %w", s.persona1, err)
	}
	stance2, err := s.stancer.OneLineStance(ctx, s.persona2, s.persona1, s.topic)
	if err != nil {
		return fmt.Errorf("stance for %s: %w", s.persona2, err)
	}

	s.logger.Debug().
		Str("stance1", stance1).
		Str("stance2", stance2).
		Msg("stances generated")

	s.window1 = conversation.NewWindow(llm.PersonaSystemPrompt(s.persona1, s.persona2, s.topic, stance1))
	s.window2 = conversation.NewWindow(llm.PersonaSystemPrompt(s.persona2, s.persona1, s.topic, stance2))
	return nil
}

// Step performs one simulation round: feed the newest thread message to
// both personas, collect both replies, then post them in order.
func (s *Simulation) Step(ctx context.Context) (time.Duration, bool) {
	messages, err := s.thread.RecentMessages(ctx, s.config.HistoryLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("fetch failed, will poll again")
		return s.config.ExchangeInterval, false
	}
	if len(messages) == 0 {
		return s.config.ExchangeInterval, false
	}

	latest := messages[0]
	if latest.ID == s.lastSeenID {
		return s.config.ExchangeInterval, false
	}
	s.lastSeenID = latest.ID

	// Strip a leading persona label so a persona never sees its own
	// name quoted back at it.
	content := s.stripPersonaLabel(latest.Content)
	line := fmt.Sprintf("%s:%s", latest.Mention(), content)

	// Each window is pruned independently every round.
	s.window1.Append(conversation.RoleUser, line)
	s.window1.Prune()
	s.window2.Append(conversation.RoleUser, line)
	s.window2.Prune()

	reply1, err := s.completer.Complete(ctx, s.window1.Turns(), llm.ModelPersona, llm.DebateTemperature)
	if err != nil {
		s.logger.Error().Err(err).Str("persona", s.persona1).Msg("completion failed, continuing to poll")
		return s.config.ExchangeInterval, false
	}
	reply2, err := s.completer.Complete(ctx, s.window2.Turns(), llm.ModelPersona, llm.DebateTemperature)
	if err != nil {
		s.logger.Error().Err(err).Str("persona", s.persona2).Msg("completion failed, continuing to poll")
		return s.config.ExchangeInterval, false
	}

	if Classify(reply1) == VerdictConclude || Classify(reply2) == VerdictConclude {
		s.logger.Info().Msg("conclusion reached, ending debate")
		return 0, true
	}

	if err := s.thread.Send(ctx, fmt.Sprintf("**%s**: \n%s", s.persona1, reply1)); err != nil {
		s.logger.Warn().Err(err).Msg("could not post persona reply")
	}
	if err := s.thread.Send(ctx, fmt.Sprintf("**%s**: \n%s", s.persona2, reply2)); err != nil {
		s.logger.Warn().Err(err).Msg("could not post persona reply")
	}
	return s.config.ExchangeInterval, false
}

// stripPersonaLabel removes a leading "**Name**:" label from a message so
// the next persona does not quote it back.
func (s *Simulation) stripPersonaLabel(content string) string {
	for _, name := range []string{s.persona1, s.persona2} {
		label := fmt.Sprintf("**%s**:", name)
		if strings.HasPrefix(content, label) {
			return strings.TrimSpace(strings.TrimPrefix(content, label))
		}
	}
	return content
}
