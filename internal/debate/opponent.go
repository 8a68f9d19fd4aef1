package debate

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/logosbot/logos/internal/conversation"
	"github.com/logosbot/logos/internal/discord"
	"github.com/logosbot/logos/internal/llm"
)

// Opponent argues against the user directly. Every new message joins a
// single context window: human turns as user, the bot's own posts as
// assistant, keeping the conversation coherent for the model. The loop
// ends when the model emits the termination token.
type Opponent struct {
	thread    discord.Thread
	completer llm.Completer
	selfID    string
	window    *conversation.Window
	config    Config
	logger    zerolog.Logger

	lastSeenID string
}

// NewOpponent creates an adversarial-debate loop for a thread and topic.
func NewOpponent(
	thread discord.Thread,
	completer llm.Completer,
	selfID, topic string,
	config Config,
	logger zerolog.Logger,
) *Opponent {
	return &Opponent{
		thread:    thread,
		completer: completer,
		selfID:    selfID,
		window:    conversation.NewWindow(llm.OpponentSystemPrompt(topic)),
		config:    config.withDefaults(),
		logger:    logger.With().Str("loop", "opponent").Str("thread", thread.ID()).Logger(),
	}
}

// Run polls until the model concludes or the context is canceled.
func (o *Opponent) Run(ctx context.Context) error {
	return runLoop(ctx, o.Step)
}

// Step performs one poll tick. No turn guard and no read-only
// annotation in this mode; the bot is a participant, not a referee.
func (o *Opponent) Step(ctx context.Context) (time.Duration, bool) {
	messages, err := o.thread.RecentMessages(ctx, o.config.HistoryLimit)
	if err != nil {
		o.logger.Warn().Err(err).Msg("fetch failed, will poll again")
		return o.config.ExchangeInterval, false
	}
	if len(messages) == 0 {
		return o.config.ExchangeInterval, false
	}

	latest := messages[0]
	if latest.ID == o.lastSeenID {
		return o.config.ExchangeInterval, false
	}
	o.lastSeenID = latest.ID

	line := fmt.Sprintf("%s:%s", latest.Mention(), latest.Content)
	if latest.AuthorID == o.selfID {
		o.window.Append(conversation.RoleAssistant, line)
		o.window.Prune()
		return o.config.ExchangeInterval, false
	}

	o.window.Append(conversation.RoleUser, line)
	o.window.Prune()

	reply, err := o.completer.Complete(ctx, o.window.Turns(), llm.ModelOpponent, llm.DebateTemperature)
	if err != nil {
		o.logger.Error().Err(err).Msg("completion failed, continuing to poll")
		return o.config.ExchangeInterval, false
	}

	if Classify(reply) == VerdictConclude {
		o.logger.Info().Msg("model concluded, ending debate")
		return 0, true
	}

	if err := o.thread.Send(ctx, reply); err != nil {
		o.logger.Warn().Err(err).Msg("could not post rebuttal")
	}
	return o.config.ExchangeInterval, false
}
