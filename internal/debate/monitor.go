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

// Monitor referees a debate between two humans: it watches the thread
// for new messages, enforces strict turn alternation, and asks the model
// whether the newest argument commits a fallacy. It has no natural end
// condition; it runs until its context is canceled.
type Monitor struct {
	thread    discord.Thread
	completer llm.Completer
	selfID    string
	window    *conversation.Window
	config    Config
	logger    zerolog.Logger

	lastAnalyzedID string
	previousAuthor string
}

// NewMonitor creates a monitored-debate loop for a thread and topic.
// selfID is the bot's own identity, injected so the guard and the
// own-message filter are testable without a live connection.
func NewMonitor(
	thread discord.Thread,
	completer llm.Completer,
	selfID, topic string,
	config Config,
	logger zerolog.Logger,
) *Monitor {
	return &Monitor{
		thread:    thread,
		completer: completer,
		selfID:    selfID,
		window:    conversation.NewWindow(llm.RefereeSystemPrompt(topic)),
		config:    config.withDefaults(),
		logger:    logger.With().Str("loop", "monitor").Str("thread", thread.ID()).Logger(),
	}
}

// Run polls until the context is canceled.
func (m *Monitor) Run(ctx context.Context) error {
	return runLoop(ctx, m.Step)
}

// Step performs one poll tick: fetch, guard-check, analyze, reply or
// stay silent. It returns how long to wait before the next tick.
func (m *Monitor) Step(ctx context.Context) (time.Duration, bool) {
	messages, err := m.thread.RecentMessages(ctx, m.config.HistoryLimit)
	if err != nil {
		m.logger.Warn().Err(err).Msg("fetch failed, will poll again")
		return m.config.PollInterval, false
	}
	if len(messages) == 0 {
		return m.config.PollInterval, false
	}

	latest := messages[0]
	if latest.ID == m.lastAnalyzedID || latest.AuthorID == m.selfID {
		m.noteSeen(latest, messages)
		return m.config.PollInterval, false
	}

	if latest.AuthorID == m.previousAuthor {
		m.handleViolation(ctx, latest)
		m.noteSeen(latest, messages)
		return m.config.ViolationInterval, false
	}

	m.analyze(ctx, latest)
	m.noteSeen(latest, messages)
	return m.config.PollInterval, false
}

// handleViolation enforces the turn-based system: the offending message
// is deleted and a warning posted, with no model feedback generated.
func (m *Monitor) handleViolation(ctx context.Context, latest discord.Message) {
	m.logger.Info().Str("author", latest.AuthorID).Msg("turn violation")

	if err := m.thread.Delete(ctx, latest.ID); err != nil {
		m.logger.Warn().Err(err).Msg("could not delete offending message")
	}
	warning := fmt.Sprintf(
		"There is a strict turn based system at place here. Please respect that, %s.",
		latest.Mention(),
	)
	if err := m.thread.Send(ctx, warning); err != nil {
		m.logger.Warn().Err(err).Msg("could not post turn warning")
	}
}

// analyze appends the newest argument and asks the referee model for
// feedback. A completion failure aborts this iteration's reply only; the
// loop keeps polling.
func (m *Monitor) analyze(ctx context.Context, latest discord.Message) {
	m.window.Append(conversation.RoleUser, fmt.Sprintf("%s:%s", latest.Mention(), latest.Content))
	m.window.Prune()

	feedback, err := m.completer.Complete(
		ctx, m.window.AnnotatedTurns(), llm.ModelReferee, llm.RefereeTemperature,
	)
	if err != nil {
		m.logger.Error().Err(err).Msg("completion failed, continuing to poll")
		return
	}

	// The referee has no conclude path; the silence prefix alone
	// decides whether feedback is posted.
	if Silent(feedback) {
		m.logger.Debug().Msg("referee stayed silent")
		return
	}
	if err := m.thread.Send(ctx, feedback); err != nil {
		m.logger.Warn().Err(err).Msg("could not post feedback")
	}
}

// noteSeen records the de-duplication state for the next tick. The
// previous author is re-derived from the full fetch so that the guard
// compares each new message against the participant who spoke last.
func (m *Monitor) noteSeen(latest discord.Message, messages []discord.Message) {
	m.lastAnalyzedID = latest.ID
	m.previousAuthor = PreviousAuthor(messages, m.selfID)
}
