package debate_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logosbot/logos/internal/conversation"
	"github.com/logosbot/logos/internal/debate"
	"github.com/logosbot/logos/internal/discord"
	"github.com/logosbot/logos/internal/llm"
	"github.com/logosbot/logos/internal/mocks"
)

func newOpponentFixture() (*debate.Opponent, *mocks.MockThread, *mocks.MockCompleter) {
	thread := mocks.NewMockThread("thread-1", selfID)
	completer := mocks.NewMockCompleter("Your premise assumes its own conclusion.")
	opponent := debate.NewOpponent(
		thread, completer, selfID, "tabs versus spaces",
		debate.DefaultConfig(), zerolog.Nop(),
	)
	return opponent, thread, completer
}

func TestOpponent_RepliesToHumanTurn(t *testing.T) {
	opponent, thread, completer := newOpponentFixture()
	ctx := context.Background()

	thread.Post("alice", "alice", "tabs are objectively better")
	_, done := opponent.Step(ctx)
	require.False(t, done)

	sent := thread.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Your premise assumes its own conclusion.", sent[0])

	calls := completer.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, llm.ModelOpponent, calls[0].Model)
	assert.InDelta(t, llm.DebateTemperature, calls[0].Temperature, 0.001)
}

// The bot's own posts join the window as assistant turns without
// triggering a completion.
func TestOpponent_OwnMessagesBecomeAssistantTurns(t *testing.T) {
	opponent, thread, completer := newOpponentFixture()
	ctx := context.Background()

	thread.Post("alice", "alice", "opening premise")
	opponent.Step(ctx) // replies, reply lands in history
	opponent.Step(ctx) // sees its own reply, appends as assistant
	require.Len(t, completer.Calls(), 1, "own message must not trigger a completion")

	thread.Post("alice", "alice", "rebuttal")
	opponent.Step(ctx)

	calls := completer.Calls()
	require.Len(t, calls, 2)
	roles := make([]conversation.Role, 0, len(calls[1].Turns))
	for _, turn := range calls[1].Turns {
		roles = append(roles, turn.Role)
	}
	assert.Equal(t, []conversation.Role{
		conversation.RoleSystem,
		conversation.RoleUser,
		conversation.RoleAssistant,
		conversation.RoleUser,
	}, roles)
}

// A reply containing the termination token ends the loop without
// posting that reply.
func TestOpponent_ConcludeEndsLoopWithoutPosting(t *testing.T) {
	opponent, thread, completer := newOpponentFixture()
	ctx := context.Background()

	completer.Queue("CONCLUDE")
	thread.Post("alice", "alice", "fine, you win")
	_, done := opponent.Step(ctx)

	assert.True(t, done)
	assert.Empty(t, thread.Sent())
}

func TestOpponent_DuplicatePollIsIgnored(t *testing.T) {
	opponent, thread, completer := newOpponentFixture()
	ctx := context.Background()

	thread.Post("alice", "alice", "one argument")
	opponent.Step(ctx)
	require.Len(t, completer.Calls(), 1)

	// No new message: same newest ID, no second completion. The reply
	// the bot just posted is newest, so one extra step absorbs it first.
	opponent.Step(ctx)
	opponent.Step(ctx)
	assert.Len(t, completer.Calls(), 1)
	assert.Len(t, thread.Sent(), 1)
}

// A failed post is a warning: the rebuttal is dropped, the loop keeps
// polling, and the next human message still gets a reply.
func TestOpponent_SendErrorKeepsLoopAlive(t *testing.T) {
	opponent, thread, completer := newOpponentFixture()
	ctx := context.Background()

	thread.SendErr = &discord.PlatformError{Op: "send message", Err: context.DeadlineExceeded}
	thread.Post("alice", "alice", "tabs are objectively better")
	_, done := opponent.Step(ctx)
	require.False(t, done)
	assert.Empty(t, thread.Sent())

	thread.SendErr = nil
	thread.Post("alice", "alice", "still waiting")
	_, done = opponent.Step(ctx)
	require.False(t, done)
	assert.Len(t, completer.Calls(), 2)
	assert.Len(t, thread.Sent(), 1)
}

func TestOpponent_CompletionErrorKeepsLoopAlive(t *testing.T) {
	opponent, thread, completer := newOpponentFixture()
	ctx := context.Background()

	completer.Err = &llm.CompletionError{Op: "complete", Err: context.DeadlineExceeded}
	thread.Post("alice", "alice", "argument")
	_, done := opponent.Step(ctx)

	assert.False(t, done)
	assert.Empty(t, thread.Sent())
}
