package debate_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logosbot/logos/internal/conversation"
	"github.com/logosbot/logos/internal/debate"
	"github.com/logosbot/logos/internal/llm"
	"github.com/logosbot/logos/internal/mocks"
)

func newSimulationFixture() (*debate.Simulation, *mocks.MockThread, *mocks.MockCompleter) {
	thread := mocks.NewMockThread("thread-1", selfID)
	completer := mocks.NewMockCompleter("I hold my ground.")
	stancer := &mocks.MockStanceGenerator{Stances: map[string]string{
		"Plato":    "Ideal forms are the only true reality.",
		"Diogenes": "Your forms are shadows; behold, a plucked chicken.",
	}}
	sim := debate.NewSimulation(
		thread, completer, stancer,
		"Plato", "Diogenes", "the nature of reality",
		debate.DefaultConfig(), zerolog.Nop(),
	)
	return sim, thread, completer
}

func TestSimulation_SetupSeedsPersonaWindows(t *testing.T) {
	sim, thread, completer := newSimulationFixture()
	ctx := context.Background()

	require.NoError(t, sim.Setup(ctx))

	thread.Post(selfID, "Logos", "This thread hosts the debate.")
	_, done := sim.Step(ctx)
	require.False(t, done)

	calls := completer.Calls()
	require.Len(t, calls, 2, "one completion per persona per round")

	sys1 := calls[0].Turns[0]
	require.Equal(t, conversation.RoleSystem, sys1.Role)
	assert.Contains(t, sys1.Content, "ACT AS Plato")
	assert.Contains(t, sys1.Content, "Ideal forms are the only true reality.")

	sys2 := calls[1].Turns[0]
	assert.Contains(t, sys2.Content, "ACT AS Diogenes")
	assert.Contains(t, sys2.Content, "a plucked chicken")

	assert.Equal(t, llm.ModelPersona, calls[0].Model)
	assert.InDelta(t, llm.DebateTemperature, calls[0].Temperature, 0.001)
}

func TestSimulation_PostsBothRepliesWithPersonaLabels(t *testing.T) {
	sim, thread, completer := newSimulationFixture()
	ctx := context.Background()
	require.NoError(t, sim.Setup(ctx))

	completer.Queue("Forms are eternal.", "Show me one, then.")
	thread.Post(selfID, "Logos", "Begin.")
	_, done := sim.Step(ctx)
	require.False(t, done)

	sent := thread.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "**Plato**: \nForms are eternal.", sent[0])
	assert.Equal(t, "**Diogenes**: \nShow me one, then.", sent[1])
}

// Either persona emitting the termination token ends the loop with
// neither reply posted.
func TestSimulation_ConcludeSuppressesBothReplies(t *testing.T) {
	sim, thread, completer := newSimulationFixture()
	ctx := context.Background()
	require.NoError(t, sim.Setup(ctx))

	completer.Queue("CONCLUDE: done", "I was only warming up.")
	thread.Post(selfID, "Logos", "Begin.")
	_, done := sim.Step(ctx)

	assert.True(t, done)
	assert.Empty(t, thread.Sent())
}

// A leading persona label on the newest message is stripped before the
// text is fed to either persona.
func TestSimulation_StripsPersonaLabel(t *testing.T) {
	sim, thread, completer := newSimulationFixture()
	ctx := context.Background()
	require.NoError(t, sim.Setup(ctx))

	thread.Post(selfID, "Logos", "**Diogenes**: \nBehold, a chicken.")
	_, done := sim.Step(ctx)
	require.False(t, done)

	calls := completer.Calls()
	require.Len(t, calls, 2)
	for _, call := range calls {
		last := call.Turns[len(call.Turns)-1]
		assert.NotContains(t, last.Content, "**Diogenes**:")
		assert.Contains(t, last.Content, "Behold, a chicken.")
	}
}

// Both persona windows are pruned independently every round.
func TestSimulation_BothWindowsStayBounded(t *testing.T) {
	sim, thread, completer := newSimulationFixture()
	ctx := context.Background()
	require.NoError(t, sim.Setup(ctx))

	for i := 0; i < 8; i++ {
		thread.Post("someone", "someone", "another round of argument")
		_, done := sim.Step(ctx)
		require.False(t, done)
	}

	calls := completer.Calls()
	require.NotEmpty(t, calls)
	for _, call := range calls[len(calls)-2:] {
		assert.LessOrEqual(t, len(call.Turns), conversation.MaxTurns)
		assert.Equal(t, conversation.RoleSystem, call.Turns[0].Role)
	}
}

func TestSimulation_StanceFailureSurfacesFromRun(t *testing.T) {
	thread := mocks.NewMockThread("thread-1", selfID)
	completer := mocks.NewMockCompleter("reply")
	stancer := &mocks.MockStanceGenerator{
		Err: &llm.CompletionError{Op: "stance", Err: context.DeadlineExceeded},
	}
	sim := debate.NewSimulation(
		thread, completer, stancer,
		"Plato", "Diogenes", "reality",
		debate.DefaultConfig(), zerolog.Nop(),
	)

	err := sim.Run(context.Background())
	require.Error(t, err)
	assert.True(t, llm.IsCompletionError(err))
}

func TestSimulation_CompletionErrorSkipsRound(t *testing.T) {
	sim, thread, completer := newSimulationFixture()
	ctx := context.Background()
	require.NoError(t, sim.Setup(ctx))

	completer.Err = &llm.CompletionError{Op: "complete", Err: context.DeadlineExceeded}
	thread.Post(selfID, "Logos", "Begin.")
	_, done := sim.Step(ctx)

	assert.False(t, done)
	assert.Empty(t, thread.Sent())
}
