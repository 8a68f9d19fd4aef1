// Package llm wraps the chat-completion endpoint used for argument
// analysis and persona generation.
package llm

import (
	"context"

	"github.com/logosbot/logos/internal/conversation"
)

// Completer issues a single chat completion over an ordered context
// window and returns the generated text.
type Completer interface {
	// Complete sends the turns, model identifier, and sampling
	// temperature to the endpoint. Failures surface as *CompletionError.
	Complete(ctx context.Context, turns []conversation.Turn, model string, temperature float64) (string, error)
}

// StanceGenerator produces the one-line immutable stance embedded into a
// simulated persona's system prompt.
type StanceGenerator interface {
	OneLineStance(ctx context.Context, persona, opponent, topic string) (string, error)
}
