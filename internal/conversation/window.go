// Package conversation maintains the bounded rolling context window sent
// to the language model on each completion call.
package conversation

import "strings"

// MaxTurns is the maximum number of turns a window holds after pruning.
const MaxTurns = 5

// keepRecent is how many trailing turns survive a prune alongside the
// system turn.
const keepRecent = MaxTurns - 1

// ReadOnlyMarker is appended to prior user turns so the model judges only
// the newest one.
const ReadOnlyMarker = "** READ ONLY **"

// Role identifies who produced a turn.
type Role string

// Turn roles as the completion API understands them.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged message in a context window.
type Turn struct {
	Role    Role
	Content string
}

// Window is an ordered sequence of turns. The first turn is the system
// instruction and is never evicted. A window is owned by exactly one
// debate loop; it is not safe for concurrent use.
type Window struct {
	turns []Turn
}

// NewWindow creates a window seeded with a system instruction.
func NewWindow(systemPrompt string) *Window {
	return &Window{
		turns: []Turn{{Role: RoleSystem, Content: systemPrompt}},
	}
}

// Append adds a turn to the end of the window.
func (w *Window) Append(role Role, content string) {
	w.turns = append(w.turns, Turn{Role: role, Content: content})
}

// Prune bounds the window at MaxTurns by keeping the system turn plus the
// most recent keepRecent turns, preserving order. Pruning a window at or
// under the limit is a no-op.
func (w *Window) Prune() {
	if len(w.turns) <= MaxTurns {
		return
	}

	pruned := make([]Turn, 0, MaxTurns)
	pruned = append(pruned, w.turns[0])
	pruned = append(pruned, w.turns[len(w.turns)-keepRecent:]...)
	w.turns = pruned
}

// Len returns the number of turns currently held.
func (w *Window) Len() int {
	return len(w.turns)
}

// Turns returns a copy of the window's turns, oldest first.
func (w *Window) Turns() []Turn {
	out := make([]Turn, len(w.turns))
	copy(out, w.turns)
	return out
}

// AnnotatedTurns returns a copy of the window in which every user turn
// except the newest carries exactly one ReadOnlyMarker. The stored turns
// are never mutated, so repeated calls across poll iterations do not
// stack markers.
func (w *Window) AnnotatedTurns() []Turn {
	out := w.Turns()
	for i := 0; i < len(out)-1; i++ {
		if out[i].Role != RoleUser {
			continue
		}
		if strings.HasSuffix(out[i].Content, ReadOnlyMarker) {
			continue
		}
		out[i].Content += ReadOnlyMarker
	}
	return out
}
