// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/logosbot/logos/internal/conversation"
	"github.com/logosbot/logos/internal/discord"
	"github.com/logosbot/logos/internal/llm"
)

// Compile-time checks to ensure mocks implement their interfaces.
var (
	_ discord.Thread      = (*MockThread)(nil)
	_ discord.Platform    = (*MockPlatform)(nil)
	_ llm.Completer       = (*MockCompleter)(nil)
	_ llm.StanceGenerator = (*MockStanceGenerator)(nil)
)

// MockThread is an in-memory thread: a newest-first message history plus
// records of every send and delete.
type MockThread struct {
	ThreadID string
	// Name is the title the thread was created with.
	Name string
	// SelfID is attributed as the author of messages posted via Send.
	SelfID string
	// FetchErr, SendErr, DeleteErr force the corresponding call to fail.
	FetchErr  error
	SendErr   error
	DeleteErr error

	mu       sync.Mutex
	messages []discord.Message
	sent     []string
	deleted  []string
	seq      int
}

// NewMockThread creates a thread mock. selfID is the bot's identity.
func NewMockThread(threadID, selfID string) *MockThread {
	return &MockThread{ThreadID: threadID, SelfID: selfID}
}

// ID implements the Thread interface.
func (t *MockThread) ID() string {
	return t.ThreadID
}

// RecentMessages implements the Thread interface.
func (t *MockThread) RecentMessages(_ context.Context, limit int) ([]discord.Message, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.FetchErr != nil {
		return nil, t.FetchErr
	}
	if limit > len(t.messages) {
		limit = len(t.messages)
	}
	out := make([]discord.Message, limit)
	copy(out, t.messages[:limit])
	return out, nil
}

// Send implements the Thread interface. The posted message joins the
// history as the newest entry, authored by SelfID, the way a real thread
// would reflect it on the next poll.
func (t *MockThread) Send(_ context.Context, content string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.SendErr != nil {
		return t.SendErr
	}
	t.sent = append(t.sent, content)
	t.prepend(discord.Message{
		ID:         t.nextID(),
		AuthorID:   t.SelfID,
		AuthorName: "Logos",
		Content:    content,
	})
	return nil
}

// Delete implements the Thread interface.
func (t *MockThread) Delete(_ context.Context, messageID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.DeleteErr != nil {
		return t.DeleteErr
	}
	t.deleted = append(t.deleted, messageID)
	for i, m := range t.messages {
		if m.ID == messageID {
			t.messages = append(t.messages[:i], t.messages[i+1:]...)
			break
		}
	}
	return nil
}

// Post adds a message from an arbitrary author, as if a human had typed
// it into the thread. Returns the assigned message ID.
func (t *MockThread) Post(authorID, authorName, content string) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextID()
	t.prepend(discord.Message{
		ID:         id,
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    content,
	})
	return id
}

// Sent returns everything posted via Send, oldest first.
func (t *MockThread) Sent() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.sent))
	copy(out, t.sent)
	return out
}

// Deleted returns the IDs passed to Delete, oldest first.
func (t *MockThread) Deleted() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]string, len(t.deleted))
	copy(out, t.deleted)
	return out
}

func (t *MockThread) prepend(msg discord.Message) {
	t.messages = append([]discord.Message{msg}, t.messages...)
}

func (t *MockThread) nextID() string {
	t.seq++
	return fmt.Sprintf("msg-%d", t.seq)
}

// MockPlatform is a test implementation of the Platform interface.
type MockPlatform struct {
	Self           string
	GatewayLatency time.Duration
	// CreateThreadErr forces CreateThread to fail.
	CreateThreadErr error

	mu           sync.Mutex
	threads      map[string]*MockThread
	channels     map[string][]discord.Message
	slowmodes    map[string]int
	participants map[string][]string
	threadSeq    int
}

// NewMockPlatform creates a platform mock with the given bot identity.
func NewMockPlatform(selfID string) *MockPlatform {
	return &MockPlatform{
		Self:         selfID,
		threads:      make(map[string]*MockThread),
		channels:     make(map[string][]discord.Message),
		slowmodes:    make(map[string]int),
		participants: make(map[string][]string),
	}
}

// CreateThread implements the Platform interface.
func (p *MockPlatform) CreateThread(_ context.Context, _, name string, _ bool) (discord.Thread, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.CreateThreadErr != nil {
		return nil, p.CreateThreadErr
	}
	p.threadSeq++
	id := fmt.Sprintf("thread-%d", p.threadSeq)
	t := NewMockThread(id, p.Self)
	t.Name = name
	p.threads[id] = t
	return t, nil
}

// AddParticipant implements the Platform interface.
func (p *MockPlatform) AddParticipant(_ context.Context, threadID, userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.participants[threadID] = append(p.participants[threadID], userID)
	return nil
}

// SetSlowmode implements the Platform interface.
func (p *MockPlatform) SetSlowmode(_ context.Context, threadID string, seconds int) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.slowmodes[threadID] = seconds
	return nil
}

// RecentMessages implements the Platform interface.
func (p *MockPlatform) RecentMessages(_ context.Context, channelID string, limit int) ([]discord.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := p.channels[channelID]
	if limit > len(msgs) {
		limit = len(msgs)
	}
	out := make([]discord.Message, limit)
	copy(out, msgs[:limit])
	return out, nil
}

// SelfID implements the Platform interface.
func (p *MockPlatform) SelfID() string {
	return p.Self
}

// Latency implements the Platform interface.
func (p *MockPlatform) Latency() time.Duration {
	return p.GatewayLatency
}

// SeedChannel sets a channel's history, newest first.
func (p *MockPlatform) SeedChannel(channelID string, msgs []discord.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.channels[channelID] = msgs
}

// Thread returns the mock thread created under the given ID, or nil.
func (p *MockPlatform) Thread(threadID string) *MockThread {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.threads[threadID]
}

// Slowmode returns the slowmode set on a thread.
func (p *MockPlatform) Slowmode(threadID string) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.slowmodes[threadID]
}

// Participants returns the users added to a thread.
func (p *MockPlatform) Participants(threadID string) []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.participants[threadID]))
	copy(out, p.participants[threadID])
	return out
}

// CompleterCall records one call to the mock completer.
type CompleterCall struct {
	Turns       []conversation.Turn
	Model       string
	Temperature float64
}

// MockCompleter is a test implementation of the Completer interface. It
// replays queued responses in order; once the queue is empty it returns
// Fallback.
type MockCompleter struct {
	Fallback string
	Err      error

	// CompleteFunc allows tests to provide custom behavior.
	CompleteFunc func(ctx context.Context, turns []conversation.Turn, model string, temperature float64) (string, error)

	mu        sync.Mutex
	responses []string
	calls     []CompleterCall
}

// NewMockCompleter creates a mock completer with a fixed fallback reply.
func NewMockCompleter(fallback string) *MockCompleter {
	return &MockCompleter{Fallback: fallback}
}

// Queue appends responses to be returned by subsequent calls, in order.
func (c *MockCompleter) Queue(responses ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.responses = append(c.responses, responses...)
}

// Complete implements the Completer interface.
func (c *MockCompleter) Complete(
	ctx context.Context,
	turns []conversation.Turn,
	model string,
	temperature float64,
) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]conversation.Turn, len(turns))
	copy(snapshot, turns)
	c.calls = append(c.calls, CompleterCall{Turns: snapshot, Model: model, Temperature: temperature})

	if c.CompleteFunc != nil {
		return c.CompleteFunc(ctx, turns, model, temperature)
	}
	if c.Err != nil {
		return "", c.Err
	}
	if len(c.responses) > 0 {
		next := c.responses[0]
		c.responses = c.responses[1:]
		return next, nil
	}
	return c.Fallback, nil
}

// Calls returns every recorded call in order.
func (c *MockCompleter) Calls() []CompleterCall {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]CompleterCall, len(c.calls))
	copy(out, c.calls)
	return out
}

// MockStanceGenerator is a test implementation of StanceGenerator.
type MockStanceGenerator struct {
	// Stances maps persona name to its generated stance.
	Stances map[string]string
	Err     error
}

// OneLineStance implements the StanceGenerator interface.
func (g *MockStanceGenerator) OneLineStance(_ context.Context, persona, _, _ string) (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	if stance, ok := g.Stances[persona]; ok {
		return stance, nil
	}
	return fmt.Sprintf("%s stands firm.", persona), nil
}
