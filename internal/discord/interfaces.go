// Package discord provides the platform abstraction the debate loops and
// commands run against, plus the discordgo-backed implementation.
package discord

import (
	"context"
	"fmt"
	"time"
)

// Message is one platform message with the metadata the loops need.
type Message struct {
	ID         string
	AuthorID   string
	AuthorName string
	Content    string
}

// Mention renders the author as a platform mention.
func (m Message) Mention() string {
	return fmt.Sprintf("<@%s>", m.AuthorID)
}

// Thread abstracts the messaging primitives a debate loop uses on its
// own thread.
type Thread interface {
	// ID returns the thread's channel ID.
	ID() string

	// RecentMessages fetches up to limit messages, newest first.
	RecentMessages(ctx context.Context, limit int) ([]Message, error)

	// Send posts a message to the thread.
	Send(ctx context.Context, content string) error

	// Delete removes a message from the thread.
	Delete(ctx context.Context, messageID string) error
}

// Platform abstracts the channel-level operations the command handlers
// use. The gateway connection itself stays outside this interface.
type Platform interface {
	// CreateThread creates a thread under the channel. Private threads
	// are used for moderated debates, public ones for simulations.
	CreateThread(ctx context.Context, channelID, name string, public bool) (Thread, error)

	// AddParticipant adds a user to a thread.
	AddParticipant(ctx context.Context, threadID, userID string) error

	// SetSlowmode sets the minimum interval between user posts.
	SetSlowmode(ctx context.Context, threadID string, seconds int) error

	// RecentMessages fetches up to limit channel messages, newest first.
	RecentMessages(ctx context.Context, channelID string, limit int) ([]Message, error)

	// SelfID returns the bot's own user ID.
	SelfID() string

	// Latency reports the gateway heartbeat round-trip time.
	Latency() time.Duration
}
