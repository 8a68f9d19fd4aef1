package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// threadArchiveMinutes is the auto-archive duration for debate threads.
const threadArchiveMinutes = 1440

// Client implements Platform over a discordgo session.
type Client struct {
	session *discordgo.Session
	logger  zerolog.Logger
}

var _ Platform = (*Client)(nil)

// NewClient creates a gateway client. The session is not connected until
// Connect is called.
func NewClient(token string, logger zerolog.Logger) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("discord: bot token cannot be empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent

	return &Client{
		session: session,
		logger:  logger.With().Str("component", "discord").Logger(),
	}, nil
}

// Session exposes the underlying discordgo session for command
// registration and interaction handling.
func (c *Client) Session() *discordgo.Session {
	return c.session
}

// Connect opens the gateway connection.
func (c *Client) Connect() error {
	if err := c.session.Open(); err != nil {
		return fmt.Errorf("discord: open gateway: %w", err)
	}
	c.logger.Info().Str("user", c.session.State.User.Username).Msg("gateway connected")
	return nil
}

// Close shuts the gateway connection down.
func (c *Client) Close() error {
	if err := c.session.Close(); err != nil {
		return fmt.Errorf("discord: close gateway: %w", err)
	}
	return nil
}

// SelfID returns the bot's own user ID.
func (c *Client) SelfID() string {
	if c.session.State.User == nil {
		return ""
	}
	return c.session.State.User.ID
}

// Latency reports the gateway heartbeat round-trip time.
func (c *Client) Latency() time.Duration {
	return c.session.HeartbeatLatency()
}

// CreateThread creates a thread under the channel.
func (c *Client) CreateThread(ctx context.Context, channelID, name string, public bool) (Thread, error) {
	threadType := discordgo.ChannelTypeGuildPrivateThread
	if public {
		threadType = discordgo.ChannelTypeGuildPublicThread
	}

	channel, err := c.session.ThreadStart(
		channelID, name, threadType, threadArchiveMinutes,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return nil, &PlatformError{Op: "create thread", Err: err}
	}

	return &thread{client: c, id: channel.ID}, nil
}

// AddParticipant adds a user to a thread.
func (c *Client) AddParticipant(ctx context.Context, threadID, userID string) error {
	if err := c.session.ThreadMemberAdd(threadID, userID, discordgo.WithContext(ctx)); err != nil {
		return &PlatformError{Op: "add participant", Err: err}
	}
	return nil
}

// SetSlowmode sets the minimum interval between user posts in a thread.
func (c *Client) SetSlowmode(ctx context.Context, threadID string, seconds int) error {
	_, err := c.session.ChannelEdit(threadID, &discordgo.ChannelEdit{
		RateLimitPerUser: &seconds,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return &PlatformError{Op: "set slowmode", Err: err}
	}
	return nil
}

// RecentMessages fetches up to limit channel messages, newest first.
func (c *Client) RecentMessages(ctx context.Context, channelID string, limit int) ([]Message, error) {
	msgs, err := c.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, &PlatformError{Op: "fetch messages", Err: err}
	}

	out := make([]Message, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, convertMessage(m))
	}
	return out, nil
}

// ThreadHandle wraps an existing thread ID in a Thread. Used when a loop
// is attached to a thread the client did not create in this process.
func (c *Client) ThreadHandle(threadID string) Thread {
	return &thread{client: c, id: threadID}
}

// thread implements Thread against one channel ID.
type thread struct {
	client *Client
	id     string
}

var _ Thread = (*thread)(nil)

func (t *thread) ID() string {
	return t.id
}

func (t *thread) RecentMessages(ctx context.Context, limit int) ([]Message, error) {
	return t.client.RecentMessages(ctx, t.id, limit)
}

func (t *thread) Send(ctx context.Context, content string) error {
	_, err := t.client.session.ChannelMessageSend(t.id, content, discordgo.WithContext(ctx))
	if err != nil {
		return &PlatformError{Op: "send message", Err: err}
	}
	return nil
}

func (t *thread) Delete(ctx context.Context, messageID string) error {
	err := t.client.session.ChannelMessageDelete(t.id, messageID, discordgo.WithContext(ctx))
	if err != nil {
		return &PlatformError{Op: "delete message", Err: err}
	}
	return nil
}

func convertMessage(m *discordgo.Message) Message {
	msg := Message{
		ID:      m.ID,
		Content: m.ContentWithMentionsReplaced(),
	}
	if m.Author != nil {
		msg.AuthorID = m.Author.ID
		msg.AuthorName = m.Author.Username
	}
	return msg
}
