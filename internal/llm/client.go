package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog"

	"github.com/logosbot/logos/internal/conversation"
)

// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
const DefaultBaseURL = "https://api.groq.com/openai/v1"

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 30 * time.Second

// Config holds the settings for the completion client.
type Config struct {
	APIKey      string
	BaseURL     string
	StanceModel string
	Timeout     time.Duration
}

// Client implements Completer and StanceGenerator over an
// OpenAI-compatible chat-completion API.
type Client struct {
	api    openai.Client
	config Config
	logger zerolog.Logger
}

// Compile-time interface checks.
var (
	_ Completer       = (*Client)(nil)
	_ StanceGenerator = (*Client)(nil)
)

// NewClient creates a completion client.
func NewClient(config Config, logger zerolog.Logger) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("llm: api key cannot be empty")
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.StanceModel == "" {
		config.StanceModel = ModelPersona
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	// No automatic retries: the loops decide per iteration whether a
	// failed completion is retried or abandoned.
	api := openai.NewClient(
		option.WithAPIKey(config.APIKey),
		option.WithBaseURL(config.BaseURL),
		option.WithMaxRetries(0),
	)

	return &Client{
		api:    api,
		config: config,
		logger: logger.With().Str("component", "llm").Logger(),
	}, nil
}

// Complete sends the window to the endpoint and returns the first
// generated message's text.
func (c *Client) Complete(
	ctx context.Context,
	turns []conversation.Turn,
	model string,
	temperature float64,
) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	c.logger.Debug().
		Str("model", model).
		Float64("temperature", temperature).
		Int("turns", len(turns)).
		Msg("requesting completion")

	resp, err := c.api.Chat.Completions.New(callCtx, openai.ChatCompletionNewParams{
		Messages:    toMessageParams(turns),
		Model:       openai.ChatModel(model),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", &CompletionError{Op: "complete", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &CompletionError{Op: "complete", Err: fmt.Errorf("endpoint returned no choices")}
	}

	return resp.Choices[0].Message.Content, nil
}

// OneLineStance asks the model for a persona's one-sentence immutable
// stance. Low temperature keeps the stance stable across setup calls.
func (c *Client) OneLineStance(ctx context.Context, persona, opponent, topic string) (string, error) {
	turns := []conversation.Turn{
		{Role: conversation.RoleUser, Content: StancePrompt(persona, opponent, topic)},
	}

	stance, err := c.Complete(ctx, turns, c.config.StanceModel, StanceTemperature)
	if err != nil {
		return "", &CompletionError{Op: "stance", Err: err}
	}
	return stance, nil
}

func toMessageParams(turns []conversation.Turn) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, turn := range turns {
		switch turn.Role {
		case conversation.RoleSystem:
			msgs = append(msgs, openai.SystemMessage(turn.Content))
		case conversation.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(turn.Content))
		default:
			msgs = append(msgs, openai.UserMessage(turn.Content))
		}
	}
	return msgs
}
