package command

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// commandDefinitions is the application-command surface registered with
// Discord.
func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "debate",
			Description: "The main command for starting a debate and having Logos monitor it",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "member",
					Description: "The member to debate; pick Logos itself for an AI opponent",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "topic",
					Description: "The debate topic",
					Required:    true,
				},
			},
		},
		{
			Name:        "argue",
			Description: "Gives the user a personal feedback from the bot on how to better strengthen their argument",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "argument",
					Description: "The argument to critique",
					Required:    true,
				},
			},
		},
		{
			Name:        "simulate",
			Description: "Simulates a real debate between two AI personas for a topic of your choice",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "persona1",
					Description: "The first persona",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "persona2",
					Description: "The second persona",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "topic",
					Description: "The debate topic",
					Required:    true,
				},
			},
		},
		{
			Name:        "help",
			Description: "A help command that introduces one to Logos.",
		},
		{
			Name:        "test",
			Description: "A secret message!",
		},
	}
}

// Bot binds the handler to a discordgo session: it registers the
// commands and routes interactions.
type Bot struct {
	session *discordgo.Session
	handler *Handler
	logger  zerolog.Logger
}

// NewBot creates the command binding. Call Register after the gateway
// connection is open.
func NewBot(session *discordgo.Session, handler *Handler, logger zerolog.Logger) *Bot {
	bot := &Bot{
		session: session,
		handler: handler,
		logger:  logger.With().Str("component", "bot").Logger(),
	}
	session.AddHandler(bot.onInteraction)
	return bot
}

// Register creates the application commands. With a guild ID the
// commands appear instantly in that guild; globally they can take up to
// an hour to propagate.
func (b *Bot) Register(guildID string) error {
	appID := b.session.State.User.ID
	for _, cmd := range commandDefinitions() {
		if _, err := b.session.ApplicationCommandCreate(appID, guildID, cmd); err != nil {
			return fmt.Errorf("register /%s: %w", cmd.Name, err)
		}
	}
	b.logger.Info().Str("guild", guildID).Msg("commands registered")
	return nil
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	ctx := context.Background()
	responder := &interactionResponder{session: s, interaction: i.Interaction}

	var err error
	switch data.Name {
	case "debate":
		err = b.dispatchDebate(ctx, responder, s, i)
	case "argue":
		err = b.dispatchArgue(ctx, responder, i)
	case "simulate":
		err = b.dispatchSimulate(ctx, responder, i)
	case "help":
		err = b.withDeferral(ctx, responder, false, func() error {
			return b.handler.Help(ctx, responder)
		})
	case "test":
		err = b.withDeferral(ctx, responder, true, func() error {
			return b.handler.Test(ctx, responder)
		})
	default:
		return
	}

	if err != nil {
		b.logger.Error().Err(err).Str("command", data.Name).Msg("command failed")
	}
}

func (b *Bot) dispatchDebate(
	ctx context.Context,
	responder *interactionResponder,
	s *discordgo.Session,
	i *discordgo.InteractionCreate,
) error {
	var req DebateRequest
	req.ChannelID = i.ChannelID
	if i.Member != nil && i.Member.User != nil {
		req.RequesterID = i.Member.User.ID
		req.RequesterMention = i.Member.User.Mention()
	}
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "member":
			if user := opt.UserValue(s); user != nil {
				req.OpponentID = user.ID
				req.OpponentMention = user.Mention()
			}
		case "topic":
			req.Topic = opt.StringValue()
		}
	}

	return b.withDeferral(ctx, responder, false, func() error {
		return b.handler.Debate(ctx, responder, req)
	})
}

func (b *Bot) dispatchArgue(
	ctx context.Context,
	responder *interactionResponder,
	i *discordgo.InteractionCreate,
) error {
	req := ArgueRequest{ChannelID: i.ChannelID}
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "argument" {
			req.Argument = opt.StringValue()
		}
	}

	return b.withDeferral(ctx, responder, true, func() error {
		return b.handler.Argue(ctx, responder, req)
	})
}

func (b *Bot) dispatchSimulate(
	ctx context.Context,
	responder *interactionResponder,
	i *discordgo.InteractionCreate,
) error {
	req := SimulateRequest{ChannelID: i.ChannelID}
	for _, opt := range i.ApplicationCommandData().Options {
		switch opt.Name {
		case "persona1":
			req.Persona1 = opt.StringValue()
		case "persona2":
			req.Persona2 = opt.StringValue()
		case "topic":
			req.Topic = opt.StringValue()
		}
	}

	return b.withDeferral(ctx, responder, false, func() error {
		return b.handler.Simulate(ctx, responder, req)
	})
}

// withDeferral acknowledges the interaction before running the handler,
// since command work (thread creation, completions) can exceed the
// three-second response deadline.
func (b *Bot) withDeferral(ctx context.Context, responder *interactionResponder, ephemeral bool, fn func() error) error {
	if err := responder.Defer(ctx, ephemeral); err != nil {
		return fmt.Errorf("defer interaction: %w", err)
	}
	return fn()
}

// interactionResponder implements Responder over a deferred interaction.
type interactionResponder struct {
	session     *discordgo.Session
	interaction *discordgo.Interaction
}

var _ Responder = (*interactionResponder)(nil)

func (r *interactionResponder) Defer(ctx context.Context, ephemeral bool) error {
	response := &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}
	if ephemeral {
		response.Data = &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral}
	}
	return r.session.InteractionRespond(r.interaction, response, discordgo.WithContext(ctx))
}

func (r *interactionResponder) Respond(ctx context.Context, content string, ephemeral bool) error {
	params := &discordgo.WebhookParams{Content: content}
	if ephemeral {
		params.Flags = discordgo.MessageFlagsEphemeral
	}
	_, err := r.session.FollowupMessageCreate(r.interaction, true, params, discordgo.WithContext(ctx))
	return err
}

func (r *interactionResponder) RespondEmbed(ctx context.Context, embed *discordgo.MessageEmbed) error {
	_, err := r.session.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx))
	return err
}
