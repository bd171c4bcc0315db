package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/DuckHunt_Go/internal/ducks"
)

func huntAction(i *discordgo.InteractionCreate) ducks.Action {
	user := getInteractionUser(i)
	return ducks.Action{
		ChannelID: i.ChannelID,
		UserID:    user.ID,
		Mention:   user.Mention(),
		Answer:    stringOption(i, "answer"),
	}
}

// replyTo fills the deferred response while the duck lock is still held, so
// the channel sees outcomes in the order they happened.
func replyTo(s *discordgo.Session, i *discordgo.InteractionCreate) ducks.Reply {
	return func(_ context.Context, out ducks.Outcome) error {
		return editResponse(s, i, out.Text)
	}
}

// BangCommand shoots the oldest duck in the channel.
func BangCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "bang",
		Description: "Shoot the duck",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "answer",
				Description: "Your answer to a professor duck's question",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		if !deferResponse(s, i) {
			return
		}
		ctx := interactionContext(i)
		if _, err := deps.Hunt.Shoot(ctx, huntAction(i), replyTo(s, i)); err != nil {
			slog.Error(LogMsgCommandFailed, "command", "bang", "error", err)
			respondFriendlyError(s, i, err)
		}
	}

	return cmd, handler
}

// HugCommand hugs the oldest duck in the channel.
func HugCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "hug",
		Description: "Hug the duck",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		if !deferResponse(s, i) {
			return
		}
		ctx := interactionContext(i)
		if _, err := deps.Hunt.Hug(ctx, huntAction(i), replyTo(s, i)); err != nil {
			slog.Error(LogMsgCommandFailed, "command", "hug", "error", err)
			respondFriendlyError(s, i, err)
		}
	}

	return cmd, handler
}

// ReloadCommand refills the gun from a magazine.
func ReloadCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "reload",
		Description: "Reload your gun",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, deps *Deps) {
		if !deferResponse(s, i) {
			return
		}
		ctx := interactionContext(i)
		out, err := deps.Hunt.Reload(ctx, huntAction(i))
		if err != nil {
			slog.Error(LogMsgCommandFailed, "command", "reload", "error", err)
			respondFriendlyError(s, i, err)
			return
		}
		if err := editResponse(s, i, out.Text); err != nil {
			slog.Error(LogMsgEditFailed, "error", err)
		}
	}

	return cmd, handler
}
