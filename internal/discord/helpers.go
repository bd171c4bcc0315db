package discord

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/logger"
)

var titleCaser = cases.Title(language.English)

// titleCase renders identifiers such as "explosive_ammo" as "Explosive Ammo".
func titleCase(s string) string {
	return titleCaser.String(strings.ReplaceAll(s, "_", " "))
}

// interactionContext tags the context with the interaction id so service
// logs can be correlated with a command.
func interactionContext(i *discordgo.InteractionCreate) context.Context {
	id := i.ID
	if id == "" {
		id = logger.GenerateRequestID()
	}
	return logger.WithRequestID(context.Background(), id)
}

// deferResponse acknowledges an interaction with a deferred message.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error(LogMsgDeferFailed, "error", err)
		return false
	}
	return true
}

// respond answers an interaction directly.
func respond(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}); err != nil {
		slog.Error(LogMsgRespondFailed, "error", err)
	}
}

// editResponse fills in a deferred response.
func editResponse(s *discordgo.Session, i *discordgo.InteractionCreate, content string) error {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content})
	return err
}

func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error(LogMsgEditFailed, "error", err)
	}
}

func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterDuckHunt
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer:      &discordgo.MessageEmbedFooter{Text: footerText},
	}
}

// respondFriendlyError fills a deferred response with a message the hunter
// can act on.
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	msg := friendlyError(err)
	if editErr := editResponse(s, i, msg); editErr != nil {
		slog.Error(LogMsgEditFailed, "error", editErr)
	}
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, domain.ErrChannelDisabled):
		return MsgChannelDisabled
	case errors.Is(err, domain.ErrChannelNotFound):
		return MsgChannelNotFound
	case errors.Is(err, domain.ErrShopClosed):
		return MsgShopClosed
	case errors.Is(err, domain.ErrUnknownItem):
		return MsgUnknownItem
	case errors.Is(err, domain.ErrNotEnoughExperience):
		return MsgNotEnoughExp
	case errors.Is(err, domain.ErrMagazinesFull):
		return MsgMagazinesFull
	case errors.Is(err, domain.ErrUnknownCategory):
		return MsgInvalidCategory
	}
	return MsgGenericError
}

// getInteractionUser handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

// stringOption returns the named string option, or "".
func stringOption(i *discordgo.InteractionCreate, name string) string {
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == name && opt.Type == discordgo.ApplicationCommandOptionString {
			return opt.StringValue()
		}
	}
	return ""
}

var adminPermissions int64 = discordgo.PermissionManageChannels
