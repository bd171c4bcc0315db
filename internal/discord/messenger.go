package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/DuckHunt_Go/internal/domain"
	"github.com/osse101/DuckHunt_Go/internal/ducks"
	"github.com/osse101/DuckHunt_Go/internal/logger"
)

// Messenger delivers game messages to Discord channels. Messages carrying
// an identity go through a per-channel webhook so the duck speaks as itself.
type Messenger struct {
	session      *discordgo.Session
	logChannelID string
	webhooks     *expirable.LRU[string, *discordgo.Webhook]
}

// NewMessenger creates a Messenger. logChannelID may be empty.
func NewMessenger(s *discordgo.Session, logChannelID string) *Messenger {
	return &Messenger{
		session:      s,
		logChannelID: logChannelID,
		webhooks:     expirable.NewLRU[string, *discordgo.Webhook](webhookCacheCap, nil, webhookCacheTTL),
	}
}

// Send posts msg to the channel.
func (m *Messenger) Send(ctx context.Context, channelID string, msg ducks.Message) error {
	if msg.Username != "" {
		err := m.sendWebhook(ctx, channelID, msg)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrChannelUnavailable) {
			return err
		}
		// Missing webhook permission still leaves plain messages possible.
		logger.FromContext(ctx).Debug(LogMsgWebhookFallback, "channel_id", channelID, "error", err)
	}

	_, err := m.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content:         msg.Content,
		AllowedMentions: &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{discordgo.AllowedMentionTypeUsers}},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return classify(fmt.Errorf("%s: %w", ErrMsgMessageSend, err))
	}
	return nil
}

// Status reports operator facing text to the log channel, or only logs it
// when none is configured.
func (m *Messenger) Status(ctx context.Context, text string) error {
	logger.FromContext(ctx).Info(LogMsgStatus, "text", text)
	if m.logChannelID == "" {
		return nil
	}
	return m.Send(ctx, m.logChannelID, ducks.Message{Content: text})
}

func (m *Messenger) sendWebhook(ctx context.Context, channelID string, msg ducks.Message) error {
	hook, err := m.webhook(ctx, channelID)
	if err != nil {
		return err
	}
	params := &discordgo.WebhookParams{
		Content:   msg.Content,
		Username:  msg.Username,
		AvatarURL: msg.AvatarURL,
	}
	_, err = m.session.WebhookExecute(hook.ID, hook.Token, false, params, discordgo.WithContext(ctx))
	if err == nil {
		return nil
	}
	// Somebody deleted the webhook; forget it so the next message recreates it.
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeUnknownWebhook {
		m.webhooks.Remove(channelID)
	}
	return classify(fmt.Errorf("%s: %w", ErrMsgWebhookExecute, err))
}

func (m *Messenger) webhook(ctx context.Context, channelID string) (*discordgo.Webhook, error) {
	if hook, ok := m.webhooks.Get(channelID); ok {
		return hook, nil
	}

	hooks, err := m.session.ChannelWebhooks(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, classify(fmt.Errorf("%s: %w", ErrMsgWebhookList, err))
	}
	for _, h := range hooks {
		if h.Name == WebhookName && h.Token != "" {
			m.webhooks.Add(channelID, h)
			return h, nil
		}
	}

	hook, err := m.session.WebhookCreate(channelID, WebhookName, "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, classify(fmt.Errorf("%s: %w", ErrMsgWebhookCreate, err))
	}
	slog.Default().Info(LogMsgWebhookCreated, "channel_id", channelID, "webhook_id", hook.ID)
	m.webhooks.Add(channelID, hook)
	return hook, nil
}

// classify maps Discord's "this channel is gone or closed to us" error codes
// to domain.ErrChannelUnavailable so the spawn loop disables the channel.
func classify(err error) error {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Message == nil {
		return err
	}
	switch restErr.Message.Code {
	case discordgo.ErrCodeUnknownChannel, discordgo.ErrCodeMissingAccess, discordgo.ErrCodeMissingPermissions:
		return fmt.Errorf("%w: %w", domain.ErrChannelUnavailable, err)
	}
	return err
}
