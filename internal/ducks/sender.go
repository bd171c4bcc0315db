package ducks

import (
	"context"

	"github.com/osse101/DuckHunt_Go/internal/domain"
)

// Message is an outbound chat message. Username and AvatarURL are set when
// the channel posts through a webhook identity.
type Message struct {
	Content   string
	Username  string
	AvatarURL string
}

// Sender delivers messages to a channel. Implementations return an error
// wrapping domain.ErrChannelUnavailable when the channel is gone or the bot
// lost permission to post.
type Sender interface {
	Send(ctx context.Context, channelID string, msg Message) error
}

// EventSource reports the active world event.
type EventSource interface {
	Current() domain.WorldEvent
}

// StaticEvent is an EventSource that never changes.
type StaticEvent domain.WorldEvent

func (e StaticEvent) Current() domain.WorldEvent {
	return domain.WorldEvent(e)
}
